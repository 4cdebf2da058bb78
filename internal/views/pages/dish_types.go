package pages

import (
	"github.com/a-h/templ"

	"kitchen/internal/routes"
	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/models"
)

// DishTypeList renders one page of dish types.
func DishTypeList(frame Frame, query string, page store.Page[models.DishType]) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, "Dish types")
		if frame.Viewer.CanEditMenu {
			m.Raw(`<p class="actions">`)
			link(m, routes.Path(routes.DishTypeCreate), "Create dish type")
			m.Raw("</p>")
		}
		m.Component(components.SearchForm(routes.Path(routes.DishTypeList), "name", query, "Search by name"))
		if len(page.Items) == 0 {
			m.Raw(`<p class="empty">There are no dish types.</p>`)
		} else {
			m.Raw(`<ul class="records">`)
			for _, dishType := range page.Items {
				m.Raw("<li>")
				link(m, routes.ID(routes.DishTypeDetail, dishType.ID), dishType.Name)
				m.Raw("</li>")
			}
			m.Raw("</ul>")
		}
		m.Component(components.Pagination(routes.Path(routes.DishTypeList), "name", query, page.Number, page.NumPages))
	}))
}

// DishTypeDetail renders a dish type and its dishes.
func DishTypeDetail(frame Frame, dishType *models.DishType) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, dishType.Name)
		if frame.Viewer.CanEditMenu {
			m.Raw(`<p class="actions">`)
			link(m, routes.ID(routes.DishTypeUpdate, dishType.ID), "Update")
			m.Raw(" ")
			link(m, routes.ID(routes.DishTypeDelete, dishType.ID), "Delete")
			m.Raw("</p>")
		}
		m.Raw("<h2>Dishes</h2>")
		if len(dishType.Dishes) == 0 {
			m.Raw(`<p class="empty">No dishes of this type.</p>`)
			return
		}
		m.Raw(`<ul class="records">`)
		for _, dish := range dishType.Dishes {
			m.Raw("<li>")
			link(m, routes.ID(routes.DishDetail, dish.ID), dish.Name)
			m.Raw(" ")
			m.Text(dish.Price.String())
			m.Raw("</li>")
		}
		m.Raw("</ul>")
	}))
}

// DishTypeFormData is the state of the dish type form.
type DishTypeFormData struct {
	Action string
	Cancel string
	IsNew  bool
	Name   string
	Errors FormErrors
}

// DishTypeForm renders the create and update form.
func DishTypeForm(frame Frame, data DishTypeFormData) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		if data.IsNew {
			heading(m, "Create dish type")
		} else {
			heading(m, "Update dish type")
		}
		formOpen(m, data.Action, "")
		inputField(m, data.Errors, "Name", "name", "text", data.Name)
		formClose(m, "Submit", data.Cancel)
	}))
}
