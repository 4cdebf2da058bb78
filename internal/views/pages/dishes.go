package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"kitchen/internal/routes"
	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/models"
)

// DishList renders one page of dishes with their type and price.
func DishList(frame Frame, query string, page store.Page[models.Dish]) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, "Dishes")
		if frame.Viewer.CanEditMenu {
			m.Raw(`<p class="actions">`)
			link(m, routes.Path(routes.DishCreate), "Create dish")
			m.Raw("</p>")
		}
		m.Component(components.SearchForm(routes.Path(routes.DishList), "name", query, "Search by name"))
		if len(page.Items) == 0 {
			m.Raw(`<p class="empty">There are no dishes.</p>`)
		} else {
			m.Raw(`<table class="records"><thead><tr><th>Name</th><th>Type</th><th>Price</th></tr></thead><tbody>`)
			for _, dish := range page.Items {
				m.Raw("<tr><td>")
				link(m, routes.ID(routes.DishDetail, dish.ID), dish.Name)
				m.Raw("</td><td>")
				if dish.DishType != nil {
					m.Text(dish.DishType.Name)
				}
				m.Raw("</td><td>")
				m.Text(dish.Price.String())
				m.Raw("</td></tr>")
			}
			m.Raw("</tbody></table>")
		}
		m.Component(components.Pagination(routes.Path(routes.DishList), "name", query, page.Number, page.NumPages))
	}))
}

func isDishCook(dish *models.Dish, cookID uint) bool {
	for _, cook := range dish.Cooks {
		if cook.ID == cookID {
			return true
		}
	}
	return false
}

// DishDetail renders a dish with its cooks and ingredients.
func DishDetail(frame Frame, dish *models.Dish) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, dish.Name)
		m.Raw(`<dl class="fields"><dt>Type</dt><dd>`)
		if dish.DishType != nil {
			link(m, routes.ID(routes.DishTypeDetail, dish.DishType.ID), dish.DishType.Name)
		}
		m.Raw("</dd><dt>Price</dt><dd>")
		m.Text(dish.Price.String())
		m.Raw("</dd><dt>Description</dt><dd>")
		m.Text(dish.Description)
		m.Raw("</dd></dl>")

		if frame.Viewer.CanEditMenu {
			m.Raw(`<p class="actions">`)
			link(m, routes.ID(routes.DishUpdate, dish.ID), "Update")
			m.Raw(" ")
			link(m, routes.ID(routes.DishDelete, dish.ID), "Delete")
			m.Raw(" ")
			link(m, routes.ID(routes.DishUpdateIngredient, dish.ID), "Manage ingredients")
			m.Raw(" ")
			if isDishCook(dish, frame.Viewer.CookID) {
				m.Component(components.ActionButton(routes.ID(routes.DishUpdateCook, dish.ID), "Remove me from this dish", map[string]string{"action": "remove"}))
			} else {
				m.Component(components.ActionButton(routes.ID(routes.DishUpdateCook, dish.ID), "Assign me to this dish", map[string]string{"action": "add"}))
			}
			m.Raw("</p>")
		}

		m.Raw("<h2>Cooks</h2>")
		if len(dish.Cooks) == 0 {
			m.Raw(`<p class="empty">No cooks assigned.</p>`)
		} else {
			m.Raw(`<ul class="records">`)
			for _, cook := range dish.Cooks {
				m.Raw("<li>")
				link(m, routes.ID(routes.CookDetail, cook.ID), cook.Username)
				m.Raw(" (")
				m.Text(cook.FullName())
				m.Raw(")</li>")
			}
			m.Raw("</ul>")
		}

		m.Raw("<h2>Ingredients</h2>")
		if len(dish.Ingredients) == 0 {
			m.Raw(`<p class="empty">No ingredients listed.</p>`)
			return
		}
		m.Raw(`<ul class="records">`)
		for _, ingredient := range dish.Ingredients {
			m.Raw("<li>")
			link(m, routes.ID(routes.IngredientDetail, ingredient.ID), ingredient.Name)
			m.Raw("</li>")
		}
		m.Raw("</ul>")
	}))
}

// DishFormData is the state of the dish form.
type DishFormData struct {
	Action      string
	Cancel      string
	IsNew       bool
	Name        string
	Description string
	Price       string
	DishTypeID  uint
	CookIDs     map[uint]bool
	DishTypes   []models.DishType
	Cooks       []models.Cook
	Errors      FormErrors
}

// DishForm renders the create and update form.
func DishForm(frame Frame, data DishFormData) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		if data.IsNew {
			heading(m, "Create dish")
		} else {
			heading(m, "Update dish")
		}
		formOpen(m, data.Action, "")
		inputField(m, data.Errors, "Name", "name", "text", data.Name)

		m.Raw(`<p class="field"><label for="id_description">Description</label><textarea name="description" id="id_description">`)
		m.Text(data.Description)
		m.Raw("</textarea>")
		m.Component(components.FieldErrors(data.Errors.For("description")))
		m.Raw("</p>")

		inputField(m, data.Errors, "Price", "price", "text", data.Price)

		m.Raw(`<p class="field"><label for="id_dish_type">Dish type</label><select name="dish_type" id="id_dish_type"><option value="">---------</option>`)
		for _, dishType := range data.DishTypes {
			m.Raw("<option")
			m.Attr("value", strconv.FormatUint(uint64(dishType.ID), 10))
			m.Raw(components.Selected(dishType.ID == data.DishTypeID), ">")
			m.Text(dishType.Name)
			m.Raw("</option>")
		}
		m.Raw("</select>")
		m.Component(components.FieldErrors(data.Errors.For("dish_type")))
		m.Raw("</p>")

		m.Raw(`<fieldset class="field"><legend>Cooks</legend>`)
		for _, cook := range data.Cooks {
			m.Raw(`<label><input type="checkbox" name="cooks"`)
			m.Attr("value", strconv.FormatUint(uint64(cook.ID), 10))
			m.Raw(components.Checked(data.CookIDs[cook.ID]), "> ")
			m.Text(cook.Username)
			m.Raw("</label>")
		}
		m.Component(components.FieldErrors(data.Errors.For("cooks")))
		m.Raw("</fieldset>")
		formClose(m, "Submit", data.Cancel)
	}))
}

// IngredientPicker lists ingredients with add or remove buttons for a dish.
func IngredientPicker(frame Frame, dish *models.Dish, query string, page store.Page[models.Ingredient]) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, "Ingredients for "+dish.Name)
		m.Raw(`<p class="actions">`)
		link(m, routes.ID(routes.DishDetail, dish.ID), "Back to dish")
		m.Raw("</p>")
		action := routes.ID(routes.DishUpdateIngredient, dish.ID)
		m.Component(components.SearchForm(action, "name", query, "Search ingredients"))

		member := make(map[uint]bool, len(dish.Ingredients))
		for _, ingredient := range dish.Ingredients {
			member[ingredient.ID] = true
		}
		if len(page.Items) == 0 {
			m.Raw(`<p class="empty">There are no ingredients.</p>`)
		} else {
			m.Raw(`<ul class="records">`)
			for _, ingredient := range page.Items {
				id := strconv.FormatUint(uint64(ingredient.ID), 10)
				m.Raw("<li>")
				m.Text(ingredient.Name)
				m.Raw(" ")
				fields := map[string]string{"ingredient_id": id, "name": query, "page": strconv.Itoa(page.Number)}
				if member[ingredient.ID] {
					fields["action"] = string(store.ActionRemove)
					m.Component(components.ActionButton(action, "Remove", fields))
				} else {
					fields["action"] = string(store.ActionAdd)
					m.Component(components.ActionButton(action, "Add", fields))
				}
				m.Raw("</li>")
			}
			m.Raw("</ul>")
		}
		m.Component(components.Pagination(action, "name", query, page.Number, page.NumPages))
	}))
}
