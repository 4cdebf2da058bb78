package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"kitchen/internal/routes"
	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/models"
)

// CookList renders one page of cooks.
func CookList(frame Frame, query string, page store.Page[models.Cook]) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, "Cooks")
		if frame.Viewer.CanManageStaff {
			m.Raw(`<p class="actions">`)
			link(m, routes.Path(routes.CookCreate), "Create cook")
			m.Raw("</p>")
		}
		m.Component(components.SearchForm(routes.Path(routes.CookList), "username", query, "Search by username"))
		if len(page.Items) == 0 {
			m.Raw(`<p class="empty">There are no cooks.</p>`)
		} else {
			m.Raw(`<table class="records"><thead><tr><th>Username</th><th>Name</th><th>Role</th></tr></thead><tbody>`)
			for _, cook := range page.Items {
				m.Raw("<tr><td>")
				link(m, routes.ID(routes.CookDetail, cook.ID), cook.Username)
				m.Raw("</td><td>")
				m.Text(cook.FullName())
				m.Raw("</td><td>")
				m.Text(DefaultDash(cook.RoleName()))
				m.Raw("</td></tr>")
			}
			m.Raw("</tbody></table>")
		}
		m.Component(components.Pagination(routes.Path(routes.CookList), "username", query, page.Number, page.NumPages))
	}))
}

func yearsLabel(years *int) string {
	if years == nil {
		return ""
	}
	return strconv.Itoa(*years)
}

// CookDetail renders a cook with role and dishes.
func CookDetail(frame Frame, cook *models.Cook) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, cook.Username)
		m.Raw(`<dl class="fields"><dt>Name</dt><dd>`)
		m.Text(cook.FullName())
		m.Raw("</dd><dt>Years of experience</dt><dd>")
		m.Text(DefaultDash(yearsLabel(cook.YearsOfExperience)))
		m.Raw("</dd><dt>Role</dt><dd>")
		m.Text(DefaultDash(cook.RoleName()))
		m.Raw("</dd></dl>")
		if frame.Viewer.CanManageStaff {
			m.Raw(`<p class="actions">`)
			link(m, routes.ID(routes.CookUpdate, cook.ID), "Update")
			m.Raw(" ")
			link(m, routes.ID(routes.CookDelete, cook.ID), "Delete")
			m.Raw("</p>")
		}
		m.Raw("<h2>Dishes</h2>")
		if len(cook.Dishes) == 0 {
			m.Raw(`<p class="empty">Not assigned to any dish.</p>`)
			return
		}
		m.Raw(`<ul class="records">`)
		for _, dish := range cook.Dishes {
			m.Raw("<li>")
			link(m, routes.ID(routes.DishDetail, dish.ID), dish.Name)
			if dish.DishType != nil {
				m.Raw(" (")
				m.Text(dish.DishType.Name)
				m.Raw(")")
			}
			m.Raw("</li>")
		}
		m.Raw("</ul>")
	}))
}

// CookFormData is the state of the cook form. Password fields only show when
// creating.
type CookFormData struct {
	Action    string
	Cancel    string
	IsNew     bool
	Username  string
	FirstName string
	LastName  string
	Years     string
	Role      string
	Roles     []string
	Errors    FormErrors
}

// CookForm renders the create and update form.
func CookForm(frame Frame, data CookFormData) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		if data.IsNew {
			heading(m, "Create cook")
		} else {
			heading(m, "Update cook")
		}
		formOpen(m, data.Action, "")
		inputField(m, data.Errors, "Username", "username", "text", data.Username)
		inputField(m, data.Errors, "First name", "first_name", "text", data.FirstName)
		inputField(m, data.Errors, "Last name", "last_name", "text", data.LastName)
		inputField(m, data.Errors, "Years of experience", "years_of_experience", "number", data.Years)
		if data.IsNew {
			inputField(m, data.Errors, "Password", "password1", "password", "")
			inputField(m, data.Errors, "Password confirmation", "password2", "password", "")
		}
		m.Raw(`<p class="field"><label for="id_role">Role</label><select name="role" id="id_role"><option value="">---------</option>`)
		for _, role := range data.Roles {
			m.Raw("<option")
			m.Attr("value", role)
			m.Raw(components.Selected(role == data.Role), ">")
			m.Text(role)
			m.Raw("</option>")
		}
		m.Raw("</select>")
		m.Component(components.FieldErrors(data.Errors.For("role")))
		m.Raw("</p>")
		formClose(m, "Submit", data.Cancel)
	}))
}
