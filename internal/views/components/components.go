package components

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"kitchen/internal/routes"
	"kitchen/models"
)

// Viewer describes the signed-in cook for navigation and action toggles.
type Viewer struct {
	CookID         uint
	Username       string
	Role           string
	Superuser      bool
	CanEditMenu    bool
	CanManageStaff bool
	Theme          string
}

// Sidebar sections. Pages pass one of these as the active section.
const (
	SectionHome        = "home"
	SectionDishTypes   = "dish-types"
	SectionDishes      = "dishes"
	SectionIngredients = "ingredients"
	SectionCooks       = "cooks"
)

type navLink struct {
	section string
	label   string
	route   string
}

var navLinks = []navLink{
	{section: SectionHome, label: "Home", route: routes.Index},
	{section: SectionDishTypes, label: "Dish types", route: routes.DishTypeList},
	{section: SectionDishes, label: "Dishes", route: routes.DishList},
	{section: SectionIngredients, label: "Ingredients", route: routes.IngredientList},
	{section: SectionCooks, label: "Cooks", route: routes.CookList},
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

// Sidebar renders navigation, the signed-in cook and the theme switcher.
func Sidebar(active string, viewer Viewer, themes []ThemeChoice) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<aside class="sidebar"><nav><ul>`)
		for _, link := range navLinks {
			m.Raw(`<li class="nav-`, linkState(link.section, active), `"><a`)
			m.Attr("href", routes.Path(link.route))
			m.Raw(">")
			m.Text(link.label)
			m.Raw("</a></li>")
		}
		m.Raw(`</ul></nav><div class="viewer"><p class="viewer-name">`)
		m.Text(viewer.Username)
		m.Raw("</p>")
		switch {
		case viewer.Superuser:
			m.Raw(`<p class="viewer-role">superuser</p>`)
		case viewer.Role != "":
			m.Raw(`<p class="viewer-role">`)
			m.Text(viewer.Role)
			m.Raw("</p>")
		default:
			m.Raw(`<p class="viewer-role">no role assigned</p>`)
		}
		m.Raw(`<form method="post"`)
		m.Attr("action", routes.Path(routes.Preferences))
		m.Raw(`><select name="theme">`)
		for _, choice := range themes {
			m.Raw("<option")
			m.Attr("value", choice.ID)
			m.Raw(Selected(choice.ID == models.NormalizeTheme(viewer.Theme)), ">")
			m.Text(choice.Label)
			m.Raw("</option>")
		}
		m.Raw(`</select><button type="submit">Apply</button></form><a`)
		m.Attr("href", routes.Path(routes.Logout))
		m.Raw(`>Log out</a></div></aside>`)
	})
}

// ThemeChoice is one entry of the theme switcher.
type ThemeChoice struct {
	ID    string
	Label string
}

// StatCard renders a single dashboard figure.
func StatCard(label, value, hint string) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<div class="stat-card"><p class="stat-label">`)
		m.Text(label)
		m.Raw(`</p><p class="stat-value">`)
		m.Text(value)
		m.Raw("</p>")
		if hint != "" {
			m.Raw(`<p class="stat-hint">`)
			m.Text(hint)
			m.Raw("</p>")
		}
		m.Raw("</div>")
	})
}

// SearchForm renders the GET filter box of a list page.
func SearchForm(action, field, value, placeholder string) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<form method="get" class="search"`)
		m.Attr("action", action)
		m.Raw(`><input type="search"`)
		m.Attr("name", field)
		m.Attr("value", value)
		m.Attr("placeholder", placeholder)
		m.Raw(`><button type="submit">Search</button></form>`)
	})
}

// Pagination renders previous/next links that keep the active filter.
func Pagination(path, field, value string, number, numPages int) templ.Component {
	return Func(func(m *Markup) {
		if numPages <= 1 {
			return
		}
		link := func(page int, label string) {
			m.Raw("<a")
			m.Attr("href", routes.WithQuery(path, url.Values{field: {value}, "page": {strconv.Itoa(page)}}))
			m.Raw(">")
			m.Text(label)
			m.Raw("</a>")
		}
		m.Raw(`<nav class="pagination">`)
		if number > 1 {
			link(1, "first")
			link(number-1, "previous")
		}
		m.Raw(`<span class="current">`)
		m.Textf("Page %d of %d", number, numPages)
		m.Raw("</span>")
		if number < numPages {
			link(number+1, "next")
			link(numPages, "last")
		}
		m.Raw("</nav>")
	})
}

// FieldErrors lists the messages attached to a form field.
func FieldErrors(messages []string) templ.Component {
	return Func(func(m *Markup) {
		if len(messages) == 0 {
			return
		}
		m.Raw(`<ul class="errorlist">`)
		for _, message := range messages {
			m.Raw("<li>")
			m.Text(message)
			m.Raw("</li>")
		}
		m.Raw("</ul>")
	})
}

// Flash renders a one-off notice.
func Flash(message string) templ.Component {
	return Func(func(m *Markup) {
		if message == "" {
			return
		}
		m.Raw(`<div class="flash" role="status">`)
		m.Text(message)
		m.Raw("</div>")
	})
}

// ActionButton renders a POST form with hidden fields and one button.
func ActionButton(action, label string, fields map[string]string) templ.Component {
	return Func(func(m *Markup) {
		m.Raw(`<form method="post" class="inline"`)
		m.Attr("action", action)
		m.Raw(">")
		for _, key := range sortedKeys(fields) {
			m.Raw(`<input type="hidden"`)
			m.Attr("name", key)
			m.Attr("value", fields[key])
			m.Raw(">")
		}
		m.Raw(`<button type="submit">`)
		m.Text(label)
		m.Raw("</button></form>")
	})
}
