package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"kitchen/internal/store"
	"kitchen/internal/views/components"
)

// Index renders the dashboard with entity counts and the visit counter.
func Index(frame Frame, counts store.Counts, visits int) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, "Kitchen service")
		m.Raw(`<div class="stats">`)
		m.Component(components.StatCard("Cooks", strconv.FormatInt(counts.Cooks, 10), "on staff"))
		m.Component(components.StatCard("Dishes", strconv.FormatInt(counts.Dishes, 10), "on the menu"))
		m.Component(components.StatCard("Dish types", strconv.FormatInt(counts.DishTypes, 10), ""))
		m.Component(components.StatCard("Ingredients", strconv.FormatInt(counts.Ingredients, 10), "in the pantry"))
		m.Raw(`</div><p class="visits">`)
		m.Textf("You have visited this page %d times.", visits)
		m.Raw("</p>")
	}))
}
