package pages

import (
	"github.com/a-h/templ"

	"kitchen/internal/views/components"
)

// ConfirmDelete asks before removing a record. Notice describes side
// effects such as cascades.
func ConfirmDelete(frame Frame, kind, name, notice, action, cancel string) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, "Delete "+kind)
		m.Raw("<p>")
		m.Textf("Are you sure you want to delete %s %q?", kind, name)
		m.Raw("</p>")
		if notice != "" {
			m.Raw(`<p class="warning">`)
			m.Text(notice)
			m.Raw("</p>")
		}
		formOpen(m, action, "")
		formClose(m, "Yes, delete", cancel)
	}))
}

// ErrorPage renders a status page such as 403 or 404.
func ErrorPage(frame Frame, status int, message string) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		m.Raw(`<section class="error-page">`)
		m.Raw("<h1>")
		m.Textf("%d", status)
		m.Raw("</h1><p>")
		m.Text(message)
		m.Raw("</p></section>")
	}))
}
