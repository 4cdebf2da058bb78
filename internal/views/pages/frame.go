package pages

import (
	"strings"

	"github.com/a-h/templ"

	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/internal/views/layout"
	"kitchen/internal/views/theme"
)

// Frame carries what every authenticated page needs besides its content.
type Frame struct {
	Title   string
	Section string
	Viewer  components.Viewer
	Flash   string
	// Partial renders only the content, for HTMX swaps.
	Partial bool
}

// Shell places content inside the application layout.
func Shell(frame Frame, content templ.Component) templ.Component {
	body := components.Func(func(m *components.Markup) {
		m.Component(components.Flash(frame.Flash))
		m.Component(content)
	})
	if frame.Partial {
		return body
	}
	choices := make([]components.ThemeChoice, 0, len(theme.Options()))
	for _, option := range theme.Options() {
		choices = append(choices, components.ThemeChoice{ID: option.Value, Label: option.Label})
	}
	sidebar := components.Sidebar(frame.Section, frame.Viewer, choices)
	return layout.Layout(title(frame.Title), sidebar, body, true, theme.Resolve(frame.Viewer.Theme))
}

func title(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Kitchen"
	}
	return value + " | Kitchen"
}

// DefaultDash returns value or a dash placeholder for empty values.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormErrors resolves field messages from a possibly nil validation error.
type FormErrors struct {
	*store.ValidationError
}

// For returns the messages recorded for field.
func (e FormErrors) For(field string) []string {
	if e.ValidationError == nil {
		return nil
	}
	return e.Fields[field]
}

func heading(m *components.Markup, text string) {
	m.Raw("<h1>")
	m.Text(text)
	m.Raw("</h1>")
}

func link(m *components.Markup, href, text string) {
	m.Raw("<a")
	m.Attr("href", href)
	m.Raw(">")
	m.Text(text)
	m.Raw("</a>")
}

func inputField(m *components.Markup, errs FormErrors, label, name, kind, value string) {
	m.Raw(`<p class="field"><label`)
	m.Attr("for", "id_"+name)
	m.Raw(">")
	m.Text(label)
	m.Raw("</label><input")
	m.Attr("type", kind)
	m.Attr("name", name)
	m.Attr("id", "id_"+name)
	if kind != "password" {
		m.Attr("value", value)
	}
	m.Raw(">")
	m.Component(components.FieldErrors(errs.For(name)))
	m.Raw("</p>")
}

func formOpen(m *components.Markup, action, enctype string) {
	m.Raw(`<form method="post"`)
	m.Attr("action", action)
	if enctype != "" {
		m.Attr("enctype", enctype)
	}
	m.Raw(">")
}

func formClose(m *components.Markup, submit, cancel string) {
	m.Raw(`<button type="submit">`)
	m.Text(submit)
	m.Raw("</button>")
	if cancel != "" {
		m.Raw(" ")
		link(m, cancel, "Cancel")
	}
	m.Raw("</form>")
}
