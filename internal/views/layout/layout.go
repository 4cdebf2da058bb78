package layout

import (
	"github.com/a-h/templ"

	"kitchen/internal/views/components"
	"kitchen/internal/views/theme"
)

func bodyWrapperClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "layout with-sidebar"
	}
	return "layout"
}

func mainClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "content beside-sidebar"
	}
	return "content full-width"
}

// Layout wraps page content in the HTML document shell.
func Layout(title string, sidebar, content templ.Component, sidebarOpen bool, def theme.KitchenTheme) templ.Component {
	return components.Func(func(m *components.Markup) {
		m.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Raw("<title>")
		m.Text(title)
		m.Raw(`</title><script src="https://unpkg.com/htmx.org@1.9.12"></script></head><body`)
		m.Attr("class", def.BodyClass)
		m.Attr("data-theme", def.Key)
		m.Raw("><div")
		m.Attr("class", def.ShellClass+" "+bodyWrapperClass(sidebarOpen))
		m.Raw(">")
		if sidebarOpen {
			m.Component(sidebar)
		}
		m.Raw("<main")
		m.Attr("class", mainClass(sidebarOpen))
		m.Raw(` id="content">`)
		m.Component(content)
		m.Raw("</main></div></body></html>")
	})
}
