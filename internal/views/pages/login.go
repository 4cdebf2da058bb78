package pages

import (
	"github.com/a-h/templ"

	"kitchen/internal/routes"
	"kitchen/internal/views/components"
	"kitchen/internal/views/layout"
	"kitchen/internal/views/theme"
)

// LoginPartial renders the sign-in form alone.
func LoginPartial(message, username string) templ.Component {
	return components.Func(func(m *components.Markup) {
		m.Raw(`<section class="login">`)
		heading(m, "Sign in")
		if message != "" {
			m.Raw(`<p class="login-error" role="alert">`)
			m.Text(message)
			m.Raw("</p>")
		}
		formOpen(m, routes.Path(routes.Login), "")
		inputField(m, FormErrors{}, "Username", "username", "text", username)
		inputField(m, FormErrors{}, "Password", "password", "password", "")
		formClose(m, "Log in", "")
		m.Raw("</section>")
	})
}

// Login renders the full sign-in page.
func Login(message, username string) templ.Component {
	return layout.Layout("Sign in | Kitchen", nil, LoginPartial(message, username), false, theme.Resolve(""))
}
