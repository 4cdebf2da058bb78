package theme

import (
	"strings"

	"kitchen/models"
)

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// KitchenTheme contains the resolved styling primitives for the page shell.
type KitchenTheme struct {
	Key         string
	Label       string
	Description string
	BodyClass   string
	ShellClass  string
	AccentClass string
	MutedClass  string
}

var catalogue = map[string]KitchenTheme{
	models.ThemeNightService: {
		Key:         models.ThemeNightService,
		Label:       "Night service",
		Description: "Dark pass with amber tickets.",
		BodyClass:   "min-h-screen bg-stone-950 text-stone-100",
		ShellClass:  "kitchen-shell dark",
		AccentClass: "text-amber-400",
		MutedClass:  "text-stone-400",
	},
	models.ThemeDaylight: {
		Key:         models.ThemeDaylight,
		Label:       "Daylight",
		Description: "Bright prep room with charcoal type.",
		BodyClass:   "min-h-screen bg-white text-stone-900",
		ShellClass:  "kitchen-shell light",
		AccentClass: "text-emerald-700",
		MutedClass:  "text-stone-500",
	},
	models.ThemeSlate: {
		Key:         models.ThemeSlate,
		Label:       "Slate",
		Description: "Cool steel tones for the back office.",
		BodyClass:   "min-h-screen bg-slate-900 text-slate-100",
		ShellClass:  "kitchen-shell slate",
		AccentClass: "text-sky-400",
		MutedClass:  "text-slate-400",
	},
}

var options = []Option{
	{Value: models.ThemeNightService, Label: "Night service (Dark)"},
	{Value: models.ThemeDaylight, Label: "Daylight (Light)"},
	{Value: models.ThemeSlate, Label: "Slate (Blue)"},
}

// Resolve returns the registered theme for key, falling back to the default.
func Resolve(key string) KitchenTheme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[models.DefaultTheme]
}

// Known reports whether key names a registered theme.
func Known(key string) bool {
	_, ok := catalogue[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}
