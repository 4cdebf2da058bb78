package components

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Markup buffers a fragment of HTML. Text and Attr escape their input; Raw
// writes trusted markup verbatim.
type Markup struct {
	b   strings.Builder
	ctx context.Context
	err error
}

// Raw appends trusted markup.
func (m *Markup) Raw(parts ...string) {
	for _, part := range parts {
		m.b.WriteString(part)
	}
}

// Text appends escaped text.
func (m *Markup) Text(value string) {
	m.b.WriteString(templ.EscapeString(value))
}

// Textf formats and escapes text.
func (m *Markup) Textf(format string, args ...any) {
	m.Text(fmt.Sprintf(format, args...))
}

// Attr appends ` name="value"` with the value escaped.
func (m *Markup) Attr(name, value string) {
	m.b.WriteString(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Component renders a nested component in place.
func (m *Markup) Component(c templ.Component) {
	if c == nil || m.err != nil {
		return
	}
	if err := c.Render(m.ctx, &m.b); err != nil {
		m.err = err
	}
}

// Func turns a builder function into a templ component.
func Func(build func(m *Markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &Markup{ctx: ctx}
		build(m)
		if m.err != nil {
			return m.err
		}
		_, err := io.WriteString(w, m.b.String())
		return err
	})
}

// Checked returns the checked attribute when on is true.
func Checked(on bool) string {
	if on {
		return " checked"
	}
	return ""
}

// Selected returns the selected attribute when on is true.
func Selected(on bool) string {
	if on {
		return " selected"
	}
	return ""
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
