package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"kitchen/internal/views/theme"
	"kitchen/models"
)

func TestLayoutRendersProvidedContent(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<aside>sidebar</aside>"))
		return err
	})
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<section>content</section>"))
		return err
	})

	var buf bytes.Buffer
	err := Layout("Kitchen <Home>", sidebar, content, true, theme.Resolve(models.ThemeSlate)).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Kitchen &lt;Home&gt;</title>") {
		t.Fatalf("expected escaped document title: %s", out)
	}
	if !strings.Contains(out, "sidebar") || !strings.Contains(out, "content") {
		t.Fatalf("expected sidebar and content sections in output: %s", out)
	}
	if !strings.Contains(out, `data-theme="slate"`) {
		t.Fatalf("expected theme key on body: %s", out)
	}
}

func TestLayoutWithoutSidebar(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<aside>sidebar</aside>"))
		return err
	})
	var buf bytes.Buffer
	if err := Layout("Login", sidebar, templ.NopComponent, false, theme.Resolve("")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	if strings.Contains(buf.String(), "sidebar</aside>") {
		t.Fatalf("expected sidebar to be omitted: %s", buf.String())
	}
}

func TestBodyWrapperClassReflectsSidebarState(t *testing.T) {
	if bodyWrapperClass(true) == bodyWrapperClass(false) {
		t.Fatal("expected different body wrapper class depending on sidebar state")
	}
	if mainClass(true) == mainClass(false) {
		t.Fatal("expected different main class depending on sidebar state")
	}
}
