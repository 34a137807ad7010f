package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"testing"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-skillswap/pkg/render/template/gotemplate"
	"github.com/goliatone/go-skillswap/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if result != "Hello Ada!\n" {
		t.Fatalf("render template mismatch: %q", result)
	}
	if written != result {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", result, written)
	}
}

func TestGoTemplateEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	type chip struct {
		Name string `json:"name"`
	}
	result, err := engine.RenderTemplate("skill-chip", map[string]any{"skill": chip{Name: " C++ / Go "}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<span id="skill-c-go">C++ / Go</span>` + "\n"
	if result != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging\n" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!\n" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.Render("{{ greeting }}, {{ who }}", map[string]any{"greeting": "Hi", "who": "Grace"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "Hi, Grace" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestLibraryEngine_RenderTemplate(t *testing.T) {
	engine := newLibraryEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!\n" {
		t.Fatalf("render template mismatch: %q", result)
	}
	if written != result {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", result, written)
	}
}

func TestLibraryEngine_DOMIDFilter(t *testing.T) {
	engine := newLibraryEngine(t)

	type chip struct {
		Name string `json:"name"`
	}
	result, err := engine.RenderTemplate("skill-chip", map[string]any{"skill": chip{Name: " C++ / Go "}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<span id="skill-c-go">C++ / Go</span>` + "\n"
	if result != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestLibraryEngine_GlobalDataAndEngineOptions(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.NewLibrary(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithGlobalData(map[string]any{"settings": map[string]any{"env": "staging"}}),
		gotemplate.WithEngineOptions(gotemplatepkg.WithGlobalData(map[string]any{"site": "SkillSwap"})),
	)
	if err != nil {
		t.Fatalf("new library engine: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging\n" {
		t.Fatalf("unexpected output %q", result)
	}

	result, err = engine.Render("{{ site }}", nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "SkillSwap" {
		t.Fatalf("engine option global missing: %q", result)
	}
}

func TestLibraryEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.NewLibrary(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func newLibraryEngine(t *testing.T) *gotemplatepkg.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.NewLibrary(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new library engine: %v", err)
	}
	return engine
}
