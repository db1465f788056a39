package engine_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-clientgen/pkg/api"
	"github.com/goliatone/go-clientgen/pkg/engine"
	"github.com/goliatone/go-clientgen/pkg/template"
)

func newEngine(t *testing.T, options ...engine.Option) *engine.Engine {
	t.Helper()
	e, err := engine.New(options...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func render(t *testing.T, e *engine.Engine, src string, data map[string]any) string {
	t.Helper()
	out, err := e.RenderString(context.Background(), src, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestVariableExpansion(t *testing.T) {
	e := newEngine(t)
	model := &api.Model{ClassName: "Event", WireName: "event"}
	out := render(t, e, "class {{ model.className }}", map[string]any{"model": model})
	if out != "class Event" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCapfirstFilter(t *testing.T) {
	e := newEngine(t)
	cases := map[string]string{
		"":    "",
		"foo": "Foo",
		"Foo": "Foo",
	}
	for in, want := range cases {
		out := render(t, e, "{{ value|capfirst }}", map[string]any{"value": in})
		if out != want {
			t.Fatalf("capfirst(%q) = %q, want %q", in, out, want)
		}
	}
}

func TestMissingAttributeIsFatal(t *testing.T) {
	e := newEngine(t)
	_, err := e.RenderString(context.Background(), "line\n{{ model.nope }}", map[string]any{
		"model": &api.Model{ClassName: "X"},
	})
	var attrErr *template.AttributeError
	if !errors.As(err, &attrErr) {
		t.Fatalf("expected AttributeError, got %v", err)
	}
	if attrErr.Line != 2 {
		t.Fatalf("expected line 2 in error, got %d", attrErr.Line)
	}
	if attrErr.Attr != "nope" {
		t.Fatalf("expected failing attribute in error, got %q", attrErr.Attr)
	}
}

func TestForLoop(t *testing.T) {
	e := newEngine(t)
	method := &api.Method{
		CodeName: "list",
		RequiredParameters: []*api.Parameter{
			{CodeName: "a", WireName: "a"},
			{CodeName: "b", WireName: "b"},
			{CodeName: "c", WireName: "c"},
		},
	}
	src := "{% for p in method.requiredParameters %}{% if forloop.first %}[{% endif %}{{ p.codeName }}{% if forloop.last %}]{% else %},{% endif %}{% endfor %}"
	out := render(t, e, src, map[string]any{"method": method})
	if out != "[a,b,c]" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestForLoopEmptySequence(t *testing.T) {
	e := newEngine(t)
	method := &api.Method{CodeName: "list"}
	out := render(t, e, "<{% for p in method.requiredParameters %}{{ p.codeName }}, {% endfor %}>", map[string]any{"method": method})
	if out != "<>" {
		t.Fatalf("expected zero-iteration output, got %q", out)
	}
}

func TestForLoopCounterMetadata(t *testing.T) {
	e := newEngine(t)
	items := []any{"x", "y"}
	out := render(t, e, "{% for v in items %}{{ forloop.counter }}:{{ v }} {% endfor %}", map[string]any{"items": items})
	if out != "1:x 2:y " {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestIfTruthiness(t *testing.T) {
	e := newEngine(t)
	method := &api.Method{CodeName: "get", RequestType: &api.Model{ClassName: "Req"}}

	out := render(t, e, "{% if method.requestType %}has{% else %}none{% endif %}", map[string]any{"method": method})
	if out != "has" {
		t.Fatalf("expected truthy branch, got %q", out)
	}

	method.RequestType = nil
	out = render(t, e, "{% if method.requestType %}has{% else %}none{% endif %}", map[string]any{"method": method})
	if out != "none" {
		t.Fatalf("expected else branch, got %q", out)
	}
}

func TestDocCommentIf(t *testing.T) {
	e := newEngine(t)

	prop := &api.Property{WireName: "id", CodeName: "id", CodeType: "String"}
	out := render(t, e, "{% doc_comment_if property %}", map[string]any{"property": prop})
	if out != "" {
		t.Fatalf("expected nothing for empty description, got %q", out)
	}

	// Unresolvable expression is silence, not an error.
	out = render(t, e, "{% doc_comment_if property.missing %}", map[string]any{"property": prop})
	if out != "" {
		t.Fatalf("expected nothing for missing attribute, got %q", out)
	}

	prop.Description = "Unique identifier for the event."
	out = render(t, e, "{% doc_comment_if property %}", map[string]any{"property": prop})
	if !strings.Contains(out, "Unique identifier for the event.") {
		t.Fatalf("expected doc line, got %q", out)
	}
	if !strings.HasPrefix(out, " * ") {
		t.Fatalf("expected comment continuation prefix, got %q", out)
	}
}

func TestLiteralJavaEscaping(t *testing.T) {
	e := newEngine(t)
	out := render(t, e, "{% literal value %}", map[string]any{"value": `say "hi" \ bye`})
	if out != `"say \"hi\" \\ bye"` {
		t.Fatalf("unexpected literal %q", out)
	}
}

func TestLiteralGoRoundTrip(t *testing.T) {
	e := newEngine(t)
	original := "quote \" backslash \\ newline \n tab \t"
	out := render(t, e, "{% language go %}{% literal value %}", map[string]any{"value": original})

	back, err := strconv.Unquote(out)
	if err != nil {
		t.Fatalf("generated literal does not parse: %v (%q)", err, out)
	}
	if back != original {
		t.Fatalf("round trip mismatch: %q != %q", back, original)
	}
}

func TestRenderDeterministic(t *testing.T) {
	e := newEngine(t)
	data := map[string]any{"model": &api.Model{ClassName: "Event", Description: "An event."}}
	src := "{{ model.className }}: {% doc_comment_if model %}"

	first := render(t, e, src, data)
	second := render(t, e, src, data)
	if first != second {
		t.Fatalf("renders differ: %q vs %q", first, second)
	}
}

func TestCallTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"partial.tmpl": {Data: []byte("name={{ name }}")},
	}
	e := newEngine(t, engine.WithTemplates(fsys))
	out := render(t, e, "[{% call_template partial name=model.className %}]", map[string]any{
		"model": &api.Model{ClassName: "Event"},
	})
	if out != "[name=Event]" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCallTemplateFreshScope(t *testing.T) {
	fsys := fstest.MapFS{
		"partial.tmpl": {Data: []byte("{{ model.className }}")},
	}
	e := newEngine(t, engine.WithTemplates(fsys))
	// The callee must not see the caller's bindings: only keyword arguments.
	_, err := e.RenderString(context.Background(), "{% call_template partial %}", map[string]any{
		"model": &api.Model{ClassName: "Event"},
	})
	var attrErr *template.AttributeError
	if !errors.As(err, &attrErr) {
		t.Fatalf("expected AttributeError from fresh scope, got %v", err)
	}
}

func TestCallTemplateCycle(t *testing.T) {
	fsys := fstest.MapFS{
		"x.tmpl": {Data: []byte("{% call_template y %}")},
		"y.tmpl": {Data: []byte("{% call_template x %}")},
	}
	e := newEngine(t, engine.WithTemplates(fsys))
	_, err := e.Render(context.Background(), "x", nil)
	var cycleErr *template.TemplateCycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected TemplateCycleError, got %v", err)
	}
}

func TestImportsPassThrough(t *testing.T) {
	e := newEngine(t)
	src := "{% imports model %}import a.B;\nimport a.B;\nimport c.{{ model.className }};\n{% endimports %}"
	out := render(t, e, src, map[string]any{"model": &api.Model{ClassName: "D"}})
	// Order preserved, duplicates untouched: dedup belongs to a later pass.
	if out != "import a.B;\nimport a.B;\nimport c.D;\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTemplatetag(t *testing.T) {
	e := newEngine(t)
	out := render(t, e, "{% templatetag openvariable %} raw {% templatetag closevariable %}", nil)
	if out != "{{ raw }}" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCopyrightBlock(t *testing.T) {
	e := newEngine(t, engine.WithCopyright("Copyright 2026 Example Org."))
	out := render(t, e, "{% copyright_block %}", nil)
	if !strings.HasPrefix(out, "/*\n") || !strings.HasSuffix(out, "\n */") {
		t.Fatalf("expected java block comment frame, got %q", out)
	}
	if !strings.Contains(out, "Copyright 2026 Example Org.") {
		t.Fatalf("expected header text, got %q", out)
	}

	empty := newEngine(t)
	if out := render(t, empty, "{% copyright_block %}", nil); out != "" {
		t.Fatalf("expected nothing without configured header, got %q", out)
	}
}

func TestLanguageDirectiveUnknown(t *testing.T) {
	e := newEngine(t)
	_, err := e.RenderString(context.Background(), "{% language cobol %}", nil)
	if err == nil {
		t.Fatalf("expected error for unknown language")
	}
}
