// Package engine evaluates parsed template trees against a model context and
// composes complete source files: it owns tag semantics, the filter table,
// template loading for call_template, and the configured copyright header.
package engine

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-clientgen/pkg/language"
	"github.com/goliatone/go-clientgen/pkg/template"
)

const defaultMaxDepth = 32

// Option customises the engine configuration.
type Option func(*Engine)

// WithTemplates supplies the fs.FS call_template references resolve against.
func WithTemplates(fsys fs.FS) Option {
	return func(e *Engine) {
		e.fsys = fsys
	}
}

// WithExtension overrides the default ".tmpl" extension appended to template
// names that lack one.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		e.ext = trimmed
	}
}

// WithCache injects a shared parse cache. Engines in the same generation run
// can share one; independent runs should not.
func WithCache(cache *template.Cache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithLanguages injects a custom language registry.
func WithLanguages(registry *language.Registry) Option {
	return func(e *Engine) {
		e.languages = registry
	}
}

// WithDefaultLanguage selects the language in effect before a template's own
// {% language %} directive runs.
func WithDefaultLanguage(name string) Option {
	return func(e *Engine) {
		e.defaultLang = name
	}
}

// WithCopyright sets the license header text {% copyright_block %} expands.
func WithCopyright(text string) Option {
	return func(e *Engine) {
		e.copyright = text
	}
}

// WithMaxDepth bounds call_template recursion.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// Engine renders templates. It is safe for concurrent use: rendering reads
// its inputs and allocates private output, the only shared state is the tree
// cache, which tolerates racing writers.
type Engine struct {
	fsys        fs.FS
	ext         string
	cache       *template.Cache
	languages   *language.Registry
	defaultLang string
	copyright   string
	maxDepth    int
}

// New constructs an Engine applying the provided options. Missing pieces get
// the built-in defaults: a fresh cache, the built-in language registry, java
// as the starting language.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		ext:         ".tmpl",
		defaultLang: "java",
		maxDepth:    defaultMaxDepth,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.cache == nil {
		e.cache = template.NewCache()
	}
	if e.languages == nil {
		e.languages = language.NewRegistry()
	}
	if _, err := e.languages.Get(e.defaultLang); err != nil {
		return nil, fmt.Errorf("engine: default language: %w", err)
	}
	return e, nil
}

// Render loads (or reuses) the named template and evaluates it against data.
// data keys are the root identifiers visible to dotted paths.
func (e *Engine) Render(ctx context.Context, name string, data map[string]any) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	tree, err := e.load(name)
	if err != nil {
		return "", err
	}
	return e.renderTree(ctx, tree, data)
}

// RenderString parses src as an anonymous template and evaluates it against
// data. The parse is not cached.
func (e *Engine) RenderString(ctx context.Context, src string, data map[string]any) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	tree, err := template.Parse("<string>", src)
	if err != nil {
		return "", err
	}
	return e.renderTree(ctx, tree, data)
}

func (e *Engine) renderTree(ctx context.Context, tree *template.Tree, data map[string]any) (string, error) {
	lang, err := e.languages.Get(e.defaultLang)
	if err != nil {
		return "", fmt.Errorf("engine: %w", err)
	}

	s := &state{
		ctx:    ctx,
		engine: e,
		lang:   lang,
		scope:  newScope(data),
		stack:  []string{tree.Name},
	}

	var out strings.Builder
	if err := s.evalNodes(tree.Nodes, &out); err != nil {
		// Partial output is discarded with the builder; callers only ever see
		// complete renders.
		return "", err
	}
	return out.String(), nil
}

// load resolves a template name through the cache, parsing on miss. Racing
// parses of the same name are allowed; results are identical so last writer
// wins.
func (e *Engine) load(name string) (*template.Tree, error) {
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	if tree, ok := e.cache.Get(path); ok {
		return tree, nil
	}

	if e.fsys == nil {
		return nil, fmt.Errorf("engine: no template source configured, cannot load %q", path)
	}
	src, err := fs.ReadFile(e.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("engine: load template %q: %w", path, err)
	}

	tree, err := template.Parse(path, string(src))
	if err != nil {
		return nil, err
	}
	e.cache.Put(path, tree)
	return tree, nil
}
