// Package language holds the per-target-language knowledge the rendering
// engine needs: string-literal escaping, comment framing, and the type and
// naming rules used when a model context is built from an API description.
// The engine itself stays language-agnostic; everything target-specific is
// looked up through a Language value.
package language

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// TypeKey identifies an entry in a language's wire-type map: the JSON schema
// type plus its optional format qualifier.
type TypeKey struct {
	Type   string
	Format string
}

// Language bundles the target-language rules consumed by the engine and the
// model-context builders.
type Language struct {
	// Name is the registry key, e.g. "java".
	Name string
	// FileExtension is appended to generated file names, e.g. ".java".
	FileExtension string

	// CommentContinuation prefixes every reflowed line inside a multi-line
	// comment body, e.g. " * " for Java.
	CommentContinuation string
	// BlockCommentOpen and BlockCommentClose frame a full block comment when
	// the engine emits one itself (copyright headers).
	BlockCommentOpen  string
	BlockCommentClose string

	// OptionalGroupOpen and OptionalGroupClose delimit the aggregated
	// optional-parameter entry in a parameter list.
	OptionalGroupOpen  string
	OptionalGroupClose string

	// TypeMap translates (json type, format) pairs to target type expressions.
	TypeMap map[TypeKey]string
	// DefaultType is used when TypeMap has no entry for a pair.
	DefaultType string
	// ArrayTypeFormat and MapTypeFormat wrap an element type expression, e.g.
	// "java.util.List<%s>".
	ArrayTypeFormat string
	MapTypeFormat   string

	// ReservedNames are identifiers that may not be used verbatim for members
	// or classes in the target language.
	ReservedNames map[string]struct{}

	escape func(string) string
}

// StringLiteral renders value as a complete string literal in the target
// language, quotes included. The round-trip property holds: parsing the
// output with the language's own literal grammar yields value again.
func (l *Language) StringLiteral(value string) string {
	return `"` + l.escape(value) + `"`
}

// EscapeString applies the language's escaping rules without adding quotes.
func (l *Language) EscapeString(value string) string {
	return l.escape(value)
}

// CommentBody reflows text into the body of a multi-line comment: each line
// carries the continuation prefix, long lines word-wrap, and blank lines
// between paragraphs survive as prefix-only lines. The open/close delimiters
// are not emitted; they belong to the surrounding template text.
func (l *Language) CommentBody(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if width <= 0 {
		width = 79
	}
	prefix := l.CommentContinuation
	limit := width - len(prefix)
	if limit < 20 {
		limit = 20
	}

	var lines []string
	for i, paragraph := range strings.Split(text, "\n\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		if i > 0 {
			lines = append(lines, strings.TrimRight(prefix, " "))
		}
		current := words[0]
		for _, word := range words[1:] {
			if len(current)+1+len(word) > limit {
				lines = append(lines, prefix+current)
				current = word
				continue
			}
			current += " " + word
		}
		lines = append(lines, prefix+current)
	}
	return strings.Join(lines, "\n")
}

// BlockComment wraps text in a complete block comment, delimiters included.
func (l *Language) BlockComment(text string) string {
	body := l.CommentBody(text, 79)
	if body == "" {
		return ""
	}
	return l.BlockCommentOpen + "\n" + body + "\n" + l.BlockCommentClose
}

// TypeFor maps a JSON schema (type, format) pair to a target type expression.
func (l *Language) TypeFor(jsonType, format string) string {
	if t, ok := l.TypeMap[TypeKey{Type: jsonType, Format: format}]; ok {
		return t
	}
	if t, ok := l.TypeMap[TypeKey{Type: jsonType}]; ok {
		return t
	}
	if l.DefaultType != "" {
		return l.DefaultType
	}
	return ToClassName(jsonType)
}

// ArrayType returns the target syntax for an array of elementType.
func (l *Language) ArrayType(elementType string) string {
	return fmt.Sprintf(l.ArrayTypeFormat, elementType)
}

// MapType returns the target syntax for a string-keyed map of elementType.
func (l *Language) MapType(elementType string) string {
	return fmt.Sprintf(l.MapTypeFormat, elementType)
}

// ToMemberName converts a wire-format name into a member identifier:
// lower-camel-cased, with reserved words prefixed by the API name.
func (l *Language) ToMemberName(wireName, apiName string) string {
	if _, reserved := l.ReservedNames[strings.ToLower(wireName)]; reserved {
		return apiName + ToClassName(wireName)
	}
	camel := ToClassName(wireName)
	if camel == "" {
		return camel
	}
	return strings.ToLower(camel[:1]) + camel[1:]
}

// ToSafeClassName converts a wire-format name into a class name, prefixing
// the API name when the result would collide with a reserved word.
func (l *Language) ToSafeClassName(wireName, apiName string) string {
	name := ToClassName(wireName)
	if _, reserved := l.ReservedNames[strings.ToLower(name)]; reserved {
		return ToClassName(apiName) + name
	}
	return name
}

// ToClassName upper-camel-cases a wire name, splitting on the separator
// characters discovery documents use.
func ToClassName(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' ' || r == '/'
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// Registry stores languages by name. The engine holds one and resolves
// {% language %} directives against it.
type Registry struct {
	mu        sync.RWMutex
	languages map[string]*Language
}

// NewRegistry creates a registry preloaded with the built-in languages.
func NewRegistry() *Registry {
	r := &Registry{languages: make(map[string]*Language)}
	r.MustRegister(Java())
	r.MustRegister(Go())
	return r
}

// Register adds a language by its Name. Duplicate names return an error.
func (r *Registry) Register(lang *Language) error {
	if lang == nil {
		return fmt.Errorf("language: language is required")
	}
	if lang.Name == "" {
		return fmt.Errorf("language: language name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.languages[lang.Name]; exists {
		return fmt.Errorf("language: language %q already registered", lang.Name)
	}
	r.languages[lang.Name] = lang
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(lang *Language) {
	if err := r.Register(lang); err != nil {
		panic(err)
	}
}

// Get retrieves a language by name.
func (r *Registry) Get(name string) (*Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lang, ok := r.languages[name]
	if !ok {
		return nil, fmt.Errorf("language: language %q not found", name)
	}
	return lang, nil
}

// List returns the sorted names of all registered languages.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.languages))
	for name := range r.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
