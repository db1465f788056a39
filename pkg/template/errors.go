package template

import (
	"fmt"
	"strings"
)

// The four error kinds a render can fail with. Parse-time failures
// (SyntaxError, UnknownTagError) surface before any evaluation happens;
// AttributeError and TemplateCycleError abort a single render. All carry the
// template name and, where meaningful, the source line so failures are
// actionable.

// SyntaxError reports malformed template text: unterminated tags, mismatched
// block nesting, bad tag arguments, unknown filters.
type SyntaxError struct {
	Template string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template %s:%d: syntax error: %s", e.Template, e.Line, e.Msg)
}

// UnknownTagError reports a tag name outside the closed grammar. It is raised
// at parse time, never skipped.
type UnknownTagError struct {
	Template string
	Line     int
	Tag      string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("template %s:%d: unknown tag %q", e.Template, e.Line, e.Tag)
}

// AttributeError reports a dotted path that failed to resolve during
// evaluation.
type AttributeError struct {
	Template string
	Line     int
	Path     string
	Attr     string
}

func (e *AttributeError) Error() string {
	if e.Attr != "" && e.Attr != e.Path {
		return fmt.Sprintf("template %s:%d: attribute %q not found resolving %q", e.Template, e.Line, e.Attr, e.Path)
	}
	return fmt.Sprintf("template %s:%d: cannot resolve %q", e.Template, e.Line, e.Path)
}

// TemplateCycleError reports a circular call_template chain.
type TemplateCycleError struct {
	Chain []string
}

func (e *TemplateCycleError) Error() string {
	return fmt.Sprintf("template cycle: %s", strings.Join(e.Chain, " -> "))
}
