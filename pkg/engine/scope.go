package engine

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-clientgen/pkg/api"
	"github.com/goliatone/go-clientgen/pkg/template"
)

// scope is a stack of binding frames. The root frame carries the render data;
// each for iteration pushes a frame with the loop variable and forloop
// metadata. Lookup of a path's first identifier starts at the innermost frame
// and falls outward.
type scope struct {
	frames []map[string]any
}

func newScope(root map[string]any) *scope {
	if root == nil {
		root = map[string]any{}
	}
	return &scope{frames: []map[string]any{root}}
}

func (s *scope) push(frame map[string]any) {
	s.frames = append(s.frames, frame)
}

func (s *scope) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scope) lookup(name string) (any, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// forloop carries per-iteration metadata, bound under "forloop" inside every
// for body.
type forloop struct {
	counter0 int
	total    int
}

func (f *forloop) Resolve(name string) (any, bool) {
	switch name {
	case "counter0":
		return f.counter0, true
	case "counter":
		return f.counter0 + 1, true
	case "revcounter":
		return f.total - f.counter0, true
	case "first":
		return f.counter0 == 0, true
	case "last":
		return f.counter0 == f.total-1, true
	}
	return nil, false
}

// resolvePath walks a dotted path against the scope. The first identifier is
// looked up across frames; every further step requires the current value to
// expose attributes. Failures are AttributeErrors carrying the template name
// and line.
func (s *state) resolvePath(path []string, line int) (any, error) {
	full := strings.Join(path, ".")

	value, ok := s.scope.lookup(path[0])
	if !ok {
		return nil, &template.AttributeError{Template: s.current(), Line: line, Path: full, Attr: path[0]}
	}

	for _, step := range path[1:] {
		next, ok := attribute(value, step)
		if !ok {
			return nil, &template.AttributeError{Template: s.current(), Line: line, Path: full, Attr: step}
		}
		value = next
	}
	return value, nil
}

// attribute resolves one step against a value. Entities implement
// api.Resolver; call_template keyword frames are plain maps.
func attribute(value any, name string) (any, bool) {
	switch v := value.(type) {
	case api.Resolver:
		return v.Resolve(name)
	case map[string]any:
		out, ok := v[name]
		return out, ok
	default:
		return nil, false
	}
}

// truthy implements if-condition semantics: non-empty sequence, non-null
// reference, non-zero scalar.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// stringify renders a resolved value as text for output and filters.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
