package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-clientgen/pkg/api"
	"github.com/goliatone/go-clientgen/pkg/language"
	"github.com/goliatone/go-clientgen/pkg/template"
)

// state is the per-render evaluation context. Each render owns one; nothing
// here is shared across renders.
type state struct {
	ctx    context.Context
	engine *Engine
	lang   *language.Language
	scope  *scope

	// stack is the chain of template names entered via call_template, used
	// for cycle detection and error messages.
	stack []string

	// params is the stack of active parameter_list collectors.
	params []*paramCollector
}

func (s *state) current() string {
	return s.stack[len(s.stack)-1]
}

func (s *state) evalNodes(nodes []template.Node, out *strings.Builder) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	for _, node := range nodes {
		if err := s.evalNode(node, out); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) evalNode(node template.Node, out *strings.Builder) error {
	switch n := node.(type) {
	case *template.TextNode:
		out.WriteString(n.Text)
		return nil
	case *template.VarNode:
		return s.evalVar(n, out)
	case *template.TagNode:
		return s.evalTag(n, out)
	case *template.BlockNode:
		return s.evalBlock(n, out)
	default:
		return fmt.Errorf("engine: template %s: unhandled node %T", s.current(), node)
	}
}

func (s *state) evalVar(n *template.VarNode, out *strings.Builder) error {
	value, err := s.resolvePath(n.Path, n.Line)
	if err != nil {
		return err
	}
	text, err := s.applyFilters(stringify(value), n.Filters)
	if err != nil {
		return fmt.Errorf("engine: template %s:%d: %w", s.current(), n.Line, err)
	}
	out.WriteString(text)
	return nil
}

func (s *state) evalTag(n *template.TagNode, out *strings.Builder) error {
	switch n.Name {
	case "language":
		lang, err := s.engine.languages.Get(n.Args[0])
		if err != nil {
			return fmt.Errorf("engine: template %s:%d: %w", s.current(), n.Line, err)
		}
		s.lang = lang
		return nil

	case "copyright_block":
		header := strings.TrimSpace(s.engine.copyright)
		if header == "" {
			return nil
		}
		out.WriteString(s.lang.BlockComment(header))
		return nil

	case "templatetag":
		value, _ := template.TemplateTagValue(n.Args[0])
		out.WriteString(value)
		return nil

	case "literal":
		value, err := s.resolvePath(strings.Split(n.Args[0], "."), n.Line)
		if err != nil {
			return err
		}
		out.WriteString(s.lang.StringLiteral(stringify(value)))
		return nil

	case "doc_comment_if":
		return s.evalDocCommentIf(n, out)

	case "call_template":
		return s.evalCallTemplate(n, out)
	}
	return &template.UnknownTagError{Template: s.current(), Line: n.Line, Tag: n.Name}
}

// evalDocCommentIf emits a reflowed doc line for the expression's description
// and stays silent on any absence: unresolvable path, entity without a
// description, empty description.
func (s *state) evalDocCommentIf(n *template.TagNode, out *strings.Builder) error {
	value, err := s.resolvePath(strings.Split(n.Args[0], "."), n.Line)
	if err != nil {
		return nil
	}

	text := ""
	switch v := value.(type) {
	case string:
		text = v
	case api.Resolver:
		if d, ok := v.Resolve("description"); ok {
			text = stringify(d)
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	out.WriteString(s.lang.CommentBody(text, 79))
	return nil
}

func (s *state) evalCallTemplate(n *template.TagNode, out *strings.Builder) error {
	name := unquote(n.Args[0])

	for _, seen := range s.stack {
		if seen == name || seen == name+s.engine.ext {
			return &template.TemplateCycleError{Chain: append(append([]string{}, s.stack...), name)}
		}
	}
	if len(s.stack) >= s.engine.maxDepth {
		return &template.TemplateCycleError{Chain: append(append([]string{}, s.stack...), name)}
	}

	frame := make(map[string]any, len(n.Args)-1)
	for _, kv := range n.Args[1:] {
		key, raw, _ := strings.Cut(kv, "=")
		if quoted := unquote(raw); quoted != raw {
			frame[key] = quoted
			continue
		}
		value, err := s.resolvePath(strings.Split(raw, "."), n.Line)
		if err != nil {
			return err
		}
		frame[key] = value
	}

	tree, err := s.engine.load(name)
	if err != nil {
		return fmt.Errorf("engine: template %s:%d: %w", s.current(), n.Line, err)
	}

	// The called template gets a fresh scope built from the keyword
	// arguments; the caller's bindings are not visible. Language survives
	// into the call but any {% language %} inside only affects the callee.
	savedScope, savedLang := s.scope, s.lang
	s.scope = newScope(frame)
	s.stack = append(s.stack, tree.Name)

	err = s.evalNodes(tree.Nodes, out)

	s.stack = s.stack[:len(s.stack)-1]
	s.scope, s.lang = savedScope, savedLang
	return err
}

func (s *state) evalBlock(n *template.BlockNode, out *strings.Builder) error {
	switch n.Name {
	case "if":
		value, err := s.resolvePath(strings.Split(n.Args[0], "."), n.Line)
		if err != nil {
			return err
		}
		if truthy(value) {
			return s.evalNodes(n.Body, out)
		}
		return s.evalNodes(n.Else, out)

	case "for":
		return s.evalFor(n, out)

	case "filter":
		var buf strings.Builder
		if err := s.evalNodes(n.Body, &buf); err != nil {
			return err
		}
		text, err := s.applyFilters(buf.String(), strings.Split(n.Args[0], "|"))
		if err != nil {
			return fmt.Errorf("engine: template %s:%d: %w", s.current(), n.Line, err)
		}
		out.WriteString(text)
		return nil

	case "imports":
		// Pass-through: the body is evaluated and emitted in order. Any
		// dedup/sort pass belongs to a collaborator outside this engine.
		return s.evalNodes(n.Body, out)

	case "parameter_list":
		return s.evalParameterList(n, out)

	case "parameter":
		return s.evalParameter(n)
	}
	return &template.UnknownTagError{Template: s.current(), Line: n.Line, Tag: n.Name}
}

func (s *state) evalFor(n *template.BlockNode, out *strings.Builder) error {
	varName, path := n.Args[0], n.Args[2]

	value, err := s.resolvePath(strings.Split(path, "."), n.Line)
	if err != nil {
		return err
	}

	var items []any
	switch v := value.(type) {
	case nil:
		// Optional collections iterate zero times.
	case []any:
		items = v
	default:
		return fmt.Errorf("engine: template %s:%d: %q does not resolve to a sequence", s.current(), n.Line, path)
	}

	for i, item := range items {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		s.scope.push(map[string]any{
			varName:   item,
			"forloop": &forloop{counter0: i, total: len(items)},
		})
		err := s.evalNodes(n.Body, out)
		s.scope.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
