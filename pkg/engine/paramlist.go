package engine

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-clientgen/pkg/template"
)

// paramCollector gathers the entries produced by parameter blocks inside one
// parameter_list. Ordinary entries keep body order; optional entries are
// aggregated into a single trailing group.
type paramCollector struct {
	ordinary []string
	optional []string
}

// evalParameterList evaluates the block body for its parameter entries only:
// literal text between entries (indentation, newlines, loop scaffolding) is
// discarded, then the collected entries are joined with ", " inside the
// call's parentheses. Zero entries renders empty parentheses.
func (s *state) evalParameterList(n *template.BlockNode, out *strings.Builder) error {
	collector := &paramCollector{}
	s.params = append(s.params, collector)

	var scratch strings.Builder
	err := s.evalNodes(n.Body, &scratch)

	s.params = s.params[:len(s.params)-1]
	if err != nil {
		return err
	}

	entries := append([]string{}, collector.ordinary...)
	if len(collector.optional) > 0 {
		group := s.lang.OptionalGroupOpen + strings.Join(collector.optional, ", ") + s.lang.OptionalGroupClose
		entries = append(entries, group)
	}

	out.WriteString("(")
	out.WriteString(strings.Join(entries, ", "))
	out.WriteString(")")
	return nil
}

// evalParameter renders one formal parameter's text, trimmed of surrounding
// blank space, and hands it to the innermost collector.
func (s *state) evalParameter(n *template.BlockNode) error {
	if len(s.params) == 0 {
		return fmt.Errorf("engine: template %s:%d: parameter outside parameter_list", s.current(), n.Line)
	}
	collector := s.params[len(s.params)-1]

	var buf strings.Builder
	if err := s.evalNodes(n.Body, &buf); err != nil {
		return err
	}
	entry := strings.TrimSpace(buf.String())
	if entry == "" {
		return nil
	}

	if len(n.Args) == 1 && n.Args[0] == "optional" {
		collector.optional = append(collector.optional, entry)
		return nil
	}
	collector.ordinary = append(collector.ordinary, entry)
	return nil
}
