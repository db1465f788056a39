// Package template implements the parsing half of the rendering engine: a
// lexer and parser for the closed tag grammar used by the client-library
// templates, the node tree renders evaluate, and the concurrent tree cache.
package template

import (
	"strings"
)

// endTagFor maps each block tag to its closing tag. Closing tags must match
// the innermost open block; anything else is a SyntaxError.
var endTagFor = map[string]string{
	"if":             "endif",
	"for":            "endfor",
	"filter":         "endfilter",
	"imports":        "endimports",
	"parameter_list": "end_parameter_list",
	"parameter":      "end_parameter",
	"comment":        "endcomment",
}

var closingTags = func() map[string]struct{} {
	set := make(map[string]struct{}, len(endTagFor))
	for _, end := range endTagFor {
		set[end] = struct{}{}
	}
	return set
}()

// simpleTags are statement tags without a body.
var simpleTags = map[string]struct{}{
	"language":        {},
	"copyright_block": {},
	"call_template":   {},
	"doc_comment_if":  {},
	"literal":         {},
	"templatetag":     {},
}

// Filters is the closed filter set. Filter names are validated at parse time
// so a typo fails before any evaluation is attempted; the evaluator owns the
// implementations.
var Filters = map[string]struct{}{
	"capfirst":      {},
	"block_comment": {},
	"noblanklines":  {},
	"literal":       {},
}

// templatetagArgs are the delimiter names {% templatetag %} accepts, mirroring
// the delimiters the lexer recognizes.
var templatetagArgs = map[string]string{
	"openblock":     "{%",
	"closeblock":    "%}",
	"openvariable":  "{{",
	"closevariable": "}}",
	"openbrace":     "{",
	"closebrace":    "}",
}

// TemplateTagValue returns the literal text a templatetag argument stands for.
func TemplateTagValue(arg string) (string, bool) {
	v, ok := templatetagArgs[arg]
	return v, ok
}

// Parse turns template source into a Tree, or fails with SyntaxError or
// UnknownTagError. Parsing is a pure function of the source text: parsing the
// same text twice yields structurally equal trees.
func Parse(name, src string) (*Tree, error) {
	tokens, err := lex(name, src)
	if err != nil {
		return nil, err
	}
	p := &parser{name: name, tokens: tokens}
	nodes, err := p.parseNodes("")
	if err != nil {
		return nil, err
	}
	return &Tree{Name: name, Nodes: nodes}, nil
}

type parser struct {
	name   string
	tokens []token
	pos    int
}

func (p *parser) next() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	t := p.tokens[p.pos]
	p.pos++
	return t, true
}

// parseNodes consumes tokens until the given closing tag (or end of input
// when until is empty). The closing token itself is consumed.
func (p *parser) parseNodes(until string) ([]Node, error) {
	var nodes []Node
	for {
		tok, ok := p.next()
		if !ok {
			if until != "" {
				return nil, &SyntaxError{Template: p.name, Line: p.lastLine(), Msg: "unterminated block, expected " + until}
			}
			return nodes, nil
		}

		switch tok.kind {
		case tokenText:
			nodes = append(nodes, &TextNode{Text: tok.content})

		case tokenVar:
			node, err := p.parseVar(tok)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		case tokenTag:
			fields := strings.Fields(tok.content)
			tag := fields[0]
			args := fields[1:]

			if tag == until {
				if len(args) > 0 {
					return nil, &SyntaxError{Template: p.name, Line: tok.line, Msg: tag + " takes no arguments"}
				}
				return nodes, nil
			}
			if until == "endif" && tag == "else" {
				// Handled by the if parser; rewind so it sees the else.
				p.pos--
				return nodes, nil
			}
			if _, isClosing := closingTags[tag]; isClosing || tag == "else" {
				return nil, &SyntaxError{Template: p.name, Line: tok.line, Msg: "unexpected " + tag}
			}

			node, err := p.parseTag(tag, args, tok.line)
			if err != nil {
				return nil, err
			}
			if node != nil {
				nodes = append(nodes, node)
			}
		}
	}
}

func (p *parser) parseTag(tag string, args []string, line int) (Node, error) {
	if end, isBlock := endTagFor[tag]; isBlock {
		switch tag {
		case "comment":
			return nil, p.skipComment(line)
		case "if":
			return p.parseIf(args, line)
		default:
			if err := p.checkBlockArgs(tag, args, line); err != nil {
				return nil, err
			}
			body, err := p.parseNodes(end)
			if err != nil {
				return nil, err
			}
			return &BlockNode{Name: tag, Args: args, Body: body, Line: line}, nil
		}
	}

	if _, isSimple := simpleTags[tag]; !isSimple {
		return nil, &UnknownTagError{Template: p.name, Line: line, Tag: tag}
	}
	if err := p.checkSimpleArgs(tag, args, line); err != nil {
		return nil, err
	}
	return &TagNode{Name: tag, Args: args, Line: line}, nil
}

func (p *parser) parseIf(args []string, line int) (Node, error) {
	if len(args) != 1 {
		return nil, &SyntaxError{Template: p.name, Line: line, Msg: "if requires a single attribute path"}
	}
	body, err := p.parseNodes("endif")
	if err != nil {
		return nil, err
	}

	node := &BlockNode{Name: "if", Args: args, Body: body, Line: line}

	// parseNodes rewound on an else tag; anything else means endif consumed.
	if tok, ok := p.peek(); ok && tok.kind == tokenTag {
		if fields := strings.Fields(tok.content); fields[0] == "else" {
			if len(fields) > 1 {
				return nil, &SyntaxError{Template: p.name, Line: tok.line, Msg: "else takes no arguments"}
			}
			p.pos++
			elseBody, err := p.parseNodes("endif")
			if err != nil {
				return nil, err
			}
			node.Else = elseBody
		}
	}
	return node, nil
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

// skipComment discards everything up to the matching endcomment. Comment
// bodies are never parsed, so any tag soup inside is fine.
func (p *parser) skipComment(line int) error {
	for {
		tok, ok := p.next()
		if !ok {
			return &SyntaxError{Template: p.name, Line: line, Msg: "unterminated comment"}
		}
		if tok.kind == tokenTag && strings.TrimSpace(tok.content) == "endcomment" {
			return nil
		}
	}
}

func (p *parser) checkBlockArgs(tag string, args []string, line int) error {
	switch tag {
	case "for":
		if len(args) != 3 || args[1] != "in" {
			return &SyntaxError{Template: p.name, Line: line, Msg: "for requires the form: for VAR in PATH"}
		}
	case "filter":
		if len(args) != 1 {
			return &SyntaxError{Template: p.name, Line: line, Msg: "filter requires a filter chain"}
		}
		for _, name := range strings.Split(args[0], "|") {
			if _, ok := Filters[name]; !ok {
				return &SyntaxError{Template: p.name, Line: line, Msg: "unknown filter " + name}
			}
		}
	case "imports":
		if len(args) > 1 {
			return &SyntaxError{Template: p.name, Line: line, Msg: "imports takes at most one argument"}
		}
	case "parameter_list":
		if len(args) > 0 {
			return &SyntaxError{Template: p.name, Line: line, Msg: "parameter_list takes no arguments"}
		}
	case "parameter":
		if len(args) > 1 || (len(args) == 1 && args[0] != "optional") {
			return &SyntaxError{Template: p.name, Line: line, Msg: "parameter accepts only the optional flag"}
		}
	}
	return nil
}

func (p *parser) checkSimpleArgs(tag string, args []string, line int) error {
	switch tag {
	case "language":
		if len(args) != 1 {
			return &SyntaxError{Template: p.name, Line: line, Msg: "language requires a language name"}
		}
	case "copyright_block":
		if len(args) != 0 {
			return &SyntaxError{Template: p.name, Line: line, Msg: "copyright_block takes no arguments"}
		}
	case "call_template":
		if len(args) < 1 {
			return &SyntaxError{Template: p.name, Line: line, Msg: "call_template requires a template name"}
		}
		for _, kv := range args[1:] {
			if !strings.Contains(kv, "=") {
				return &SyntaxError{Template: p.name, Line: line, Msg: "call_template arguments must be key=value"}
			}
		}
	case "doc_comment_if", "literal":
		if len(args) != 1 {
			return &SyntaxError{Template: p.name, Line: line, Msg: tag + " requires an expression"}
		}
	case "templatetag":
		if len(args) != 1 {
			return &SyntaxError{Template: p.name, Line: line, Msg: "templatetag requires a delimiter name"}
		}
		if _, ok := templatetagArgs[args[0]]; !ok {
			return &SyntaxError{Template: p.name, Line: line, Msg: "unknown templatetag argument " + args[0]}
		}
	}
	return nil
}

func (p *parser) parseVar(tok token) (Node, error) {
	parts := strings.Split(tok.content, "|")
	pathExpr := strings.TrimSpace(parts[0])
	if pathExpr == "" {
		return nil, &SyntaxError{Template: p.name, Line: tok.line, Msg: "empty variable expression"}
	}

	var filters []string
	for _, raw := range parts[1:] {
		name := strings.TrimSpace(raw)
		if _, ok := Filters[name]; !ok {
			return nil, &SyntaxError{Template: p.name, Line: tok.line, Msg: "unknown filter " + name}
		}
		filters = append(filters, name)
	}

	path := strings.Split(pathExpr, ".")
	for _, step := range path {
		if step == "" {
			return nil, &SyntaxError{Template: p.name, Line: tok.line, Msg: "malformed attribute path " + pathExpr}
		}
	}
	return &VarNode{Path: path, Filters: filters, Line: tok.line}, nil
}

func (p *parser) lastLine() int {
	if len(p.tokens) == 0 {
		return 1
	}
	return p.tokens[len(p.tokens)-1].line
}
