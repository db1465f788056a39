package template

import "strings"

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenTag            // {% ... %}
	tokenVar            // {{ ... }}
)

type token struct {
	kind    tokenKind
	content string
	line    int
}

// lex splits template source into text, tag and variable tokens, tracking the
// line each token starts on. Delimiters never nest, so a linear scan is
// enough.
func lex(name, src string) ([]token, error) {
	var tokens []token
	line := 1
	for len(src) > 0 {
		open := strings.IndexByte(src, '{')
		for open >= 0 && open+1 < len(src) && src[open+1] != '%' && src[open+1] != '{' {
			next := strings.IndexByte(src[open+1:], '{')
			if next < 0 {
				open = -1
				break
			}
			open += 1 + next
		}
		if open < 0 || open+1 >= len(src) {
			tokens = append(tokens, token{kind: tokenText, content: src, line: line})
			break
		}

		if open > 0 {
			text := src[:open]
			tokens = append(tokens, token{kind: tokenText, content: text, line: line})
			line += strings.Count(text, "\n")
			src = src[open:]
		}

		var kind tokenKind
		var closer string
		if src[1] == '%' {
			kind, closer = tokenTag, "%}"
		} else {
			kind, closer = tokenVar, "}}"
		}

		end := strings.Index(src[2:], closer)
		if end < 0 {
			return nil, &SyntaxError{Template: name, Line: line, Msg: "unterminated tag"}
		}
		end += 2
		content := strings.TrimSpace(src[2:end])
		if content == "" {
			return nil, &SyntaxError{Template: name, Line: line, Msg: "empty tag"}
		}
		tokens = append(tokens, token{kind: kind, content: content, line: line})
		line += strings.Count(src[:end+2], "\n")
		src = src[end+2:]
	}
	return tokens, nil
}
