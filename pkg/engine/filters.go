package engine

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// filterFunc is one entry of the closed filter table: a pure text transform,
// with the render state available for language-dependent filters.
type filterFunc func(s *state, in string) (string, error)

// The filter set is closed; the parser already rejected names outside this
// table.
var filterTable = map[string]filterFunc{
	"capfirst":      filterCapfirst,
	"block_comment": filterBlockComment,
	"noblanklines":  filterNoBlankLines,
	"literal":       filterLiteral,
}

func (s *state) applyFilters(text string, names []string) (string, error) {
	for _, name := range names {
		fn, ok := filterTable[name]
		if !ok {
			return "", fmt.Errorf("unknown filter %q", name)
		}
		var err error
		text, err = fn(s, text)
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

// filterCapfirst upper-cases the first rune, leaving the rest unchanged.
func filterCapfirst(_ *state, in string) (string, error) {
	if in == "" {
		return "", nil
	}
	r, size := utf8.DecodeRuneInString(in)
	return string(unicode.ToUpper(r)) + in[size:], nil
}

// filterBlockComment reflows the text into a multi-line comment body for the
// active language. Delimiters come from the surrounding template text.
func filterBlockComment(s *state, in string) (string, error) {
	return s.lang.CommentBody(in, 79), nil
}

// filterNoBlankLines collapses any run of two or more blank lines (blank
// after trimming trailing whitespace) into a single blank line, removing the
// artifacts tag evaluation leaves behind while keeping intentional single
// breaks.
func filterNoBlankLines(_ *state, in string) (string, error) {
	lines := strings.Split(in, "\n")
	out := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blankRun = 0
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n"), nil
}

// filterLiteral emits the text as a string literal in the active language.
func filterLiteral(s *state, in string) (string, error) {
	return s.lang.StringLiteral(in), nil
}
