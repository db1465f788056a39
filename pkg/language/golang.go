package language

import "strconv"

var goReserved = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var",
	"string", "int", "bool", "error", "true", "false",
}

// Go returns the Language definition for Go targets. Literal escaping rides
// on strconv.Quote, which is the language's own grammar.
func Go() *Language {
	return &Language{
		Name:                "go",
		FileExtension:       ".go",
		CommentContinuation: "// ",
		BlockCommentOpen:    "/*",
		BlockCommentClose:   "*/",
		OptionalGroupOpen:   "{",
		OptionalGroupClose:  "}",
		TypeMap: map[TypeKey]string{
			{Type: "any"}:                       "any",
			{Type: "boolean"}:                   "bool",
			{Type: "integer", Format: "int16"}:  "int16",
			{Type: "integer", Format: "int32"}:  "int32",
			{Type: "integer", Format: "uint32"}: "uint32",
			{Type: "integer"}:                   "int64",
			{Type: "number", Format: "double"}:  "float64",
			{Type: "number", Format: "float"}:   "float32",
			{Type: "number"}:                    "float64",
			{Type: "object"}:                    "map[string]any",
			{Type: "string"}:                    "string",
			{Type: "string", Format: "byte"}:    "[]byte",
			{Type: "string", Format: "int64"}:   "int64",
			{Type: "string", Format: "uint64"}:  "uint64",
		},
		DefaultType:     "any",
		ArrayTypeFormat: "[]%s",
		MapTypeFormat:   "map[string]%s",
		ReservedNames:   reservedSet(goReserved),
		escape: func(s string) string {
			quoted := strconv.Quote(s)
			return quoted[1 : len(quoted)-1]
		},
	}
}
