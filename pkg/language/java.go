package language

import (
	"fmt"
	"strings"
)

var javaReserved = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "final", "finally", "float", "for", "goto", "if", "implements",
	"import", "instanceof", "int", "interface", "long", "native", "new",
	"package", "private", "protected", "public", "return", "short", "static",
	"strictfp", "super", "switch", "synchronized", "this", "throw", "throws",
	"transient", "try", "void", "volatile", "while",
	// Collide with common platform types or the generated base classes.
	"entry", "integer", "object", "string", "true", "false",
}

// Java returns the Language definition for Java targets. The type map mirrors
// the wire (type, format) pairs discovery documents use; uint32 maps to Long
// for autoboxing, int64-as-string stays Long on the code side.
func Java() *Language {
	return &Language{
		Name:                "java",
		FileExtension:       ".java",
		CommentContinuation: " * ",
		BlockCommentOpen:    "/*",
		BlockCommentClose:   " */",
		OptionalGroupOpen:   "{",
		OptionalGroupClose:  "}",
		TypeMap: map[TypeKey]string{
			{Type: "any"}:                         "java.lang.Object",
			{Type: "boolean"}:                     "java.lang.Boolean",
			{Type: "integer", Format: "int16"}:    "java.lang.Short",
			{Type: "integer", Format: "int32"}:    "java.lang.Integer",
			{Type: "integer", Format: "uint32"}:   "java.lang.Long",
			{Type: "integer"}:                     "java.lang.Integer",
			{Type: "number", Format: "double"}:    "java.lang.Double",
			{Type: "number", Format: "float"}:     "java.lang.Float",
			{Type: "number"}:                      "java.lang.Double",
			{Type: "object"}:                      "java.lang.Object",
			{Type: "string"}:                      "java.lang.String",
			{Type: "string", Format: "byte"}:      "java.lang.String",
			{Type: "string", Format: "date"}:      "com.google.api.client.util.DateTime",
			{Type: "string", Format: "date-time"}: "com.google.api.client.util.DateTime",
			{Type: "string", Format: "int64"}:     "java.lang.Long",
			{Type: "string", Format: "uint64"}:    "java.math.BigInteger",
		},
		DefaultType:     "java.lang.Object",
		ArrayTypeFormat: "java.util.List<%s>",
		MapTypeFormat:   "java.util.Map<String, %s>",
		ReservedNames:   reservedSet(javaReserved),
		escape:          escapeJava,
	}
}

// escapeJava escapes a string for inclusion inside a Java string literal.
// Control characters outside the named escapes become \u sequences, which the
// Java literal grammar parses back to the original code point.
func escapeJava(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '\b':
			b.WriteString(`\b`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func reservedSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
