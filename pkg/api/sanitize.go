package api

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descPolicyOnce sync.Once
	descPolicy     *bluemonday.Policy
)

// SanitizeDescription strips markup from a user-written description so it is
// safe to expand into generated doc comments. Descriptions in API discovery
// documents routinely carry stray HTML; only plain text survives. Runs of
// whitespace introduced by tag removal collapse to single spaces, paragraph
// breaks (blank lines) are preserved.
func SanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	cleaned := descSanitizer().Sanitize(trimmed)
	cleaned = strings.ReplaceAll(cleaned, "&amp;", "&")
	cleaned = strings.ReplaceAll(cleaned, "&lt;", "<")
	cleaned = strings.ReplaceAll(cleaned, "&gt;", ">")
	cleaned = strings.ReplaceAll(cleaned, "&#34;", `"`)
	cleaned = strings.ReplaceAll(cleaned, "&#39;", "'")

	paragraphs := strings.Split(cleaned, "\n\n")
	for i, p := range paragraphs {
		paragraphs[i] = strings.Join(strings.Fields(p), " ")
	}

	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}

func descSanitizer() *bluemonday.Policy {
	descPolicyOnce.Do(func() {
		descPolicy = bluemonday.StrictPolicy()
	})
	return descPolicy
}
