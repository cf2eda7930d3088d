package services

import (
	"regexp"
	"strings"
)

var (
	entityReplacer = strings.NewReplacer(
		"&quot;", `"`,
		"&#39;", "'",
		"&lt;", "<",
		"&gt;", ">",
	)

	// A line break and the indentation that follows it.
	lineBreakIndent = regexp.MustCompile(`\r?\n\s*`)
)

// Normalize cleans text pasted from HTML pages or pretty-printers before it
// is classified: entities are decoded, tabs dropped, every line break plus its
// indentation collapsed to one space, and the result trimmed.
func Normalize(raw string) string {
	s := entityReplacer.Replace(raw)
	// &amp; last so "&amp;lt;" decodes to "&lt;" and not "<".
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "\t", "")
	s = collapseLineBreaks(s)
	return strings.TrimSpace(s)
}

func collapseLineBreaks(s string) string {
	return lineBreakIndent.ReplaceAllString(s, " ")
}
