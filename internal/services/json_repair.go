package services

import (
	"regexp"
	"strings"
)

var (
	repairReplacer = strings.NewReplacer(
		"&quot;", `"`,
		"&#39;", "'",
		"\t", "",
	)

	// An identifier used as an object key without quotes: {id: or , name :
	bareKey = regexp.MustCompile(`([{,]\s*)([a-zA-Z_$][a-zA-Z0-9_$]*)\s*:`)
)

// RepairJSON fixes the most common hand-written JSON mistake, unquoted object
// keys. Line breaks and the indentation after them are removed outright, unlike
// the normalizer which turns them into a space. It does not validate the result.
func RepairJSON(text string) string {
	s := repairReplacer.Replace(text)
	s = strings.TrimSpace(lineBreakIndent.ReplaceAllString(s, ""))
	return bareKey.ReplaceAllString(s, `${1}"${2}":`)
}
