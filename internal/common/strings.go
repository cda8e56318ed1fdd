package common

import (
	"strings"
	"unicode"
)

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}

// SplitList splits a comma or whitespace separated directive into trimmed,
// non-empty tokens.
func SplitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// LowerFirst lower-cases the leading upper-case run of an identifier, keeping
// the last capital of a run that starts a new word: "ID" -> "id",
// "URLPath" -> "urlPath", "Status" -> "status".
func LowerFirst(s string) string {
	runes := []rune(s)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	if n > 1 && n < len(runes) {
		n--
	}

	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}
