package songwriter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// CleanLine flattens text to a single trimmed line of at most maxLen
// characters, ending in "..." when it had to be cut.
func CleanLine(text string, maxLen int) string {
	clean := strings.TrimSpace(lineBreaks.ReplaceAllString(text, " "))
	return Truncate(clean, maxLen)
}

// Truncate cuts s to maxLen characters, replacing the tail with "..." when
// s is longer. Lengths count runes so a multi-byte character is never split.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	keep := maxLen - len(ellipsis)
	if keep <= 0 {
		if maxLen <= 0 {
			return ""
		}
		return ellipsis[:maxLen]
	}
	return string([]rune(s)[:keep]) + ellipsis
}
