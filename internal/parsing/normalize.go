package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// bulletRunes are the glyphs stripped from the start of a line or token
const bulletRunes = "•-*·>"

// normalizeLines splits raw text into trimmed candidate lines, dropping lines of
// one rune or less and pagination markers such as "Page 2".
func normalizeLines(raw string, pagination *regexp.Regexp) []string {
	raw = norm.NFC.String(raw)

	parts := strings.Split(raw, "\n")
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if runeLen(line) <= 1 {
			continue
		}
		if pagination.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// cleanBullet removes leading whitespace and bullet glyphs
func cleanBullet(text string) string {
	text = strings.TrimLeftFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(bulletRunes, r)
	})
	return strings.TrimSpace(text)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// removeFirst cuts the first match of re out of s
func removeFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
