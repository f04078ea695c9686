// Package slug derives URL route keys from book titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Untitled is returned for titles that leave nothing to route on.
const Untitled = "untitled"

// letters NFKD does not decompose
var replacements = map[rune]string{
	'&': "and",
	'%': "percent",
	'$': "dollar",
	'ß': "ss",
	'æ': "ae",
	'Æ': "AE",
	'œ': "oe",
	'Œ': "OE",
	'ø': "o",
	'Ø': "O",
	'đ': "d",
	'Đ': "D",
	'ł': "l",
	'Ł': "L",
	'þ': "th",
	'Þ': "TH",
}

// Make lowercases title, strips diacritics, drops every character outside
// [a-z0-9] and joins the remaining words with single hyphens. A hyphen in the
// title separates words like whitespace does.
func Make(title string) string {
	if strings.TrimSpace(title) == "" {
		return Untitled
	}

	var mapped strings.Builder
	for _, r := range title {
		if rep, ok := replacements[r]; ok {
			mapped.WriteString(rep)
			continue
		}
		mapped.WriteRune(r)
	}

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, mapped.String())
	if err != nil {
		folded = mapped.String()
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingSep = true
		}
	}

	if b.Len() == 0 {
		return Untitled
	}
	return b.String()
}
