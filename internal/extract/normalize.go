package extract

import (
	"strings"
	"unicode"
)

// collapseWs squeezes runs of whitespace into single spaces and trims.
func collapseWs(s string) string {
	return strings.TrimSpace(multiWsRx.ReplaceAllString(s, " "))
}

// digitsOnly strips everything but ASCII digits.
func digitsOnly(s string) string {
	return nonDigitRx.ReplaceAllString(s, "")
}

// FormatPhone renders a phone value as aaa-bbb-cccc, with any digits past
// the tenth appended as an extension. Values with fewer than ten digits are
// returned as given.
func FormatPhone(s string) string {
	s = strings.TrimSpace(s)
	digits := digitsOnly(s)
	if len(digits) < 10 {
		return s
	}
	out := digits[:3] + "-" + digits[3:6] + "-" + digits[6:10]
	if len(digits) > 10 {
		out += " x" + digits[10:]
	}
	return out
}

// titleCase lowercases each word and capitalizes its first letter,
// preserving accented initials.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// plausibleName reports whether a phrase could be a person name: 2-6
// whitespace-separated tokens, each containing at least one letter, and no
// footer/boilerplate keyword anywhere in it.
func plausibleName(s string) bool {
	tokens := strings.Fields(s)
	if len(tokens) < 2 || len(tokens) > 6 {
		return false
	}
	for _, tok := range tokens {
		if !letterRx.MatchString(tok) {
			return false
		}
	}
	lower := strings.ToLower(s)
	for _, bad := range nameBlacklist {
		if strings.Contains(lower, bad) {
			return false
		}
	}
	return true
}

// splitName returns the first token and the joined remainder of a cleaned
// full name.
func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
