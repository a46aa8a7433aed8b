package models

import (
	"strings"
	"unicode"
)

// Slugify derives a lowercase, hyphen-separated, URL-safe identifier
// from display text. It is a pure function: the same input always
// yields the same slug. Uniqueness is the store's job, not this one's.
func Slugify(text string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.TrimSpace(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		default:
			// Punctuation is dropped without acting as a separator,
			// so "Don't Stop" becomes "dont-stop".
		}
	}
	return b.String()
}
