package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CanonicalIdentifier returns the form under which usernames, emails and
// organization names are stored and compared: NFKC normalised, case folded and
// trimmed. Two inputs that differ only in Unicode case or compatibility forms
// share one canonical value.
func CanonicalIdentifier(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}

// DisplayName trims and NFKC-normalises s without changing case.
func DisplayName(s string) string {
	return norm.NFKC.String(strings.TrimSpace(s))
}
