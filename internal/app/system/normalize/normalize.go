// Package normalize holds small input-normalization helpers used before
// values reach storage or comparisons.
package normalize

import "strings"

// Email trims whitespace and lowercases. Email addresses are compared
// case-insensitively everywhere, so the canonical form is lowercase.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims surrounding whitespace. Case is preserved — usernames
// display as entered and only the store's folded lookups ignore case.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Name trims surrounding whitespace, preserving interior case and spacing.
func Name(s string) string {
	return strings.TrimSpace(s)
}
