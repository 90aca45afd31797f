// Package htmlsanitize strips unsafe markup from user-supplied free text
// before it is stored. Suggestions are the only place volunteers submit
// arbitrary prose, and that prose is later shown to recruiters verbatim.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.StrictPolicy()

// Sanitize removes all HTML from s, leaving plain text.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
