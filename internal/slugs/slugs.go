// Package slugs provides canonical slugification for term names.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// TermSlug converts a term name to a URL-safe slug.
//
// Falls back to a lowercased, dash-separated form when the slug library
// produces an empty result (e.g. names made entirely of symbols).
func TermSlug(name string) string {
	slugged := goslug.Make(name)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	}
	return slugged
}
