package slug

import "regexp"

var nonSlugRuns = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Slugify derives the URL-safe identifier for an entry title. Every maximal
// run of characters other than ASCII letters, digits, underscore and hyphen
// collapses to a single hyphen. Leading and trailing runs are kept as hyphens
// rather than stripped; existing entry URLs depend on that exact output.
func Slugify(title string) string {
	return nonSlugRuns.ReplaceAllString(title, "-")
}
