package news

import (
	"regexp"
	"strings"
)

// Google News titles carry a trailing " - 出版社" suffix and occasionally a
// parenthesized qualifier; both are noise in a one-line digest.
var (
	separatorRe     = regexp.MustCompile(`\s*[-–—|]\s*`)
	parentheticalRe = regexp.MustCompile(`\s*[（(][^（）()]*[）)]\s*$`)
)

// CleanTitle trims the title, cuts it at the first dash/pipe separator, and
// strips the trailing run of parentheticals. Applying it twice gives the same
// result as applying it once.
func CleanTitle(raw string) string {
	t := strings.TrimSpace(raw)
	if parts := separatorRe.Split(t, 2); len(parts) > 0 {
		t = parts[0]
	}
	// Titles can end in several parentheticals; remove until none remain.
	for {
		next := parentheticalRe.ReplaceAllString(t, "")
		if next == t {
			break
		}
		t = next
	}
	return strings.TrimSpace(t)
}
