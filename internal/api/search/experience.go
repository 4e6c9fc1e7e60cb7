package search

import (
	"strings"
)

// Experience-level patterns are a heuristic classifier over free job
// description text, not a structured field. Each bucket is a hand-built
// alternation over the phrasings that bucket is usually written as:
// numeric years (optionally "+"), spelled-out numbers, and qualifier
// phrases like "at least N years". False positives are expected; the
// contract is reproducing these exact bucket boundaries, not semantic
// correctness.
//
// The patterns are written in Postgres ARE dialect because they are
// only ever matched server-side via the `~` operator. Word boundaries
// are `\y` there; `\b` would be a literal backspace and the predicate
// would never match.
var experienceBuckets = []struct {
	prefix   string
	branches []string
}{
	{"0-1", []string{
		`\y0-1\s*years?\y`,
		`\y(?:0|zero|1|one)\s*(?:\+?\s*)?(?:years?|yrs?)\y`,
		`\yno\s+experience\y`,
		`\yentry[-\s]?level\y`,
		`\yfresh(?:er)?\y`,
	}},
	{"2+", []string{
		`\y(?:[2-9]|[1-9][0-9]+)\s*\+?\s*(?:years?|yrs?)\y`,
		`\y(?:two|three|four|five|six|seven|eight|nine|ten)\s*\+?\s*(?:years?|yrs?)\y`,
		`\y(?:at\s+least|min(?:imum)?)\s*(?:2|two)\s*(?:years?|yrs?)\y`,
	}},
	{"3+", []string{
		`\y(?:[3-9]|[1-9][0-9]+)\s*\+?\s*(?:years?|yrs?)\y`,
		`\y(?:three|four|five|six|seven|eight|nine|ten)\s*\+?\s*(?:years?|yrs?)\y`,
		`\y(?:at\s+least|min(?:imum)?)\s*(?:3|three)\s*(?:years?|yrs?)\y`,
	}},
	{"5+", []string{
		`\y(?:[5-9]|[1-9][0-9]+)\s*\+?\s*(?:years?|yrs?)\y`,
		`\y(?:five|six|seven|eight|nine|ten)\s*\+?\s*(?:years?|yrs?)\y`,
		`\y(?:at\s+least|min(?:imum)?)\s*(?:5|five)\s*(?:years?|yrs?)\y`,
	}},
	{"10+", []string{
		`\y(?:1[0-9]|[2-9][0-9]+)\s*\+?\s*(?:years?|yrs?)\y`,
		`\y(?:ten|eleven|twelve)\s*\+?\s*(?:years?|yrs?)\y`,
		`\y(?:at\s+least|min(?:imum)?)\s*(?:10|ten)\s*(?:years?|yrs?)\y`,
	}},
}

// ExperiencePattern maps an experience-level label to a disjunctive
// Postgres regular expression for case-insensitive matching against
// lower-cased description text. Buckets are selected by prefix ("0-1",
// "2+", "3+", "5+", "10+"); an unrecognized label yields ok=false and
// the dimension is not filtered.
func ExperiencePattern(label string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return "", false
	}
	for _, bucket := range experienceBuckets {
		if strings.HasPrefix(normalized, bucket.prefix) {
			return strings.Join(bucket.branches, "|"), true
		}
	}
	return "", false
}
