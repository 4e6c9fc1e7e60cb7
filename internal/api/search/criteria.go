package search

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const DefaultPerPage = 20

// Criteria is the normalized, validated form of all inbound filter
// inputs. Every dimension is optional; the zero value of a field means
// "not filtered". Handlers construct it with ParseCriteria once at the
// boundary so the composer never touches raw query values.
type Criteria struct {
	Search          string
	JobTypes        string
	BenefitID       int64
	CategoryID      int64
	Countries       []string
	Salary          string
	Skills          []string
	DatePosted      string
	ExperienceLevel string
	EmployerID      int64
	Sort            string
	Page            int
	PerPage         int
}

// ParseCriteria builds Criteria from raw query parameters. Malformed
// values never fail the request: non-numeric ids and page sizes are
// ignored or clamped and the affected dimension simply contributes no
// predicate.
func ParseCriteria(values url.Values) Criteria {
	c := Criteria{
		Search:          strings.TrimSpace(values.Get("search")),
		JobTypes:        strings.TrimSpace(values.Get("jobtypes")),
		BenefitID:       permissiveID(values.Get("benefits")),
		CategoryID:      permissiveID(values.Get("category")),
		Salary:          values.Get("salary"),
		DatePosted:      values.Get("dateposted"),
		ExperienceLevel: values.Get("experiencelevel"),
		EmployerID:      permissiveID(values.Get("company")),
		Sort:            values.Get("sort"),
		Page:            permissiveInt(values.Get("page"), 1, 1),
		PerPage:         permissiveInt(values.Get("per_page"), DefaultPerPage, 1),
	}

	// A single country value and/or a list-or-comma-separated countries
	// field; both are merged.
	if single := strings.TrimSpace(values.Get("country")); single != "" {
		c.Countries = append(c.Countries, single)
	}
	c.Countries = append(c.Countries, splitMulti(values["countries"])...)

	c.Skills = splitMulti(values["skills"])

	return c
}

// splitMulti accepts repeated query values and/or comma-separated
// values, returning the trimmed non-empty entries.
func splitMulti(raw []string) []string {
	var out []string
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// permissiveID parses a positive integer id, returning 0 (no filter) on
// anything unparseable or non-positive.
func permissiveID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func permissiveInt(raw string, def, min int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	return n
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a skill entry to its lookup slug: lower-cased with
// non-alphanumeric runs collapsed to single hyphens.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
