package search

import (
	"regexp"
	"strconv"
	"strings"
)

// SalaryRange is a parsed salary filter in whole dollars. A nil bound
// means the side is open.
type SalaryRange struct {
	Min *int
	Max *int
}

var (
	salaryWhitespace = regexp.MustCompile(`\s+`)
	salaryBand       = regexp.MustCompile(`^(\d+)\s*k\s*-\s*(\d+)\s*k$`)
	salaryFloor      = regexp.MustCompile(`^(\d+)\s*k\s*\+$`)
	salaryCeiling    = regexp.MustCompile(`^(?:up to|<=?|≤)\s*(\d+)\s*k$`)
	salaryExact      = regexp.MustCompile(`^(\d+)\s*k$`)
)

// ParseSalaryRange parses compact salary expressions like "$50k - $80k",
// "180k+", "up to 80k" or "65k" into dollar bounds. An exact figure is
// treated as both bounds. Unrecognized text returns nil and the salary
// dimension is not filtered.
func ParseSalaryRange(label string) *SalaryRange {
	s := strings.ToLower(label)
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	s = salaryWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")

	if m := salaryBand.FindStringSubmatch(s); m != nil {
		return &SalaryRange{Min: thousands(m[1]), Max: thousands(m[2])}
	}
	if m := salaryFloor.FindStringSubmatch(s); m != nil {
		return &SalaryRange{Min: thousands(m[1])}
	}
	if m := salaryCeiling.FindStringSubmatch(s); m != nil {
		return &SalaryRange{Max: thousands(m[1])}
	}
	if m := salaryExact.FindStringSubmatch(s); m != nil {
		v := thousands(m[1])
		return &SalaryRange{Min: v, Max: v}
	}
	return nil
}

func thousands(digits string) *int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	v := n * 1000
	return &v
}
