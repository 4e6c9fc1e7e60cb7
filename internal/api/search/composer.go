package search

import (
	"strings"
	"time"

	"github.com/baotrn/jobboard-be/internal/api/domain"
)

// Predicate is one WHERE fragment with `?` placeholders. The storage
// adapter renders placeholders into its native form ($n for Postgres),
// which keeps composition testable without a live database.
type Predicate struct {
	Expr string
	Args []any
}

// QuerySpec is the composed, store-agnostic search request: conjunction
// of predicates, ordering and offset pagination.
type QuerySpec struct {
	Predicates []Predicate
	OrderBy    string
	Descending bool
	Page       int
	PerPage    int
}

// Offset returns the row offset for the spec's page.
func (s QuerySpec) Offset() int {
	return (s.Page - 1) * s.PerPage
}

// Compose turns filter criteria into a single query spec. Every
// dimension is independently optional: an absent or unparseable
// dimension contributes no predicate, so the result is always the AND
// of exactly the dimensions present. now anchors the relative date
// window.
func Compose(c Criteria, now time.Time) QuerySpec {
	spec := QuerySpec{
		OrderBy:    "jobs.posted_at",
		Descending: c.Sort != "oldest",
		Page:       c.Page,
		PerPage:    c.PerPage,
	}
	if spec.Page < 1 {
		spec.Page = 1
	}
	if spec.PerPage < 1 {
		spec.PerPage = DefaultPerPage
	}

	where := func(expr string, args ...any) {
		spec.Predicates = append(spec.Predicates, Predicate{Expr: expr, Args: args})
	}

	where("jobs.status = ?", domain.JobStatusPublished)

	if pattern, ok := ExperiencePattern(c.ExperienceLevel); ok {
		where("LOWER(jobs.description) ~ ?", pattern)
	}

	if c.Search != "" {
		like := "%" + c.Search + "%"
		where("(jobs.title ILIKE ? OR jobs.description ILIKE ?)", like, like)
	}

	if c.JobTypes != "" {
		// job_type may carry a delimited multi-value encoding
		where("jobs.job_type LIKE ?", "%"+c.JobTypes+"%")
	}

	if c.BenefitID > 0 {
		where(`EXISTS (SELECT 1 FROM job_benefit_job jb WHERE jb.job_id = jobs.id AND jb.job_benefit_id = ?)`, c.BenefitID)
	}

	if c.CategoryID > 0 {
		where("jobs.category_id = ?", c.CategoryID)
	}

	if len(c.Countries) > 0 {
		upper := make([]any, 0, len(c.Countries))
		raw := make([]any, 0, len(c.Countries))
		for _, country := range c.Countries {
			upper = append(upper, strings.ToUpper(country))
			raw = append(raw, country)
		}
		expr := "(jobs.country_code IN (" + placeholders(len(upper)) + ") OR jobs.country_name IN (" + placeholders(len(raw)) + "))"
		where(expr, append(upper, raw...)...)
	}

	if c.Salary != "" {
		if parsed := ParseSalaryRange(c.Salary); parsed != nil {
			composeSalary(&spec, parsed)
		}
	}

	if len(c.Skills) > 0 {
		slugs := make([]any, 0, len(c.Skills))
		names := make([]any, 0, len(c.Skills))
		for _, entry := range c.Skills {
			slugs = append(slugs, Slugify(entry))
			names = append(names, entry)
		}
		expr := `jobs.id IN (SELECT js.job_id FROM job_skill js JOIN skills s ON s.id = js.skill_id WHERE s.slug IN (` +
			placeholders(len(slugs)) + `) OR s.name IN (` + placeholders(len(names)) + `))`
		where(expr, append(slugs, names...)...)
	}

	if from, ok := ResolveDateWindow(c.DatePosted, now); ok {
		where("jobs.posted_at >= ?", from)
	}

	if c.EmployerID > 0 {
		where("jobs.employer_id = ?", c.EmployerID)
	}

	return spec
}

// composeSalary applies the range-overlap semantics for a parsed salary
// filter. With both bounds requested, a posting matches when its own
// [pay_min, pay_max] intersects the requested band; a posting with a
// single known bound matches when that bound falls inside the band.
// With a single requested bound, either known posting bound reaching
// the floor (or staying under the ceiling) qualifies. Postings with
// neither bound never match a salary filter.
func composeSalary(spec *QuerySpec, r *SalaryRange) {
	switch {
	case r.Min != nil && r.Max != nil:
		spec.Predicates = append(spec.Predicates, Predicate{
			Expr: `((jobs.pay_min IS NOT NULL AND jobs.pay_max IS NOT NULL AND jobs.pay_min <= ? AND jobs.pay_max >= ?)` +
				` OR (jobs.pay_min IS NOT NULL AND jobs.pay_max IS NULL AND jobs.pay_min BETWEEN ? AND ?)` +
				` OR (jobs.pay_min IS NULL AND jobs.pay_max IS NOT NULL AND jobs.pay_max BETWEEN ? AND ?))`,
			Args: []any{*r.Max, *r.Min, *r.Min, *r.Max, *r.Min, *r.Max},
		})
	case r.Min != nil:
		spec.Predicates = append(spec.Predicates, Predicate{
			Expr: `((jobs.pay_min IS NOT NULL AND jobs.pay_min >= ?) OR (jobs.pay_max IS NOT NULL AND jobs.pay_max >= ?))`,
			Args: []any{*r.Min, *r.Min},
		})
	case r.Max != nil:
		spec.Predicates = append(spec.Predicates, Predicate{
			Expr: `((jobs.pay_min IS NOT NULL AND jobs.pay_min <= ?) OR (jobs.pay_max IS NOT NULL AND jobs.pay_max <= ?))`,
			Args: []any{*r.Max, *r.Max},
		})
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
