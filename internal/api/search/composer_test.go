package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var composeNow = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func predicateExprs(spec QuerySpec) []string {
	exprs := make([]string, len(spec.Predicates))
	for i, p := range spec.Predicates {
		exprs[i] = p.Expr
	}
	return exprs
}

func TestCompose_OnlyPresentDimensions(t *testing.T) {
	// An empty criteria composes to the published-status predicate alone;
	// each added dimension contributes exactly one more predicate.
	empty := Compose(Criteria{Page: 1, PerPage: 20}, composeNow)
	require.Len(t, empty.Predicates, 1)
	assert.Equal(t, "jobs.status = ?", empty.Predicates[0].Expr)
	assert.Equal(t, []any{"published"}, empty.Predicates[0].Args)

	withSearch := Compose(Criteria{Search: "golang", Page: 1, PerPage: 20}, composeNow)
	require.Len(t, withSearch.Predicates, 2)
	assert.Contains(t, withSearch.Predicates[1].Expr, "jobs.title ILIKE ?")
	assert.Equal(t, []any{"%golang%", "%golang%"}, withSearch.Predicates[1].Args)
}

func TestCompose_MalformedDimensionsContributeNothing(t *testing.T) {
	spec := Compose(Criteria{
		Salary:          "competitive pay",
		DatePosted:      "whenever",
		ExperienceLevel: "wizard",
		Page:            1,
		PerPage:         20,
	}, composeNow)

	// Only the status predicate survives
	assert.Len(t, spec.Predicates, 1)
}

func TestCompose_JobTypeAndCategoryAndEmployer(t *testing.T) {
	spec := Compose(Criteria{
		JobTypes:   "full_time",
		CategoryID: 4,
		EmployerID: 9,
		BenefitID:  2,
		Page:       1,
		PerPage:    20,
	}, composeNow)

	exprs := predicateExprs(spec)
	assert.Contains(t, exprs, "jobs.job_type LIKE ?")
	assert.Contains(t, exprs, "jobs.category_id = ?")
	assert.Contains(t, exprs, "jobs.employer_id = ?")

	found := false
	for _, p := range spec.Predicates {
		if p.Expr == `EXISTS (SELECT 1 FROM job_benefit_job jb WHERE jb.job_id = jobs.id AND jb.job_benefit_id = ?)` {
			found = true
			assert.Equal(t, []any{int64(2)}, p.Args)
		}
	}
	assert.True(t, found, "benefit existence predicate missing")
}

func TestCompose_Countries(t *testing.T) {
	spec := Compose(Criteria{Countries: []string{"us", "De"}, Page: 1, PerPage: 20}, composeNow)

	require.Len(t, spec.Predicates, 2)
	pred := spec.Predicates[1]
	assert.Equal(t, "(jobs.country_code IN (?,?) OR jobs.country_name IN (?,?))", pred.Expr)
	// Codes are case-normalized upper, names kept raw
	assert.Equal(t, []any{"US", "DE", "us", "De"}, pred.Args)
}

func TestCompose_SalaryOverlap(t *testing.T) {
	t.Run("both bounds", func(t *testing.T) {
		spec := Compose(Criteria{Salary: "100k - 200k", Page: 1, PerPage: 20}, composeNow)
		require.Len(t, spec.Predicates, 2)

		pred := spec.Predicates[1]
		assert.Contains(t, pred.Expr, "jobs.pay_min <= ? AND jobs.pay_max >= ?")
		assert.Contains(t, pred.Expr, "jobs.pay_min IS NOT NULL AND jobs.pay_max IS NULL AND jobs.pay_min BETWEEN ? AND ?")
		assert.Contains(t, pred.Expr, "jobs.pay_min IS NULL AND jobs.pay_max IS NOT NULL AND jobs.pay_max BETWEEN ? AND ?")
		assert.Equal(t, []any{200000, 100000, 100000, 200000, 100000, 200000}, pred.Args)
	})

	t.Run("floor only", func(t *testing.T) {
		spec := Compose(Criteria{Salary: "180k+", Page: 1, PerPage: 20}, composeNow)
		require.Len(t, spec.Predicates, 2)

		pred := spec.Predicates[1]
		assert.Equal(t, `((jobs.pay_min IS NOT NULL AND jobs.pay_min >= ?) OR (jobs.pay_max IS NOT NULL AND jobs.pay_max >= ?))`, pred.Expr)
		assert.Equal(t, []any{180000, 180000}, pred.Args)
	})

	t.Run("ceiling only", func(t *testing.T) {
		spec := Compose(Criteria{Salary: "up to 80k", Page: 1, PerPage: 20}, composeNow)
		require.Len(t, spec.Predicates, 2)

		pred := spec.Predicates[1]
		assert.Equal(t, `((jobs.pay_min IS NOT NULL AND jobs.pay_min <= ?) OR (jobs.pay_max IS NOT NULL AND jobs.pay_max <= ?))`, pred.Expr)
		assert.Equal(t, []any{80000, 80000}, pred.Args)
	})
}

func TestCompose_Skills(t *testing.T) {
	spec := Compose(Criteria{Skills: []string{"Node.js", "Go"}, Page: 1, PerPage: 20}, composeNow)

	require.Len(t, spec.Predicates, 2)
	pred := spec.Predicates[1]
	assert.Contains(t, pred.Expr, "jobs.id IN (SELECT js.job_id FROM job_skill js JOIN skills s ON s.id = js.skill_id")
	// Slugs first, then the raw names
	assert.Equal(t, []any{"node-js", "go", "Node.js", "Go"}, pred.Args)
}

func TestCompose_DateWindow(t *testing.T) {
	spec := Compose(Criteria{DatePosted: "7d", Page: 1, PerPage: 20}, composeNow)

	require.Len(t, spec.Predicates, 2)
	pred := spec.Predicates[1]
	assert.Equal(t, "jobs.posted_at >= ?", pred.Expr)
	require.Len(t, pred.Args, 1)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), pred.Args[0])

	unfiltered := Compose(Criteria{DatePosted: "any", Page: 1, PerPage: 20}, composeNow)
	assert.Len(t, unfiltered.Predicates, 1)
}

func TestCompose_Experience(t *testing.T) {
	spec := Compose(Criteria{ExperienceLevel: "2+", Page: 1, PerPage: 20}, composeNow)

	require.Len(t, spec.Predicates, 2)
	pred := spec.Predicates[1]
	assert.Equal(t, "LOWER(jobs.description) ~ ?", pred.Expr)

	// The bound pattern reaches Postgres verbatim, so it must use the
	// Postgres word-boundary escape, not the backspace escape
	require.Len(t, pred.Args, 1)
	pattern, ok := pred.Args[0].(string)
	require.True(t, ok)
	assert.Contains(t, pattern, `\y`)
	assert.NotContains(t, pattern, `\b`)
}

func TestCompose_SortAndPagination(t *testing.T) {
	newest := Compose(Criteria{Page: 3, PerPage: 10}, composeNow)
	assert.Equal(t, "jobs.posted_at", newest.OrderBy)
	assert.True(t, newest.Descending)
	assert.Equal(t, 20, newest.Offset())

	oldest := Compose(Criteria{Sort: "oldest", Page: 1, PerPage: 20}, composeNow)
	assert.False(t, oldest.Descending)

	clamped := Compose(Criteria{Page: 0, PerPage: -5}, composeNow)
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, DefaultPerPage, clamped.PerPage)
	assert.Equal(t, 0, clamped.Offset())
}
