package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/baotrn/jobboard-be/internal/api/domain"
	"github.com/baotrn/jobboard-be/internal/api/model"
	"github.com/baotrn/jobboard-be/internal/api/search"
	"github.com/baotrn/jobboard-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

// jobColumns is the select list of the main search and detail queries:
// the jobs table plus the joined employer and category display columns.
const jobColumns = `
	jobs.id, jobs.title, jobs.description, jobs.job_type, jobs.location_type,
	jobs.city, jobs.state_province, jobs.country_code, jobs.country_name,
	jobs.pay_min, jobs.pay_max, jobs.currency, jobs.vacancies, jobs.status,
	jobs.posted_at, jobs.closed_at, jobs.created_at, jobs.category_id, jobs.employer_id,
	employers.company_name AS company_name,
	employers.website AS employer_website,
	categories.name AS category_name`

const jobJoins = `
	FROM jobs
	LEFT JOIN employers ON employers.id = jobs.employer_id
	LEFT JOIN categories ON categories.id = jobs.category_id`

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// renderSpec flattens a query spec's predicates into one WHERE clause,
// rewriting the store-agnostic `?` placeholders into numbered Postgres
// placeholders.
func renderSpec(spec search.QuerySpec) (string, []any) {
	if len(spec.Predicates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	var args []any
	argIdx := 1

	sb.WriteString(" WHERE ")
	for i, pred := range spec.Predicates {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		expr := pred.Expr
		for strings.Contains(expr, "?") {
			expr = strings.Replace(expr, "?", "$"+strconv.Itoa(argIdx), 1)
			argIdx++
		}
		sb.WriteString(expr)
		args = append(args, pred.Args...)
	}

	return sb.String(), args
}

// sortDirection renders the ORDER BY direction. posted_at is nullable
// and Postgres treats NULL as largest by default, which would put
// never-posted rows at the top of the newest sort; pin NULLs to the
// end on descending and the start on ascending instead.
func sortDirection(descending bool) string {
	if descending {
		return "DESC NULLS LAST"
	}
	return "ASC NULLS FIRST"
}

// SearchJobs executes the composed spec: one count statement and one
// page fetch. Returns the page rows and the total match count.
func (s *Storage) SearchJobs(ctx context.Context, spec search.QuerySpec) ([]model.JobRow, int64, error) {
	where, args := renderSpec(spec)

	var total int64
	countQuery := "SELECT COUNT(*) FROM jobs" + where
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	n := len(args)
	query := "SELECT" + jobColumns + jobJoins + where +
		fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", spec.OrderBy, sortDirection(spec.Descending), n+1, n+2)
	args = append(args, spec.PerPage, spec.Offset())

	var rows []model.JobRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}

	return rows, total, nil
}

// GetJobByID fetches a single published job with its joined employer
// and category columns. A missing or unpublished id yields
// domain.ErrJobNotFound.
func (s *Storage) GetJobByID(ctx context.Context, jobID int64) (*model.JobRow, error) {
	query := "SELECT" + jobColumns + jobJoins + " WHERE jobs.id = $1 AND jobs.status = $2"

	var row model.JobRow
	err := s.db.GetContext(ctx, &row, query, jobID, domain.JobStatusPublished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &row, nil
}

// ListBenefits returns all benefits ordered by name.
func (s *Storage) ListBenefits(ctx context.Context) ([]model.Lookup, error) {
	var out []model.Lookup
	err := s.db.SelectContext(ctx, &out, "SELECT id, name FROM job_benefits ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}
	return out, nil
}

// ListCategories returns all categories ordered by name.
func (s *Storage) ListCategories(ctx context.Context) ([]model.Lookup, error) {
	var out []model.Lookup
	err := s.db.SelectContext(ctx, &out, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return out, nil
}

// ListEmployers returns all employers ordered by company name.
func (s *Storage) ListEmployers(ctx context.Context) ([]model.EmployerLookup, error) {
	var out []model.EmployerLookup
	err := s.db.SelectContext(ctx, &out, "SELECT id, company_name FROM employers ORDER BY company_name")
	if err != nil {
		return nil, fmt.Errorf("failed to list employers: %w", err)
	}
	return out, nil
}

// SeekerIDByUser resolves the job-seeker profile id for a user, or 0
// when the user has no seeker profile. Absence is not an error.
func (s *Storage) SeekerIDByUser(ctx context.Context, userID int64) (int64, error) {
	var seekerID int64
	err := s.db.GetContext(ctx, &seekerID, "SELECT id FROM job_seekers WHERE user_id = $1", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve seeker id: %w", err)
	}
	return seekerID, nil
}

// AppliedJobIDs returns, in one query, the subset of jobIDs the seeker
// has applied to.
func (s *Storage) AppliedJobIDs(ctx context.Context, seekerID int64, jobIDs []int64) (map[int64]bool, error) {
	if len(jobIDs) == 0 {
		return map[int64]bool{}, nil
	}

	query, args, err := sqlx.In(
		"SELECT DISTINCT ja.job_id FROM job_applications ja WHERE ja.job_seeker_id = ? AND ja.job_id IN (?)",
		seekerID, jobIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build applied query: %w", err)
	}

	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}

	return idSet(ids), nil
}

// SavedJobIDs returns, in one query, the subset of jobIDs the seeker
// has saved.
func (s *Storage) SavedJobIDs(ctx context.Context, seekerID int64, jobIDs []int64) (map[int64]bool, error) {
	if len(jobIDs) == 0 {
		return map[int64]bool{}, nil
	}

	query, args, err := sqlx.In(
		"SELECT sj.job_id FROM saved_jobs sj WHERE sj.job_seeker_id = ? AND sj.job_id IN (?)",
		seekerID, jobIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build saved query: %w", err)
	}

	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load saved jobs: %w", err)
	}

	return idSet(ids), nil
}

// BenefitNamesByJob returns the alphabetically ordered benefit names
// for every job in jobIDs with a single query.
func (s *Storage) BenefitNamesByJob(ctx context.Context, jobIDs []int64) (map[int64][]string, error) {
	if len(jobIDs) == 0 {
		return map[int64][]string{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT jb.job_id, b.name FROM job_benefit_job jb
		 JOIN job_benefits b ON b.id = jb.job_benefit_id
		 WHERE jb.job_id IN (?) ORDER BY b.name`,
		jobIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build benefits query: %w", err)
	}

	var rows []model.JobBenefitName
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load benefits: %w", err)
	}

	out := make(map[int64][]string, len(jobIDs))
	for _, row := range rows {
		out[row.JobID] = append(out[row.JobID], row.Name)
	}
	return out, nil
}

// HeroStats computes the landing-page counters. companies_hiring counts
// distinct non-null employer ids among the (optionally published-only)
// postings.
func (s *Storage) HeroStats(ctx context.Context, publishedOnly bool) (domain.HeroStats, error) {
	var stats domain.HeroStats

	jobFilter := ""
	jobArgs := []any{}
	if publishedOnly {
		jobFilter = " WHERE status = $1"
		jobArgs = append(jobArgs, domain.JobStatusPublished)
	}

	if err := s.db.GetContext(ctx, &stats.TotalJobs, "SELECT COUNT(*) FROM jobs"+jobFilter, jobArgs...); err != nil {
		return stats, fmt.Errorf("failed to count jobs: %w", err)
	}

	if err := s.db.GetContext(ctx, &stats.TotalSeekers, "SELECT COUNT(*) FROM users WHERE role = $1", domain.RoleSeeker); err != nil {
		return stats, fmt.Errorf("failed to count seekers: %w", err)
	}

	if err := s.db.GetContext(ctx, &stats.TotalEmployers, "SELECT COUNT(*) FROM users WHERE role = $1", domain.RoleEmployer); err != nil {
		return stats, fmt.Errorf("failed to count employers: %w", err)
	}

	hiringQuery := "SELECT COUNT(DISTINCT employer_id) FROM jobs WHERE employer_id IS NOT NULL"
	hiringArgs := []any{}
	if publishedOnly {
		hiringQuery += " AND status = $1"
		hiringArgs = append(hiringArgs, domain.JobStatusPublished)
	}
	if err := s.db.GetContext(ctx, &stats.CompaniesHiring, hiringQuery, hiringArgs...); err != nil {
		return stats, fmt.Errorf("failed to count hiring companies: %w", err)
	}

	return stats, nil
}

func idSet(ids []int64) map[int64]bool {
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}
