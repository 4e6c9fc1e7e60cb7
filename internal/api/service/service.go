// Package service composes the search pipeline: predicate composition,
// the paginated store fetch, batched aggregate loading and row shaping.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/baotrn/jobboard-be/internal/api/domain"
	"github.com/baotrn/jobboard-be/internal/api/dto"
	"github.com/baotrn/jobboard-be/internal/api/model"
	"github.com/baotrn/jobboard-be/internal/api/search"
	"github.com/baotrn/jobboard-be/internal/api/shaper"
	"github.com/baotrn/jobboard-be/internal/events"
	"golang.org/x/sync/errgroup"
)

// Store is the persistence surface the search pipeline needs. Total
// round-trips per request stay independent of the result-page size: one
// paginated fetch plus at most one query per aggregate kind.
type Store interface {
	SearchJobs(ctx context.Context, spec search.QuerySpec) ([]model.JobRow, int64, error)
	GetJobByID(ctx context.Context, jobID int64) (*model.JobRow, error)
	ListBenefits(ctx context.Context) ([]model.Lookup, error)
	ListCategories(ctx context.Context) ([]model.Lookup, error)
	ListEmployers(ctx context.Context) ([]model.EmployerLookup, error)
	SeekerIDByUser(ctx context.Context, userID int64) (int64, error)
	AppliedJobIDs(ctx context.Context, seekerID int64, jobIDs []int64) (map[int64]bool, error)
	SavedJobIDs(ctx context.Context, seekerID int64, jobIDs []int64) (map[int64]bool, error)
	BenefitNamesByJob(ctx context.Context, jobIDs []int64) (map[int64][]string, error)
	HeroStats(ctx context.Context, publishedOnly bool) (domain.HeroStats, error)
}

// Config holds SearchService dependencies. Publisher may be nil when no
// broker is available; search analytics are then skipped. Now defaults
// to time.Now and exists so tests can pin the clock.
type Config struct {
	Store     Store
	Publisher events.Publisher
	Logger    *slog.Logger
	Now       func() time.Time
}

// SearchService orchestrates the read pipeline for the three endpoints.
type SearchService struct {
	store     Store
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewSearchService(cfg *Config) *SearchService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &SearchService{
		store:     cfg.Store,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		now:       now,
	}
}

// Search runs the full list pipeline: compose the predicate, fetch one
// page, load the batched aggregates for that page, shape every row and
// assemble the envelope with the static lookup lists.
func (s *SearchService) Search(ctx context.Context, criteria search.Criteria, viewer *domain.Viewer, requestID string) (*dto.SearchJobsResponse, error) {
	now := s.now()
	spec := search.Compose(criteria, now)

	rows, total, err := s.store.SearchJobs(ctx, spec)
	if err != nil {
		return nil, err
	}

	jobIDs := make([]int64, len(rows))
	for i, row := range rows {
		jobIDs[i] = row.ID
	}

	agg, err := s.loadAggregates(ctx, jobIDs, viewer)
	if err != nil {
		return nil, err
	}

	benefitsList, err := s.store.ListBenefits(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	employers, err := s.store.ListEmployers(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]dto.JobDTO, len(rows))
	for i, row := range rows {
		data[i] = shaper.Shape(row, agg, now)
	}

	resp := &dto.SearchJobsResponse{
		Data:       data,
		Benefits:   lookupDTOs(benefitsList),
		Categories: lookupDTOs(categories),
		Employers:  employerDTOs(employers),
		Pagination: dto.PaginationDTO{
			CurrentPage: spec.Page,
			TotalPages:  totalPages(total, spec.PerPage),
			TotalJobs:   total,
		},
	}

	s.publishSearchEvent(ctx, criteria, viewer, requestID, total, now)

	return resp, nil
}

// GetJob runs the detail pipeline for a single posting, applying the
// same aggregate and shaping rules as the list path.
func (s *SearchService) GetJob(ctx context.Context, jobID int64, viewer *domain.Viewer) (*dto.JobDTO, error) {
	row, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	agg, err := s.loadAggregates(ctx, []int64{row.ID}, viewer)
	if err != nil {
		return nil, err
	}

	shaped := shaper.Shape(*row, agg, s.now())
	return &shaped, nil
}

// HeroStats returns the landing-page counters.
func (s *SearchService) HeroStats(ctx context.Context, publishedOnly bool) (*dto.HeroStatsResponse, error) {
	stats, err := s.store.HeroStats(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	return &dto.HeroStatsResponse{
		TotalJobs:       stats.TotalJobs,
		TotalSeekers:    stats.TotalSeekers,
		TotalEmployers:  stats.TotalEmployers,
		CompaniesHiring: stats.CompaniesHiring,
	}, nil
}

// loadAggregates performs the batch aggregation step: at most one query
// per aggregate kind over the whole id set, never one per row. Benefits
// are viewer-independent; applied and saved require a resolved
// job-seeker profile. The seeker id is resolved once and used for both
// lookups — a viewer without a profile degrades both flags to false
// rather than erroring. The three fetches are independent and run
// concurrently.
func (s *SearchService) loadAggregates(ctx context.Context, jobIDs []int64, viewer *domain.Viewer) (shaper.Aggregates, error) {
	agg := shaper.Aggregates{
		Applied:  map[int64]bool{},
		Saved:    map[int64]bool{},
		Benefits: map[int64][]string{},
	}
	if len(jobIDs) == 0 {
		return agg, nil
	}

	var seekerID int64
	if viewer != nil {
		resolved, err := s.store.SeekerIDByUser(ctx, viewer.UserID)
		if err != nil {
			return agg, err
		}
		seekerID = resolved
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		benefits, err := s.store.BenefitNamesByJob(gctx, jobIDs)
		if err != nil {
			return err
		}
		agg.Benefits = benefits
		return nil
	})

	if seekerID > 0 {
		g.Go(func() error {
			applied, err := s.store.AppliedJobIDs(gctx, seekerID, jobIDs)
			if err != nil {
				return err
			}
			agg.Applied = applied
			return nil
		})
		g.Go(func() error {
			saved, err := s.store.SavedJobIDs(gctx, seekerID, jobIDs)
			if err != nil {
				return err
			}
			agg.Saved = saved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return agg, err
	}
	return agg, nil
}

// publishSearchEvent emits a search-analytics event. Failures are
// logged, never surfaced: analytics must not break a search.
func (s *SearchService) publishSearchEvent(ctx context.Context, criteria search.Criteria, viewer *domain.Viewer, requestID string, total int64, now time.Time) {
	if s.publisher == nil {
		return
	}

	event := events.SearchPerformed{
		RequestID:     requestID,
		Keyword:       criteria.Search,
		Dimensions:    activeDimensions(criteria),
		Page:          criteria.Page,
		PerPage:       criteria.PerPage,
		ResultCount:   total,
		Authenticated: viewer != nil,
		OccurredAt:    now,
	}

	if err := s.publisher.PublishSearchPerformed(ctx, event); err != nil {
		s.logger.Warn("Failed to publish search event",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
	}
}

// activeDimensions names the filter dimensions present in the criteria,
// for analytics aggregation.
func activeDimensions(c search.Criteria) []string {
	dims := make([]string, 0, 10)
	add := func(name string, active bool) {
		if active {
			dims = append(dims, name)
		}
	}
	add("search", c.Search != "")
	add("jobtypes", c.JobTypes != "")
	add("benefits", c.BenefitID > 0)
	add("category", c.CategoryID > 0)
	add("countries", len(c.Countries) > 0)
	add("salary", c.Salary != "")
	add("skills", len(c.Skills) > 0)
	add("dateposted", c.DatePosted != "")
	add("experiencelevel", c.ExperienceLevel != "")
	add("company", c.EmployerID > 0)
	return dims
}

func lookupDTOs(rows []model.Lookup) []dto.LookupDTO {
	out := make([]dto.LookupDTO, len(rows))
	for i, row := range rows {
		out[i] = dto.LookupDTO{ID: row.ID, Name: row.Name}
	}
	return out
}

func employerDTOs(rows []model.EmployerLookup) []dto.EmployerLookupDTO {
	out := make([]dto.EmployerLookupDTO, len(rows))
	for i, row := range rows {
		out[i] = dto.EmployerLookupDTO{ID: row.ID, CompanyName: row.CompanyName}
	}
	return out
}

func totalPages(total int64, perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	pages := (total + int64(perPage) - 1) / int64(perPage)
	if pages < 1 {
		return 1
	}
	return int(pages)
}
