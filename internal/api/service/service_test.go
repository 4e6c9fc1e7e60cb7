package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/baotrn/jobboard-be/internal/api/domain"
	"github.com/baotrn/jobboard-be/internal/api/model"
	"github.com/baotrn/jobboard-be/internal/api/search"
	"github.com/baotrn/jobboard-be/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceNow = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

type fakeStore struct {
	mu    sync.Mutex
	calls map[string]int

	rows     []model.JobRow
	total    int64
	seekerID int64

	searchErr error
	getErr    error
	aggErr    error
}

func newFakeStore(rowCount int) *fakeStore {
	rows := make([]model.JobRow, rowCount)
	for i := range rows {
		rows[i] = model.JobRow{
			ID:        int64(i + 1),
			Title:     "Engineer",
			Status:    domain.JobStatusPublished,
			CreatedAt: serviceNow.AddDate(0, -1, 0),
		}
	}
	return &fakeStore{
		calls: map[string]int{},
		rows:  rows,
		total: int64(rowCount),
	}
}

func (f *fakeStore) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeStore) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStore) SearchJobs(ctx context.Context, spec search.QuerySpec) ([]model.JobRow, int64, error) {
	f.record("SearchJobs")
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	return f.rows, f.total, nil
}

func (f *fakeStore) GetJobByID(ctx context.Context, jobID int64) (*model.JobRow, error) {
	f.record("GetJobByID")
	if f.getErr != nil {
		return nil, f.getErr
	}
	row := f.rows[0]
	return &row, nil
}

func (f *fakeStore) ListBenefits(ctx context.Context) ([]model.Lookup, error) {
	f.record("ListBenefits")
	return []model.Lookup{{ID: 1, Name: "Health Insurance"}}, nil
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]model.Lookup, error) {
	f.record("ListCategories")
	return []model.Lookup{{ID: 4, Name: "Engineering"}}, nil
}

func (f *fakeStore) ListEmployers(ctx context.Context) ([]model.EmployerLookup, error) {
	f.record("ListEmployers")
	return []model.EmployerLookup{{ID: 9, CompanyName: "Acme Corp"}}, nil
}

func (f *fakeStore) SeekerIDByUser(ctx context.Context, userID int64) (int64, error) {
	f.record("SeekerIDByUser")
	return f.seekerID, nil
}

func (f *fakeStore) AppliedJobIDs(ctx context.Context, seekerID int64, jobIDs []int64) (map[int64]bool, error) {
	f.record("AppliedJobIDs")
	if f.aggErr != nil {
		return nil, f.aggErr
	}
	return map[int64]bool{1: true}, nil
}

func (f *fakeStore) SavedJobIDs(ctx context.Context, seekerID int64, jobIDs []int64) (map[int64]bool, error) {
	f.record("SavedJobIDs")
	return map[int64]bool{2: true}, nil
}

func (f *fakeStore) BenefitNamesByJob(ctx context.Context, jobIDs []int64) (map[int64][]string, error) {
	f.record("BenefitNamesByJob")
	return map[int64][]string{1: {"Dental"}}, nil
}

func (f *fakeStore) HeroStats(ctx context.Context, publishedOnly bool) (domain.HeroStats, error) {
	f.record("HeroStats")
	return domain.HeroStats{TotalJobs: 120, TotalSeekers: 30, TotalEmployers: 12, CompaniesHiring: 8}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.SearchPerformed
	err    error
}

func (p *fakePublisher) PublishSearchPerformed(ctx context.Context, event events.SearchPerformed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(store Store, publisher events.Publisher) *SearchService {
	return NewSearchService(&Config{
		Store:     store,
		Publisher: publisher,
		Logger:    testLogger(),
		Now:       func() time.Time { return serviceNow },
	})
}

func TestSearch_QueryCountIndependentOfPageSize(t *testing.T) {
	// The aggregate round-trips must stay constant no matter how many
	// rows come back from the page fetch.
	for _, rowCount := range []int{1, 20} {
		store := newFakeStore(rowCount)
		store.seekerID = 7
		svc := newService(store, nil)

		_, err := svc.Search(context.Background(), search.Criteria{Page: 1, PerPage: 20}, &domain.Viewer{UserID: 3}, "req-1")
		require.NoError(t, err)

		assert.Equal(t, 1, store.callCount("SearchJobs"))
		assert.Equal(t, 1, store.callCount("SeekerIDByUser"))
		assert.Equal(t, 1, store.callCount("AppliedJobIDs"))
		assert.Equal(t, 1, store.callCount("SavedJobIDs"))
		assert.Equal(t, 1, store.callCount("BenefitNamesByJob"))
	}
}

func TestSearch_AnonymousViewerSkipsPerViewerLookups(t *testing.T) {
	store := newFakeStore(3)
	svc := newService(store, nil)

	resp, err := svc.Search(context.Background(), search.Criteria{Page: 1, PerPage: 20}, nil, "req-2")
	require.NoError(t, err)

	assert.Zero(t, store.callCount("SeekerIDByUser"))
	assert.Zero(t, store.callCount("AppliedJobIDs"))
	assert.Zero(t, store.callCount("SavedJobIDs"))
	assert.Equal(t, 1, store.callCount("BenefitNamesByJob"))

	for _, job := range resp.Data {
		assert.False(t, job.HasApplied)
		assert.False(t, job.IsSaved)
	}
}

func TestSearch_ViewerWithoutSeekerProfileDegrades(t *testing.T) {
	store := newFakeStore(2)
	store.seekerID = 0
	svc := newService(store, nil)

	resp, err := svc.Search(context.Background(), search.Criteria{Page: 1, PerPage: 20}, &domain.Viewer{UserID: 3}, "req-3")
	require.NoError(t, err)

	assert.Equal(t, 1, store.callCount("SeekerIDByUser"))
	assert.Zero(t, store.callCount("AppliedJobIDs"))
	assert.Zero(t, store.callCount("SavedJobIDs"))

	for _, job := range resp.Data {
		assert.False(t, job.HasApplied)
		assert.False(t, job.IsSaved)
	}
}

func TestSearch_ViewerFlagsFromAggregates(t *testing.T) {
	store := newFakeStore(2)
	store.seekerID = 7
	svc := newService(store, nil)

	resp, err := svc.Search(context.Background(), search.Criteria{Page: 1, PerPage: 20}, &domain.Viewer{UserID: 3}, "req-4")
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)

	assert.True(t, resp.Data[0].HasApplied)
	assert.False(t, resp.Data[0].IsSaved)
	assert.False(t, resp.Data[1].HasApplied)
	assert.True(t, resp.Data[1].IsSaved)
	assert.Equal(t, []string{"Dental"}, resp.Data[0].Benefits)
	assert.Equal(t, []string{}, resp.Data[1].Benefits)
}

func TestSearch_PaginationEnvelope(t *testing.T) {
	store := newFakeStore(20)
	store.total = 45
	svc := newService(store, nil)

	resp, err := svc.Search(context.Background(), search.Criteria{Page: 2, PerPage: 20}, nil, "req-5")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Pagination.CurrentPage)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.EqualValues(t, 45, resp.Pagination.TotalJobs)
}

func TestSearch_EmptyResultEnvelope(t *testing.T) {
	store := newFakeStore(0)
	svc := newService(store, nil)

	resp, err := svc.Search(context.Background(), search.Criteria{Page: 1, PerPage: 20}, nil, "req-6")
	require.NoError(t, err)

	assert.Empty(t, resp.Data)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.Zero(t, resp.Pagination.TotalJobs)
	// No rows means no aggregate queries at all
	assert.Zero(t, store.callCount("BenefitNamesByJob"))
	// Lookup lists still ship with the empty page
	assert.NotEmpty(t, resp.Benefits)
	assert.NotEmpty(t, resp.Categories)
	assert.NotEmpty(t, resp.Employers)
}

func TestSearch_StoreFailurePropagates(t *testing.T) {
	store := newFakeStore(1)
	store.searchErr = errors.New("connection reset")
	svc := newService(store, nil)

	_, err := svc.Search(context.Background(), search.Criteria{Page: 1, PerPage: 20}, nil, "req-7")
	assert.ErrorContains(t, err, "connection reset")
}

func TestSearch_AggregateFailurePropagates(t *testing.T) {
	store := newFakeStore(1)
	store.seekerID = 7
	store.aggErr = errors.New("timeout")
	svc := newService(store, nil)

	_, err := svc.Search(context.Background(), search.Criteria{Page: 1, PerPage: 20}, &domain.Viewer{UserID: 3}, "req-8")
	assert.ErrorContains(t, err, "timeout")
}

func TestSearch_PublishesEvent(t *testing.T) {
	store := newFakeStore(2)
	pub := &fakePublisher{}
	svc := newService(store, pub)

	criteria := search.Criteria{
		Search:  "golang",
		Salary:  "100k - 200k",
		Page:    1,
		PerPage: 20,
	}
	_, err := svc.Search(context.Background(), criteria, &domain.Viewer{UserID: 3}, "req-9")
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	event := pub.events[0]
	assert.Equal(t, "req-9", event.RequestID)
	assert.Equal(t, "golang", event.Keyword)
	assert.ElementsMatch(t, []string{"search", "salary"}, event.Dimensions)
	assert.EqualValues(t, 2, event.ResultCount)
	assert.True(t, event.Authenticated)
	assert.Equal(t, serviceNow, event.OccurredAt)
}

func TestSearch_PublishFailureDoesNotBreakSearch(t *testing.T) {
	store := newFakeStore(1)
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newService(store, pub)

	resp, err := svc.Search(context.Background(), search.Criteria{Page: 1, PerPage: 20}, nil, "req-10")
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
}

func TestSearch_NilPublisherIsSafe(t *testing.T) {
	store := newFakeStore(1)
	svc := newService(store, nil)

	_, err := svc.Search(context.Background(), search.Criteria{Page: 1, PerPage: 20}, nil, "req-11")
	assert.NoError(t, err)
}

func TestGetJob(t *testing.T) {
	store := newFakeStore(1)
	store.seekerID = 7
	svc := newService(store, nil)

	job, err := svc.GetJob(context.Background(), 1, &domain.Viewer{UserID: 3})
	require.NoError(t, err)

	assert.EqualValues(t, 1, job.ID)
	assert.True(t, job.HasApplied)
	assert.Equal(t, []string{"Dental"}, job.Benefits)
}

func TestGetJob_NotFound(t *testing.T) {
	store := newFakeStore(1)
	store.getErr = domain.ErrJobNotFound
	svc := newService(store, nil)

	_, err := svc.GetJob(context.Background(), 999, nil)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestHeroStats(t *testing.T) {
	store := newFakeStore(0)
	svc := newService(store, nil)

	stats, err := svc.HeroStats(context.Background(), true)
	require.NoError(t, err)

	assert.EqualValues(t, 120, stats.TotalJobs)
	assert.EqualValues(t, 30, stats.TotalSeekers)
	assert.EqualValues(t, 12, stats.TotalEmployers)
	assert.EqualValues(t, 8, stats.CompaniesHiring)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{10, 0, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, totalPages(tt.total, tt.perPage))
	}
}
