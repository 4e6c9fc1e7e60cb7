package worker

import (
	"sync"

	"github.com/baotrn/jobboard-be/internal/events"
)

// Collector accumulates search-analytics counters across the worker
// pool. All methods are safe for concurrent use.
type Collector struct {
	mu            sync.Mutex
	totalSearches int64
	totalResults  int64
	zeroResults   int64
	authenticated int64
	byDimension   map[string]int64
}

// Summary is a point-in-time snapshot of the collected counters.
type Summary struct {
	TotalSearches int64
	TotalResults  int64
	ZeroResults   int64
	Authenticated int64
	ByDimension   map[string]int64
}

func NewCollector() *Collector {
	return &Collector{
		byDimension: make(map[string]int64),
	}
}

// Record folds one search event into the counters.
func (c *Collector) Record(event events.SearchPerformed) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalSearches++
	c.totalResults += event.ResultCount
	if event.ResultCount == 0 {
		c.zeroResults++
	}
	if event.Authenticated {
		c.authenticated++
	}
	for _, dim := range event.Dimensions {
		c.byDimension[dim]++
	}
}

// Snapshot returns the current counters and optionally resets them, so
// each flush interval reports its own window.
func (c *Collector) Snapshot(reset bool) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	dims := make(map[string]int64, len(c.byDimension))
	for k, v := range c.byDimension {
		dims[k] = v
	}

	summary := Summary{
		TotalSearches: c.totalSearches,
		TotalResults:  c.totalResults,
		ZeroResults:   c.zeroResults,
		Authenticated: c.authenticated,
		ByDimension:   dims,
	}

	if reset {
		c.totalSearches = 0
		c.totalResults = 0
		c.zeroResults = 0
		c.authenticated = 0
		c.byDimension = make(map[string]int64)
	}

	return summary
}
