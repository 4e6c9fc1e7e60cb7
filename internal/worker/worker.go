// Package worker implements the search-analytics consumer: it drains
// search events from RabbitMQ through a small goroutine pool and logs
// periodic counter summaries.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/baotrn/jobboard-be/internal/events"
	"github.com/baotrn/jobboard-be/shared/rabbitmq"
	"github.com/google/uuid"
)

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	FlushInterval time.Duration
	PrefetchCount int
}

// eventDelivery pairs a decoded search event with its AMQP delivery tag
// so workers can ack after recording.
type eventDelivery struct {
	event       events.SearchPerformed
	deliveryTag uint64
}

// Worker consumes search events and maintains the analytics counters.
type Worker struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	concurrency   int
	flushInterval time.Duration
	prefetchCount int
	workerID      string
	collector     *Collector
	eventsChan    chan eventDelivery
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		rabbitClient:  cfg.RabbitClient,
		concurrency:   cfg.Concurrency,
		flushInterval: cfg.FlushInterval,
		prefetchCount: cfg.PrefetchCount,
		workerID:      fmt.Sprintf("analytics-%s", uuid.New().String()[:8]),
		collector:     NewCollector(),
		eventsChan:    make(chan eventDelivery),
		stopChan:      make(chan struct{}),
	}
}

// Start wires the consumer, spawns the pool and the summary loop, and
// blocks dispatching deliveries until the context is canceled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting analytics worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("flush_interval", w.flushInterval),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to setup consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)

	w.wg.Add(1)
	go w.summaryLoop(ctx)

	w.dispatch(ctx, deliveries)
	return nil
}

// Stop signals all goroutines and waits for them to drain.
func (w *Worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()

	final := w.collector.Snapshot(false)
	w.logger.Info("Analytics worker stopped",
		slog.String("worker_id", w.workerID),
		slog.Int64("pending_searches", final.TotalSearches),
	)
}

// summaryLoop logs a counters snapshot every flush interval.
func (w *Worker) summaryLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			summary := w.collector.Snapshot(true)
			if summary.TotalSearches == 0 {
				continue
			}
			w.logger.Info("Search analytics summary",
				slog.String("worker_id", w.workerID),
				slog.Int64("searches", summary.TotalSearches),
				slog.Int64("results", summary.TotalResults),
				slog.Int64("zero_results", summary.ZeroResults),
				slog.Int64("authenticated", summary.Authenticated),
				slog.Any("dimensions", summary.ByDimension),
			)
		}
	}
}
