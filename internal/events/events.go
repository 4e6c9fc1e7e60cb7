// Package events defines the search-activity events the API publishes
// and the analytics worker consumes.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/baotrn/jobboard-be/shared/rabbitmq"
)

// SearchPerformed is emitted after every successful search request. It
// carries a summary of the active filter dimensions, never raw user
// identity.
type SearchPerformed struct {
	RequestID     string    `json:"request_id"`
	Keyword       string    `json:"keyword,omitempty"`
	Dimensions    []string  `json:"dimensions"`
	Page          int       `json:"page"`
	PerPage       int       `json:"per_page"`
	ResultCount   int64     `json:"result_count"`
	Authenticated bool      `json:"authenticated"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher emits search events. Implementations must never block a
// search request on broker availability beyond their own retry budget.
type Publisher interface {
	PublishSearchPerformed(ctx context.Context, event SearchPerformed) error
}

// RabbitPublisher publishes search events as JSON messages through the
// shared RabbitMQ client.
type RabbitPublisher struct {
	client *rabbitmq.Client
	logger *slog.Logger
}

func NewRabbitPublisher(client *rabbitmq.Client, logger *slog.Logger) *RabbitPublisher {
	return &RabbitPublisher{
		client: client,
		logger: logger,
	}
}

func (p *RabbitPublisher) PublishSearchPerformed(ctx context.Context, event SearchPerformed) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	if err := p.client.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish search event: %w", err)
	}

	p.logger.Debug("Search event published",
		slog.String("request_id", event.RequestID),
		slog.Int64("result_count", event.ResultCount),
	)

	return nil
}
