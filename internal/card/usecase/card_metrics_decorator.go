package usecase

import (
	"context"
	"time"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/metrics"
)

// cardUseCaseWithMetrics decorates CardUseCase with metrics instrumentation.
type cardUseCaseWithMetrics struct {
	next    CardUseCase
	metrics metrics.BusinessMetrics
}

// NewCardUseCaseWithMetrics wraps a CardUseCase with metrics recording.
func NewCardUseCaseWithMetrics(useCase CardUseCase, m metrics.BusinessMetrics) CardUseCase {
	return &cardUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record reports one operation outcome with its duration.
func (c *cardUseCaseWithMetrics) record(ctx context.Context, domain, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, domain, operation, status)
	c.metrics.RecordDuration(ctx, domain, operation, time.Since(start), status)
}

// Add records metrics for card creation operations.
func (c *cardUseCaseWithMetrics) Add(
	ctx context.Context,
	payload cardDomain.Payload,
	label string,
	force bool,
) (*cardDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Add(ctx, payload, label, force)
	c.record(ctx, "card", "card_add", start, err)
	return card, err
}

// Get records metrics for card retrieval operations.
func (c *cardUseCaseWithMetrics) Get(ctx context.Context, id int64) (*cardDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Get(ctx, id)
	c.record(ctx, "card", "card_get", start, err)
	return card, err
}

// List records metrics for card listing operations.
func (c *cardUseCaseWithMetrics) List(ctx context.Context) ([]*cardDomain.Summary, error) {
	start := time.Now()
	summaries, err := c.next.List(ctx)
	c.record(ctx, "card", "card_list", start, err)
	return summaries, err
}

// Exists records metrics for duplicate check operations.
func (c *cardUseCaseWithMetrics) Exists(ctx context.Context, cardNumber string) (bool, error) {
	start := time.Now()
	exists, err := c.next.Exists(ctx, cardNumber)
	c.record(ctx, "card", "card_exists", start, err)
	return exists, err
}

// Delete records metrics for card deletion operations.
func (c *cardUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := c.next.Delete(ctx, id)
	c.record(ctx, "card", "card_delete", start, err)
	return err
}

// Rename records metrics for card rename operations.
func (c *cardUseCaseWithMetrics) Rename(ctx context.Context, id int64, label string) error {
	start := time.Now()
	err := c.next.Rename(ctx, id, label)
	c.record(ctx, "card", "card_rename", start, err)
	return err
}

// Scan records metrics for text scan operations.
func (c *cardUseCaseWithMetrics) Scan(ctx context.Context, text string) ([]*cardDomain.ScanResult, error) {
	start := time.Now()
	results, err := c.next.Scan(ctx, text)
	c.record(ctx, "extraction", "text_scan", start, err)
	return results, err
}
