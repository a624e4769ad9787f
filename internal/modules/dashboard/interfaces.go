package dashboard

import (
	"context"
	"time"

	"leadflow/internal/domain"
)

// LeadStats defines the lead-side aggregate queries.
type LeadStats interface {
	Count(ctx context.Context) (int64, error)
	CountByStage(ctx context.Context) (map[string]int64, error)
	CountFollowUpsBetween(ctx context.Context, from, to time.Time) (int64, error)
	ListOverdue(ctx context.Context, before time.Time, excludedStages []string) ([]domain.Lead, error)
}

// OrderStats defines the order-side aggregate queries.
type OrderStats interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
