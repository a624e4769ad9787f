package order

import (
	"context"

	"leadflow/internal/domain"
	"leadflow/internal/repository"
)

// OrderRepository defines the storage operations the order service needs.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error)
	Save(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// LeadChecker verifies the referenced lead exists before an order is
// created.
type LeadChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
