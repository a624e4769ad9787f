package lead

import (
	"context"

	"leadflow/internal/domain"
	"leadflow/internal/repository"
)

// LeadRepository defines the storage operations the lead service needs.
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, f repository.LeadFilter) ([]domain.Lead, error)
	Save(ctx context.Context, l *domain.Lead) error
	Delete(ctx context.Context, id int64) (int64, error)
}
