package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"checkdesk/internal/domain"
)

// CheckFilter holds the optional search criteria for listing checks.
// It is constructed once from validated query parameters and never
// mutated afterwards.
type CheckFilter struct {
	Query     string
	DateFrom  *time.Time
	DateTo    *time.Time
	AmountMin *float64
	AmountMax *float64
}

// CheckRepository defines the contract for check record persistence.
// List and ListAll return records sorted by created_at descending.
type CheckRepository interface {
	Create(ctx context.Context, check *domain.Check) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Check, error)
	Update(ctx context.Context, check *domain.Check) error
	List(ctx context.Context, filter CheckFilter, offset, limit int) ([]domain.Check, int, error)
	ListAll(ctx context.Context, filter CheckFilter) ([]domain.Check, error)
}
