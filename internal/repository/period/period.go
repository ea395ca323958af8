package period

import (
	"context"

	"github.com/metaview/metaview/internal/model"
)

// Repository defines operations for period timing persistence
type Repository interface {
	// List retrieves all period timings ordered by period number
	List(ctx context.Context) ([]model.PeriodWindow, error)

	// GetByPeriod retrieves a single period timing
	GetByPeriod(ctx context.Context, period int) (*model.PeriodWindow, error)

	// Upsert inserts a period timing or replaces an existing one
	Upsert(ctx context.Context, window *model.PeriodWindow) error

	// Delete removes a period timing
	Delete(ctx context.Context, period int) error
}
