package seriesRepo

import (
	"context"
	"errors"

	"pawfolio/models"
)

// ErrNotFound is returned when a series id does not resolve.
var ErrNotFound = errors.New("recurring series not found")

// Repository defines data access for recurring series templates.
type Repository interface {
	Create(ctx context.Context, series *models.RecurringSeries) error
	GetByID(ctx context.Context, seriesID string) (*models.RecurringSeries, error)
	Update(ctx context.Context, series *models.RecurringSeries) error
	// UpdateCounters refreshes the denormalized visit counters.
	UpdateCounters(ctx context.Context, seriesID string, completed, canceled, upcoming int) error
}
