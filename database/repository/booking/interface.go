package bookingRepo

import (
	"context"
	"errors"

	"pawfolio/models"
)

// ErrNotFound is returned when a booking id does not resolve.
var ErrNotFound = errors.New("booking not found")

// MaxAtomicWrites is the store's per-transaction operation ceiling. A
// chunk handed to InsertManyAtomic must not exceed it.
const MaxAtomicWrites = 500

// Repository defines the data access methods used by the scheduling engine.
type Repository interface {
	// Create persists a single new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its ID.
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// Update replaces an existing booking document.
	Update(ctx context.Context, booking *models.Booking) error
	// FindBySeries returns the bookings of a series whose status is in
	// the given set, ordered by visit number. An empty set matches all.
	FindBySeries(ctx context.Context, seriesID string, statuses []models.BookingStatus) ([]models.Booking, error)
	// CountBySeries counts persisted bookings carrying the series ID.
	CountBySeries(ctx context.Context, seriesID string) (int64, error)
	// CountBySeriesByStatus breaks the series booking count down per status.
	CountBySeriesByStatus(ctx context.Context, seriesID string) (map[models.BookingStatus]int64, error)
	// InsertManyAtomic inserts up to MaxAtomicWrites bookings in one
	// transaction: either every document in the chunk lands or none do.
	InsertManyAtomic(ctx context.Context, bookings []*models.Booking) error
}
