package sitterRepo

import (
	"context"
	"errors"

	"pawfolio/models"
)

// ErrNotFound is returned when a sitter id does not resolve.
var ErrNotFound = errors.New("sitter not found")

// Directory surfaces sitter candidates from the user directory. The
// directory owns sitter profiles; the engine only reads them.
type Directory interface {
	// ListActiveSitters returns every sitter currently accepting work.
	ListActiveSitters(ctx context.Context) ([]models.SitterCandidate, error)
	// GetByID retrieves a single candidate.
	GetByID(ctx context.Context, sitterID string) (*models.SitterCandidate, error)
}
