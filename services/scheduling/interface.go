package scheduling

import (
	"context"

	"pawfolio/models"
)

// SitterScorer ranks sitter candidates for a booking.
type SitterScorer interface {
	// Score returns up to five recommendations, best first.
	Score(ctx context.Context, booking *models.Booking, candidates []models.SitterCandidate) ([]models.Recommendation, error)
}

// RemoteScorer is the remote scoring service consumed by the default
// scorer. It may fail per call; the caller decides to fall back.
type RemoteScorer interface {
	ScoreCandidate(ctx context.Context, features CandidateFeatures) (*models.Recommendation, error)
}

// RoleVerifier checks that an actor holds an administrative role.
// Every mutating orchestrator use case consults it first.
type RoleVerifier interface {
	VerifyAdminRole(ctx context.Context, actorID string) error
}
