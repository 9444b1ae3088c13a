package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingRepo "pawfolio/database/repository/booking"
	sitterRepo "pawfolio/database/repository/sitter"
	"pawfolio/models"
	"pawfolio/utils"
)

// AutoAssignmentPolicy decides whether the coordinator may attach a
// recommended sitter to unassigned siblings. It is passed in explicitly
// at call time so a propagation run is reproducible in isolation.
type AutoAssignmentPolicy struct {
	Enabled bool
}

// SiblingOutcome records what happened to one sibling during a
// propagation run.
type SiblingOutcome struct {
	BookingID        string               `json:"bookingId"`
	PreviousStatus   models.BookingStatus `json:"previousStatus"`
	NewStatus        models.BookingStatus `json:"newStatus"`
	AssignedSitterID string               `json:"assignedSitterId,omitempty"`
	Err              error                `json:"-"`
	ErrMessage       string               `json:"error,omitempty"`
}

// PropagationReport summarizes a propagation run. Failed siblings are
// always listed; the coordinator never lets part of a series silently
// miss an update.
type PropagationReport struct {
	SeriesID string           `json:"seriesId"`
	Updated  int              `json:"updated"`
	Outcomes []SiblingOutcome `json:"outcomes"`
}

// Failed returns the outcomes that did not persist.
func (r *PropagationReport) Failed() []SiblingOutcome {
	var failed []SiblingOutcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// SeriesCoordinator keeps every booking of a recurring series consistent
// when one member changes approval state.
type SeriesCoordinator struct {
	Bookings bookingRepo.Repository
	Sitters  sitterRepo.Directory
	Scorer   SitterScorer
	// PacingDelay spaces sequential sibling writes to respect the
	// store's write-rate expectations.
	PacingDelay time.Duration
}

// PropagateSeriesState advances every still-open sibling (pending or
// scheduled) of the given series. Each sibling's status is re-derived
// with its own sitter flag; siblings are not forced to share the
// triggering booking's sitter. When the policy allows it, an unassigned
// sibling first gets the top-ranked sitter recommendation attached.
//
// Siblings are written one at a time, sequentially, so that downstream
// triggers keyed on individual updates fire once per sibling. Per-
// sibling failures are collected into the report rather than aborting
// the run.
func (c *SeriesCoordinator) PropagateSeriesState(ctx context.Context, seriesID, triggerBookingID, actorID string, policy AutoAssignmentPolicy) (*PropagationReport, error) {
	logger := utils.GetLogger()

	siblings, err := c.Bookings.FindBySeries(ctx, seriesID,
		[]models.BookingStatus{models.StatusPending, models.StatusScheduled})
	if err != nil {
		return nil, err
	}

	report := &PropagationReport{SeriesID: seriesID}

	// The active-candidate pool is fetched once per run, not per
	// sibling; recommendations themselves are recomputed per sibling.
	var candidates []models.SitterCandidate
	if policy.Enabled {
		candidates, err = c.Sitters.ListActiveSitters(ctx)
		if err != nil {
			logger.Warn("sitter directory unavailable, propagating without auto-assignment",
				zap.String("seriesID", seriesID), zap.Error(err))
			candidates = nil
		}
	}

	first := true
	for i := range siblings {
		sibling := siblings[i]
		if sibling.ID == triggerBookingID {
			continue
		}
		if !first && c.PacingDelay > 0 {
			time.Sleep(c.PacingDelay)
		}
		first = false

		outcome := SiblingOutcome{BookingID: sibling.ID, PreviousStatus: sibling.Status}

		if policy.Enabled && !sibling.HasSitter() && len(candidates) > 0 {
			recs, scoreErr := c.Scorer.Score(ctx, &sibling, candidates)
			if scoreErr != nil {
				logger.Warn("scoring failed for sibling, leaving unassigned",
					zap.String("bookingID", sibling.ID), zap.Error(scoreErr))
			} else if len(recs) > 0 {
				sibling.SitterID = recs[0].SitterID
				outcome.AssignedSitterID = recs[0].SitterID
			}
		}

		newStatus, stampApproval := NextStatus(sibling.Status, sibling.HasSitter(),
			sibling.PaymentMethod.AutoApproves(), models.StatusApproved)
		sibling.Status = newStatus
		if stampApproval && sibling.ApprovedAt == nil {
			now := time.Now()
			sibling.ApprovedAt = &now
		}
		sibling.LastModifiedBy = actorID
		sibling.ModificationReason = "series consistency propagation"
		outcome.NewStatus = newStatus

		if err := c.Bookings.Update(ctx, &sibling); err != nil {
			outcome.Err = err
			outcome.ErrMessage = err.Error()
			logger.Error("failed to persist sibling update",
				zap.String("seriesID", seriesID),
				zap.String("bookingID", sibling.ID),
				zap.Error(err))
		} else {
			report.Updated++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	logger.Info("series propagation complete",
		zap.String("seriesID", seriesID),
		zap.Int("updated", report.Updated),
		zap.Int("failed", len(report.Failed())))
	return report, nil
}
