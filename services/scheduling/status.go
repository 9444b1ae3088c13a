package scheduling

import "pawfolio/models"

// legalTransitions is the booking lifecycle graph. Same-state
// transitions are implicitly allowed (idempotent re-application).
var legalTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusScheduled, models.StatusApproved, models.StatusCancelled},
	models.StatusScheduled: {models.StatusApproved, models.StatusCancelled},
	models.StatusApproved:  {models.StatusActive, models.StatusCancelled},
	models.StatusActive:    {models.StatusCompleted, models.StatusCancelled},
}

// CanTransition reports whether moving a booking from one status to
// another is legal. Completed and cancelled are terminal, and a booking
// never jumps straight to completed without passing through active.
func CanTransition(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	// A requested "approved" may legally land on "scheduled" when no
	// sitter is attached; accept that downgrade wherever approval
	// itself would have been legal.
	if to == models.StatusScheduled {
		return CanTransition(from, models.StatusApproved)
	}
	return false
}

// InitialStatus computes the status of a freshly created booking.
// Auto-approved payment methods (cash, check, comp) skip the manual
// approval queue: with a sitter already chosen the booking starts
// approved, without one it starts scheduled. Every other payment
// method starts pending regardless of sitter.
func InitialStatus(paymentAutoApproves, hasSitter bool) models.BookingStatus {
	if !paymentAutoApproves {
		return models.StatusPending
	}
	if hasSitter {
		return models.StatusApproved
	}
	return models.StatusScheduled
}

// NextStatus computes the status a booking should land on given its
// current state, whether a sitter is attached, and the requested
// status. The second return value reports whether approvedAt should be
// stamped (the caller stamps it only if not already set).
//
// A requested "approved" with no sitter is deliberately downgraded to
// "scheduled": a booking is never approved without someone to run the
// visit, and the downgrade is re-promoted by the series coordinator as
// soon as a sitter lands.
func NextStatus(current models.BookingStatus, hasSitter, paymentAutoApproves bool, requested models.BookingStatus) (models.BookingStatus, bool) {
	if current == "" {
		// Creation: no prior status, the payment method decides.
		status := InitialStatus(paymentAutoApproves, hasSitter)
		return status, status == models.StatusApproved
	}
	if requested == models.StatusApproved {
		if !hasSitter {
			return models.StatusScheduled, false
		}
		return models.StatusApproved, true
	}
	return requested, false
}
