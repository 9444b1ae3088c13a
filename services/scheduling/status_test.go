package scheduling

import (
	"testing"

	"pawfolio/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.BookingStatus
		want     bool
	}{
		{models.StatusPending, models.StatusScheduled, true},
		{models.StatusPending, models.StatusApproved, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusActive, false},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusScheduled, models.StatusApproved, true},
		{models.StatusScheduled, models.StatusCancelled, true},
		{models.StatusScheduled, models.StatusCompleted, false},
		{models.StatusApproved, models.StatusActive, true},
		{models.StatusApproved, models.StatusCancelled, true},
		// Losing the sitter downgrades an approved booking.
		{models.StatusApproved, models.StatusScheduled, true},
		{models.StatusApproved, models.StatusCompleted, false},
		{models.StatusActive, models.StatusCompleted, true},
		{models.StatusActive, models.StatusCancelled, true},
		{models.StatusActive, models.StatusScheduled, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCompleted, models.StatusActive, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusCancelled, models.StatusApproved, false},
		// Idempotent re-application.
		{models.StatusApproved, models.StatusApproved, true},
		{models.StatusCompleted, models.StatusCompleted, true},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	cases := []struct {
		name                string
		paymentAutoApproves bool
		hasSitter           bool
		want                models.BookingStatus
	}{
		{"card payment waits for approval", false, true, models.StatusPending},
		{"card payment without sitter waits too", false, false, models.StatusPending},
		{"cash with sitter starts approved", true, true, models.StatusApproved},
		{"cash without sitter starts scheduled", true, false, models.StatusScheduled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InitialStatus(tc.paymentAutoApproves, tc.hasSitter); got != tc.want {
				t.Errorf("InitialStatus(%v, %v) = %s, want %s", tc.paymentAutoApproves, tc.hasSitter, got, tc.want)
			}
		})
	}
}

func TestNextStatusCreation(t *testing.T) {
	status, stamp := NextStatus("", true, true, "")
	if status != models.StatusApproved || !stamp {
		t.Errorf("cash creation with sitter: got (%s, %v), want (approved, true)", status, stamp)
	}

	status, stamp = NextStatus("", false, true, "")
	if status != models.StatusScheduled || stamp {
		t.Errorf("cash creation without sitter: got (%s, %v), want (scheduled, false)", status, stamp)
	}

	status, stamp = NextStatus("", true, false, "")
	if status != models.StatusPending || stamp {
		t.Errorf("card creation: got (%s, %v), want (pending, false)", status, stamp)
	}
}

func TestNextStatusApprovalRequiresSitter(t *testing.T) {
	status, stamp := NextStatus(models.StatusPending, false, false, models.StatusApproved)
	if status != models.StatusScheduled || stamp {
		t.Errorf("approval without sitter: got (%s, %v), want (scheduled, false)", status, stamp)
	}

	status, stamp = NextStatus(models.StatusPending, true, false, models.StatusApproved)
	if status != models.StatusApproved || !stamp {
		t.Errorf("approval with sitter: got (%s, %v), want (approved, true)", status, stamp)
	}

	status, stamp = NextStatus(models.StatusScheduled, true, false, models.StatusApproved)
	if status != models.StatusApproved || !stamp {
		t.Errorf("promotion from scheduled: got (%s, %v), want (approved, true)", status, stamp)
	}
}

func TestNextStatusPassesThroughOtherRequests(t *testing.T) {
	status, stamp := NextStatus(models.StatusApproved, true, false, models.StatusActive)
	if status != models.StatusActive || stamp {
		t.Errorf("activation: got (%s, %v), want (active, false)", status, stamp)
	}

	status, stamp = NextStatus(models.StatusActive, true, false, models.StatusCompleted)
	if status != models.StatusCompleted || stamp {
		t.Errorf("completion: got (%s, %v), want (completed, false)", status, stamp)
	}

	status, stamp = NextStatus(models.StatusPending, false, false, models.StatusCancelled)
	if status != models.StatusCancelled || stamp {
		t.Errorf("cancellation: got (%s, %v), want (cancelled, false)", status, stamp)
	}
}
