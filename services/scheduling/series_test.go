package scheduling

import (
	"context"
	"errors"
	"testing"

	"pawfolio/models"
)

func seedSeriesBookings(repo *fakeBookingRepo, seriesID string, bookings ...models.Booking) {
	for i := range bookings {
		bookings[i].RecurringSeriesID = seriesID
		repo.byID[bookings[i].ID] = bookings[i]
	}
}

func TestPropagateAdvancesOpenSiblings(t *testing.T) {
	bookings := newFakeBookingRepo()
	seedSeriesBookings(bookings, "series-1",
		models.Booking{ID: "trigger", VisitNumber: 1, Status: models.StatusApproved, SitterID: "s-1"},
		models.Booking{ID: "with-sitter", VisitNumber: 2, Status: models.StatusPending, SitterID: "s-1"},
		models.Booking{ID: "no-sitter", VisitNumber: 3, Status: models.StatusPending},
		models.Booking{ID: "done", VisitNumber: 4, Status: models.StatusCancelled},
	)

	coord := &SeriesCoordinator{Bookings: bookings}
	report, err := coord.PropagateSeriesState(context.Background(), "series-1", "trigger", "admin-1", AutoAssignmentPolicy{})
	if err != nil {
		t.Fatalf("PropagateSeriesState: %v", err)
	}

	if report.Updated != 2 {
		t.Errorf("Updated = %d, want 2", report.Updated)
	}
	if len(report.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(report.Outcomes))
	}

	withSitter := bookings.byID["with-sitter"]
	if withSitter.Status != models.StatusApproved {
		t.Errorf("sibling with sitter = %s, want approved", withSitter.Status)
	}
	if withSitter.ApprovedAt == nil {
		t.Error("approved sibling must carry an approval timestamp")
	}

	noSitter := bookings.byID["no-sitter"]
	if noSitter.Status != models.StatusScheduled {
		t.Errorf("sibling without sitter = %s, want scheduled", noSitter.Status)
	}
	if noSitter.ApprovedAt != nil {
		t.Error("scheduled sibling must not carry an approval timestamp")
	}

	if got := bookings.byID["trigger"].Status; got != models.StatusApproved {
		t.Errorf("trigger booking must be skipped, status changed to %s", got)
	}
	if got := bookings.byID["done"].Status; got != models.StatusCancelled {
		t.Errorf("terminal sibling must be untouched, status changed to %s", got)
	}
}

func TestPropagateRecordsAuditTrail(t *testing.T) {
	bookings := newFakeBookingRepo()
	seedSeriesBookings(bookings, "series-1",
		models.Booking{ID: "trigger", Status: models.StatusApproved, SitterID: "s-1"},
		models.Booking{ID: "sibling", Status: models.StatusPending, SitterID: "s-1"},
	)

	coord := &SeriesCoordinator{Bookings: bookings}
	if _, err := coord.PropagateSeriesState(context.Background(), "series-1", "trigger", "admin-7", AutoAssignmentPolicy{}); err != nil {
		t.Fatalf("PropagateSeriesState: %v", err)
	}

	sibling := bookings.byID["sibling"]
	if sibling.LastModifiedBy != "admin-7" {
		t.Errorf("LastModifiedBy = %q, want admin-7", sibling.LastModifiedBy)
	}
	if sibling.ModificationReason == "" {
		t.Error("propagated sibling must record a modification reason")
	}
}

func TestPropagateAutoAssignsTopRecommendation(t *testing.T) {
	bookings := newFakeBookingRepo()
	seedSeriesBookings(bookings, "series-1",
		models.Booking{ID: "trigger", Status: models.StatusApproved, SitterID: "s-old"},
		models.Booking{ID: "open", Status: models.StatusScheduled, PaymentMethod: models.PaymentCard},
	)
	directory := &fakeSitterDirectory{candidates: []models.SitterCandidate{
		{ID: "s-best", Rating: 5, TotalBookings: 60, IsActive: true, HasLocationData: true},
		{ID: "s-ok", Rating: 3, IsActive: true},
	}}

	coord := &SeriesCoordinator{
		Bookings: bookings,
		Sitters:  directory,
		Scorer:   &DefaultSitterScorer{},
	}
	report, err := coord.PropagateSeriesState(context.Background(), "series-1", "trigger", "admin-1", AutoAssignmentPolicy{Enabled: true})
	if err != nil {
		t.Fatalf("PropagateSeriesState: %v", err)
	}

	open := bookings.byID["open"]
	if open.SitterID != "s-best" {
		t.Errorf("SitterID = %q, want s-best", open.SitterID)
	}
	if open.Status != models.StatusApproved {
		t.Errorf("status = %s, want approved after auto-assignment", open.Status)
	}
	if len(report.Outcomes) != 1 || report.Outcomes[0].AssignedSitterID != "s-best" {
		t.Errorf("outcome must record the assignment: %+v", report.Outcomes)
	}
}

func TestPropagateWithoutPolicyLeavesSittersAlone(t *testing.T) {
	bookings := newFakeBookingRepo()
	seedSeriesBookings(bookings, "series-1",
		models.Booking{ID: "trigger", Status: models.StatusApproved, SitterID: "s-1"},
		models.Booking{ID: "open", Status: models.StatusScheduled},
	)

	coord := &SeriesCoordinator{
		Bookings: bookings,
		Sitters:  &fakeSitterDirectory{candidates: []models.SitterCandidate{{ID: "s-best", Rating: 5, IsActive: true}}},
		Scorer:   &DefaultSitterScorer{},
	}
	if _, err := coord.PropagateSeriesState(context.Background(), "series-1", "trigger", "admin-1", AutoAssignmentPolicy{}); err != nil {
		t.Fatalf("PropagateSeriesState: %v", err)
	}

	open := bookings.byID["open"]
	if open.SitterID != "" {
		t.Errorf("SitterID = %q, want empty without auto-assignment", open.SitterID)
	}
	if open.Status != models.StatusScheduled {
		t.Errorf("status = %s, want scheduled to stay scheduled", open.Status)
	}
}

func TestPropagateSurvivesDirectoryOutage(t *testing.T) {
	bookings := newFakeBookingRepo()
	seedSeriesBookings(bookings, "series-1",
		models.Booking{ID: "trigger", Status: models.StatusApproved, SitterID: "s-1"},
		models.Booking{ID: "open", Status: models.StatusPending, SitterID: "s-1"},
	)

	coord := &SeriesCoordinator{
		Bookings: bookings,
		Sitters:  &fakeSitterDirectory{listErr: errors.New("directory down")},
		Scorer:   &DefaultSitterScorer{},
	}
	report, err := coord.PropagateSeriesState(context.Background(), "series-1", "trigger", "admin-1", AutoAssignmentPolicy{Enabled: true})
	if err != nil {
		t.Fatalf("a directory outage must not abort propagation: %v", err)
	}
	if report.Updated != 1 {
		t.Errorf("Updated = %d, want 1", report.Updated)
	}
	if got := bookings.byID["open"].Status; got != models.StatusApproved {
		t.Errorf("sibling with its own sitter = %s, want approved", got)
	}
}

func TestPropagateCollectsPerSiblingFailures(t *testing.T) {
	bookings := newFakeBookingRepo()
	seedSeriesBookings(bookings, "series-1",
		models.Booking{ID: "trigger", Status: models.StatusApproved, SitterID: "s-1"},
		models.Booking{ID: "good", Status: models.StatusPending, SitterID: "s-1"},
	)
	// A sibling the store will refuse to update: present in the query
	// results but deleted before the write lands.
	ghost := models.Booking{ID: "ghost", RecurringSeriesID: "series-1", Status: models.StatusPending, SitterID: "s-1"}
	failing := &vanishingBookingRepo{fakeBookingRepo: bookings, ghost: ghost}

	coord := &SeriesCoordinator{Bookings: failing}
	report, err := coord.PropagateSeriesState(context.Background(), "series-1", "trigger", "admin-1", AutoAssignmentPolicy{})
	if err != nil {
		t.Fatalf("PropagateSeriesState: %v", err)
	}

	if report.Updated != 1 {
		t.Errorf("Updated = %d, want 1", report.Updated)
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].BookingID != "ghost" {
		t.Fatalf("expected the ghost sibling to fail, got %+v", failed)
	}
	if got := bookings.byID["good"].Status; got != models.StatusApproved {
		t.Errorf("healthy sibling = %s, want approved despite the other failure", got)
	}
}

// vanishingBookingRepo serves one extra sibling that the underlying
// store does not hold, so its update fails.
type vanishingBookingRepo struct {
	*fakeBookingRepo
	ghost models.Booking
}

func (v *vanishingBookingRepo) FindBySeries(ctx context.Context, seriesID string, statuses []models.BookingStatus) ([]models.Booking, error) {
	siblings, err := v.fakeBookingRepo.FindBySeries(ctx, seriesID, statuses)
	if err != nil {
		return nil, err
	}
	return append(siblings, v.ghost), nil
}
