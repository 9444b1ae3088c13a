package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "pawfolio/database/repository/booking"
	seriesRepo "pawfolio/database/repository/series"
	sitterRepo "pawfolio/database/repository/sitter"
	"pawfolio/models"
	"pawfolio/utils"
)

// Orchestrator is the admin-facing entry point of the booking engine.
// It is request-scoped and stateless: all durable state lives in the
// record store, and nothing here caches bookings or series between
// calls.
type Orchestrator struct {
	Bookings    bookingRepo.Repository
	Series      seriesRepo.Repository
	Sitters     sitterRepo.Directory
	Verifier    RoleVerifier
	Scorer      SitterScorer
	Coordinator *SeriesCoordinator
	ChunkSize   int
	PacingDelay time.Duration
}

func (o *Orchestrator) verify(ctx context.Context, actorID string) error {
	if err := o.Verifier.VerifyAdminRole(ctx, actorID); err != nil {
		var denied PermissionDeniedError
		if errors.As(err, &denied) {
			return err
		}
		return PermissionDeniedError{ActorID: actorID}
	}
	return nil
}

func (o *Orchestrator) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := o.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, NotFoundError{Kind: "booking", ID: bookingID}
	}
	return booking, err
}

// GetBooking fetches one booking for display.
func (o *Orchestrator) GetBooking(ctx context.Context, actorID, bookingID string) (*models.Booking, error) {
	if err := o.verify(ctx, actorID); err != nil {
		return nil, err
	}
	return o.getBooking(ctx, bookingID)
}

// CreateBooking creates a single, non-recurring booking for a fixed
// date. The payment method decides the initial status.
func (o *Orchestrator) CreateBooking(ctx context.Context, actorID string, req models.CreateBookingRequest) (*models.Booking, error) {
	if err := o.verify(ctx, actorID); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:              uuid.New().String(),
		ClientID:        req.ClientID,
		SitterID:        req.SitterID,
		ServiceType:     req.ServiceType,
		PetTypes:        req.PetTypes,
		ScheduledAt:     req.ScheduledAt,
		TimeZone:        req.TimeZone,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       now,
		CreatedBy:       actorID,
		CreatedByRole:   "admin",
	}

	status, stampApproval := NextStatus("", booking.HasSitter(), req.PaymentMethod.AutoApproves(), "")
	booking.Status = status
	if stampApproval {
		booking.ApprovedAt = &now
	}

	if err := o.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("status", string(booking.Status)))
	return booking, nil
}

// CreateRecurringSeries expands a recurrence rule into dated visits,
// builds one booking per visit and commits them in bounded atomic
// chunks. A rule that cannot yield the requested count fails before any
// write; a partial chunk failure always surfaces, never masquerading as
// a complete series.
func (o *Orchestrator) CreateRecurringSeries(ctx context.Context, actorID string, req models.CreateRecurringSeriesRequest) (*models.CreateRecurringSeriesResult, error) {
	if err := o.verify(ctx, actorID); err != nil {
		return nil, err
	}
	logger := utils.GetLogger()

	rule := models.RecurrenceRule{
		Frequency:           req.Frequency,
		StartDate:           req.StartDate,
		BaseTime:            req.PreferredTime,
		NumberOfVisits:      req.NumberOfVisits,
		VisitsPerDay:        req.VisitsPerDay,
		TimeIntervalMinutes: req.TimeIntervalMinutes,
		PreferredDays:       req.PreferredDays,
		DaySchedules:        req.DaySchedules,
	}
	dates, err := GenerateVisitDates(rule)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	discount := req.Frequency.Discount()
	visitPrice := req.BasePrice * (1 - discount)
	totalPrice := req.BasePrice * float64(req.NumberOfVisits) * (1 - discount)

	series := &models.RecurringSeries{
		ID:             uuid.New().String(),
		ClientID:       req.ClientID,
		ServiceType:    req.ServiceType,
		Frequency:      req.Frequency,
		StartDate:      req.StartDate,
		NumberOfVisits: req.NumberOfVisits,
		BasePrice:      req.BasePrice,
		TotalPrice:     totalPrice,
		PreferredTime:  req.PreferredTime,
		PreferredDays:  req.PreferredDays,
		DaySchedules:   req.DaySchedules,
		TimeZone:       req.TimeZone,
		PaymentMethod:  req.PaymentMethod,
		UpcomingVisits: req.NumberOfVisits,
		CreatedAt:      now,
		CreatedBy:      actorID,
	}
	if err := o.Series.Create(ctx, series); err != nil {
		return nil, err
	}

	hasSitter := req.SitterID != ""
	status, stampApproval := NextStatus("", hasSitter, req.PaymentMethod.AutoApproves(), "")

	bookings := make([]*models.Booking, len(dates))
	bookingIDs := make([]string, len(dates))
	for i, date := range dates {
		b := &models.Booking{
			ID:                uuid.New().String(),
			RecurringSeriesID: series.ID,
			VisitNumber:       i + 1,
			ClientID:          req.ClientID,
			SitterID:          req.SitterID,
			ServiceType:       req.ServiceType,
			PetTypes:          req.PetTypes,
			ScheduledAt:       date,
			TimeZone:          req.TimeZone,
			DurationMinutes:   req.DurationMinutes,
			Price:             visitPrice,
			PaymentMethod:     req.PaymentMethod,
			Status:            status,
			CreatedAt:         now,
			CreatedBy:         actorID,
			CreatedByRole:     "admin",
		}
		if stampApproval {
			b.ApprovedAt = &now
		}
		bookings[i] = b
		bookingIDs[i] = b.ID
	}

	batch := &BatchWriteCoordinator{ChunkSize: o.ChunkSize, Insert: o.Bookings.InsertManyAtomic}
	if _, err := batch.Commit(ctx, bookings); err != nil {
		// Already-committed chunks stay committed; the caller gets the
		// exact shortfall rather than a silently partial series.
		return nil, err
	}

	// Read-back verification against the series correlation key. The
	// writes themselves succeeded, so a mismatch is a warning only.
	persisted, err := o.Bookings.CountBySeries(ctx, series.ID)
	verified := err == nil && persisted == int64(req.NumberOfVisits)
	if err != nil {
		logger.Warn("series count verification failed",
			zap.String("seriesID", series.ID), zap.Error(err))
	} else if !verified {
		logger.Warn("series count mismatch after commit",
			zap.String("seriesID", series.ID),
			zap.Int64("persisted", persisted),
			zap.Int("requested", req.NumberOfVisits))
	}

	logger.Info("recurring series created",
		zap.String("seriesID", series.ID),
		zap.Int("visits", len(bookings)),
		zap.Float64("totalPrice", totalPrice))

	return &models.CreateRecurringSeriesResult{
		SeriesID:       series.ID,
		BookingIDs:     bookingIDs,
		TotalPrice:     totalPrice,
		PersistedCount: persisted,
		CountVerified:  verified,
	}, nil
}

// UpdateBookingStatus moves one booking through the state machine and,
// when the booking belongs to a series and lands on approved or
// scheduled, propagates the change to its siblings.
func (o *Orchestrator) UpdateBookingStatus(ctx context.Context, actorID string, req models.UpdateBookingStatusRequest, policy AutoAssignmentPolicy) (*models.Booking, *PropagationReport, error) {
	if err := o.verify(ctx, actorID); err != nil {
		return nil, nil, err
	}

	booking, err := o.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, nil, err
	}

	if !CanTransition(booking.Status, req.NewStatus) {
		return nil, nil, ConflictError{
			BookingID: booking.ID,
			Reason:    fmt.Sprintf("cannot transition from %s to %s", booking.Status, req.NewStatus),
		}
	}

	newStatus, stampApproval := NextStatus(booking.Status, booking.HasSitter(),
		booking.PaymentMethod.AutoApproves(), req.NewStatus)
	booking.Status = newStatus
	if stampApproval && booking.ApprovedAt == nil {
		now := time.Now()
		booking.ApprovedAt = &now
	}
	booking.LastModifiedBy = actorID
	booking.ModificationReason = req.Reason

	if err := o.Bookings.Update(ctx, booking); err != nil {
		return nil, nil, err
	}

	var report *PropagationReport
	if booking.InSeries() {
		if newStatus == models.StatusApproved || newStatus == models.StatusScheduled {
			report, err = o.Coordinator.PropagateSeriesState(ctx, booking.RecurringSeriesID, booking.ID, actorID, policy)
			if err != nil {
				return booking, nil, err
			}
		}
		o.refreshSeriesCounters(ctx, booking.RecurringSeriesID)
	}
	return booking, report, nil
}

// AssignSitter attaches a sitter to one booking. A booking that already
// carries a different sitter is a conflict unless the caller explicitly
// asked to replace; the booking is re-read here so an assignment made
// by another actor since the caller last looked is detected, not
// overwritten.
func (o *Orchestrator) AssignSitter(ctx context.Context, actorID string, req models.AssignSitterRequest, policy AutoAssignmentPolicy) (*models.Booking, *PropagationReport, error) {
	if err := o.verify(ctx, actorID); err != nil {
		return nil, nil, err
	}

	booking, err := o.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking.Status.Terminal() {
		return nil, nil, ConflictError{
			BookingID: booking.ID,
			Reason:    fmt.Sprintf("booking is %s and cannot be reassigned", booking.Status),
		}
	}
	if booking.SitterID != "" && booking.SitterID != req.SitterID && !req.Replace {
		return nil, nil, ConflictError{
			BookingID:       booking.ID,
			CurrentSitterID: booking.SitterID,
			Reason:          "a sitter is already assigned",
		}
	}

	if _, err := o.Sitters.GetByID(ctx, req.SitterID); err != nil {
		if errors.Is(err, sitterRepo.ErrNotFound) {
			return nil, nil, NotFoundError{Kind: "sitter", ID: req.SitterID}
		}
		return nil, nil, DependencyUnavailableError{Dependency: "sitter directory", Err: err}
	}

	booking.SitterID = req.SitterID
	if booking.Status == models.StatusScheduled {
		newStatus, stampApproval := NextStatus(booking.Status, true,
			booking.PaymentMethod.AutoApproves(), models.StatusApproved)
		booking.Status = newStatus
		if stampApproval && booking.ApprovedAt == nil {
			now := time.Now()
			booking.ApprovedAt = &now
		}
	}
	booking.LastModifiedBy = actorID
	booking.ModificationReason = "sitter assignment"

	if err := o.Bookings.Update(ctx, booking); err != nil {
		return nil, nil, err
	}

	var report *PropagationReport
	if booking.InSeries() && booking.Status == models.StatusApproved {
		report, err = o.Coordinator.PropagateSeriesState(ctx, booking.RecurringSeriesID, booking.ID, actorID, policy)
		if err != nil {
			return booking, nil, err
		}
		o.refreshSeriesCounters(ctx, booking.RecurringSeriesID)
	}
	return booking, report, nil
}

// UnassignSitter detaches the sitter from one booking. An approved
// booking drops back to scheduled since approval requires a sitter;
// the original approval timestamp is kept for audit.
func (o *Orchestrator) UnassignSitter(ctx context.Context, actorID, bookingID, reason string) (*models.Booking, error) {
	if err := o.verify(ctx, actorID); err != nil {
		return nil, err
	}

	booking, err := o.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() || booking.Status == models.StatusActive {
		return nil, ConflictError{
			BookingID: booking.ID,
			Reason:    fmt.Sprintf("booking is %s and its sitter cannot be removed", booking.Status),
		}
	}

	booking.SitterID = ""
	if booking.Status == models.StatusApproved {
		newStatus, _ := NextStatus(booking.Status, false,
			booking.PaymentMethod.AutoApproves(), models.StatusApproved)
		booking.Status = newStatus
	}
	booking.LastModifiedBy = actorID
	if reason == "" {
		reason = "sitter unassignment"
	}
	booking.ModificationReason = reason

	if err := o.Bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// BulkAssignSeries assigns one sitter across every still-open booking
// of a series. Siblings are written one at a time with a pacing delay,
// not as a single multi-document patch, so per-record side effects
// still fire once per booking.
func (o *Orchestrator) BulkAssignSeries(ctx context.Context, actorID string, req models.BulkAssignSeriesRequest) ([]models.BulkAssignOutcome, error) {
	if err := o.verify(ctx, actorID); err != nil {
		return nil, err
	}

	if _, err := o.Series.GetByID(ctx, req.SeriesID); err != nil {
		if errors.Is(err, seriesRepo.ErrNotFound) {
			return nil, NotFoundError{Kind: "series", ID: req.SeriesID}
		}
		return nil, err
	}
	if _, err := o.Sitters.GetByID(ctx, req.SitterID); err != nil {
		if errors.Is(err, sitterRepo.ErrNotFound) {
			return nil, NotFoundError{Kind: "sitter", ID: req.SitterID}
		}
		return nil, DependencyUnavailableError{Dependency: "sitter directory", Err: err}
	}

	open, err := o.Bookings.FindBySeries(ctx, req.SeriesID,
		[]models.BookingStatus{models.StatusPending, models.StatusScheduled})
	if err != nil {
		return nil, err
	}

	outcomes := make([]models.BulkAssignOutcome, 0, len(open))
	for i := range open {
		if i > 0 && o.PacingDelay > 0 {
			time.Sleep(o.PacingDelay)
		}
		booking := open[i]
		outcome := models.BulkAssignOutcome{BookingID: booking.ID}

		if booking.SitterID != "" && booking.SitterID != req.SitterID {
			outcome.Status = booking.Status
			outcome.Error = fmt.Sprintf("already assigned to sitter %s", booking.SitterID)
			outcomes = append(outcomes, outcome)
			continue
		}

		booking.SitterID = req.SitterID
		newStatus, stampApproval := NextStatus(booking.Status, true,
			booking.PaymentMethod.AutoApproves(), models.StatusApproved)
		if booking.Status == models.StatusScheduled {
			booking.Status = newStatus
			if stampApproval && booking.ApprovedAt == nil {
				now := time.Now()
				booking.ApprovedAt = &now
			}
		}
		booking.LastModifiedBy = actorID
		booking.ModificationReason = "bulk sitter assignment"

		if err := o.Bookings.Update(ctx, &booking); err != nil {
			outcome.Status = booking.Status
			outcome.Error = err.Error()
		} else {
			outcome.Status = booking.Status
			outcome.Assigned = true
		}
		outcomes = append(outcomes, outcome)
	}

	o.refreshSeriesCounters(ctx, req.SeriesID)
	return outcomes, nil
}

// RecommendSitters ranks the active sitter pool for one booking. The
// result is ephemeral; nothing is persisted.
func (o *Orchestrator) RecommendSitters(ctx context.Context, actorID, bookingID string) ([]models.Recommendation, error) {
	if err := o.verify(ctx, actorID); err != nil {
		return nil, err
	}

	booking, err := o.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	candidates, err := o.Sitters.ListActiveSitters(ctx)
	if err != nil {
		return nil, DependencyUnavailableError{Dependency: "sitter directory", Err: err}
	}
	return o.Scorer.Score(ctx, booking, candidates)
}

// refreshSeriesCounters recomputes the denormalized visit counters from
// the bookings collection. Best effort: a failure is logged, not
// surfaced, since the bookings themselves are already consistent.
func (o *Orchestrator) refreshSeriesCounters(ctx context.Context, seriesID string) {
	counts, err := o.Bookings.CountBySeriesByStatus(ctx, seriesID)
	if err != nil {
		utils.GetLogger().Warn("failed to refresh series counters",
			zap.String("seriesID", seriesID), zap.Error(err))
		return
	}
	completed := int(counts[models.StatusCompleted])
	canceled := int(counts[models.StatusCancelled])
	upcoming := int(counts[models.StatusPending] + counts[models.StatusScheduled] +
		counts[models.StatusApproved] + counts[models.StatusActive])

	if err := o.Series.UpdateCounters(ctx, seriesID, completed, canceled, upcoming); err != nil {
		utils.GetLogger().Warn("failed to persist series counters",
			zap.String("seriesID", seriesID), zap.Error(err))
	}
}
