package scheduling

import (
	"context"
	"fmt"
	"sort"
	"sync"

	bookingRepo "pawfolio/database/repository/booking"
	seriesRepo "pawfolio/database/repository/series"
	sitterRepo "pawfolio/database/repository/sitter"
	"pawfolio/models"
)

// fakeBookingRepo is an in-memory booking repository.
type fakeBookingRepo struct {
	mu               sync.Mutex
	byID             map[string]models.Booking
	insertCalls      int
	failInsertOnCall int // 1-based call index that fails; 0 = never
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[string]models.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[b.ID] = *b
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, bookingRepo.ErrNotFound)
	}
	b2 := b
	return &b2, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[b.ID]; !ok {
		return fmt.Errorf("booking %s: %w", b.ID, bookingRepo.ErrNotFound)
	}
	f.byID[b.ID] = *b
	return nil
}

func (f *fakeBookingRepo) FindBySeries(ctx context.Context, seriesID string, statuses []models.BookingStatus) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[models.BookingStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}
	var out []models.Booking
	for _, b := range f.byID {
		if b.RecurringSeriesID != seriesID {
			continue
		}
		if len(statuses) > 0 && !wanted[b.Status] {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitNumber < out[j].VisitNumber })
	return out, nil
}

func (f *fakeBookingRepo) CountBySeries(ctx context.Context, seriesID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.byID {
		if b.RecurringSeriesID == seriesID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) CountBySeriesByStatus(ctx context.Context, seriesID string) (map[models.BookingStatus]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[models.BookingStatus]int64)
	for _, b := range f.byID {
		if b.RecurringSeriesID == seriesID {
			counts[b.Status]++
		}
	}
	return counts, nil
}

func (f *fakeBookingRepo) InsertManyAtomic(ctx context.Context, bookings []*models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.failInsertOnCall > 0 && f.insertCalls == f.failInsertOnCall {
		return fmt.Errorf("simulated chunk failure")
	}
	for _, b := range bookings {
		f.byID[b.ID] = *b
	}
	return nil
}

// fakeSeriesRepo is an in-memory series repository.
type fakeSeriesRepo struct {
	mu   sync.Mutex
	byID map[string]models.RecurringSeries
}

func newFakeSeriesRepo() *fakeSeriesRepo {
	return &fakeSeriesRepo{byID: make(map[string]models.RecurringSeries)}
}

func (f *fakeSeriesRepo) Create(ctx context.Context, s *models.RecurringSeries) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeSeriesRepo) GetByID(ctx context.Context, id string) (*models.RecurringSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("series %s: %w", id, seriesRepo.ErrNotFound)
	}
	s2 := s
	return &s2, nil
}

func (f *fakeSeriesRepo) Update(ctx context.Context, s *models.RecurringSeries) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[s.ID]; !ok {
		return fmt.Errorf("series %s: %w", s.ID, seriesRepo.ErrNotFound)
	}
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeSeriesRepo) UpdateCounters(ctx context.Context, id string, completed, canceled, upcoming int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("series %s: %w", id, seriesRepo.ErrNotFound)
	}
	s.CompletedVisits = completed
	s.CanceledVisits = canceled
	s.UpcomingVisits = upcoming
	f.byID[id] = s
	return nil
}

// fakeSitterDirectory serves a fixed candidate pool.
type fakeSitterDirectory struct {
	candidates []models.SitterCandidate
	listErr    error
}

func (f *fakeSitterDirectory) ListActiveSitters(ctx context.Context) ([]models.SitterCandidate, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var active []models.SitterCandidate
	for _, c := range f.candidates {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (f *fakeSitterDirectory) GetByID(ctx context.Context, id string) (*models.SitterCandidate, error) {
	for _, c := range f.candidates {
		if c.ID == id {
			c2 := c
			return &c2, nil
		}
	}
	return nil, fmt.Errorf("sitter %s: %w", id, sitterRepo.ErrNotFound)
}

// fakeVerifier grants admin to a fixed set of actors.
type fakeVerifier struct {
	admins map[string]bool
}

func (f *fakeVerifier) VerifyAdminRole(ctx context.Context, actorID string) error {
	if f.admins[actorID] {
		return nil
	}
	return PermissionDeniedError{ActorID: actorID}
}

// fakeRemoteScorer delegates to a per-test function.
type fakeRemoteScorer struct {
	fn func(features CandidateFeatures) (*models.Recommendation, error)
}

func (f *fakeRemoteScorer) ScoreCandidate(ctx context.Context, features CandidateFeatures) (*models.Recommendation, error) {
	return f.fn(features)
}
