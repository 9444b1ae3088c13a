package models

import "time"

// CreateBookingRequest creates a single booking for a fixed date.
type CreateBookingRequest struct {
	ClientID        string        `json:"clientId" binding:"required"`
	SitterID        string        `json:"sitterId,omitempty"`
	ServiceType     string        `json:"serviceType" binding:"required"`
	PetTypes        []string      `json:"petTypes,omitempty"`
	ScheduledAt     time.Time     `json:"scheduledAt" binding:"required"`
	TimeZone        string        `json:"timeZone,omitempty"`
	DurationMinutes int           `json:"durationMinutes"`
	Price           float64       `json:"price"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" binding:"required"`
}

// CreateRecurringSeriesRequest creates a series template and materializes
// all of its visits in one operation.
type CreateRecurringSeriesRequest struct {
	ClientID            string        `json:"clientId" binding:"required"`
	SitterID            string        `json:"sitterId,omitempty"`
	ServiceType         string        `json:"serviceType" binding:"required"`
	PetTypes            []string      `json:"petTypes,omitempty"`
	Frequency           Frequency     `json:"frequency" binding:"required"`
	StartDate           time.Time     `json:"startDate" binding:"required"`
	PreferredTime       string        `json:"preferredTime,omitempty"` // "HH:MM"
	NumberOfVisits      int           `json:"numberOfVisits" binding:"required"`
	VisitsPerDay        int           `json:"visitsPerDay,omitempty"`
	TimeIntervalMinutes int           `json:"timeIntervalMinutes,omitempty"`
	PreferredDays       []int         `json:"preferredDays,omitempty"`
	DaySchedules        []DaySchedule `json:"daySchedules,omitempty"`
	TimeZone            string        `json:"timeZone,omitempty"`
	DurationMinutes     int           `json:"durationMinutes"`
	BasePrice           float64       `json:"basePrice"`
	PaymentMethod       PaymentMethod `json:"paymentMethod" binding:"required"`
}

// CreateRecurringSeriesResult reports what series creation persisted.
type CreateRecurringSeriesResult struct {
	SeriesID       string   `json:"seriesId"`
	BookingIDs     []string `json:"bookingIds"`
	TotalPrice     float64  `json:"totalPrice"`
	PersistedCount int64    `json:"persistedCount"`
	CountVerified  bool     `json:"countVerified"`
}

// UpdateBookingStatusRequest moves one booking through its lifecycle.
type UpdateBookingStatusRequest struct {
	BookingID string        `json:"bookingId" binding:"required"`
	NewStatus BookingStatus `json:"newStatus" binding:"required"`
	Reason    string        `json:"reason,omitempty"`
}

// AssignSitterRequest attaches a sitter to one booking. Replace must be
// set to take over a booking that already has a different sitter.
type AssignSitterRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	SitterID  string `json:"sitterId" binding:"required"`
	Replace   bool   `json:"replace,omitempty"`
}

// BulkAssignSeriesRequest assigns one sitter across every still-open
// booking of a series.
type BulkAssignSeriesRequest struct {
	SeriesID string `json:"seriesId" binding:"required"`
	SitterID string `json:"sitterId" binding:"required"`
}

// BulkAssignOutcome reports the result for one booking of a bulk assignment.
type BulkAssignOutcome struct {
	BookingID string        `json:"bookingId"`
	Status    BookingStatus `json:"status"`
	Assigned  bool          `json:"assigned"`
	Error     string        `json:"error,omitempty"`
}
