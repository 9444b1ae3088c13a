package models

import "time"

// BookingStatus is the lifecycle state of a single Booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusScheduled BookingStatus = "scheduled" // would be approved, but no sitter attached yet
	StatusApproved  BookingStatus = "approved"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Terminal reports whether a booking in this status can never change again.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PaymentMethod identifies how the client pays for a visit.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCheck  PaymentMethod = "check"
	PaymentComp   PaymentMethod = "comp"
	PaymentCard   PaymentMethod = "card"
	PaymentACH    PaymentMethod = "ach"
	PaymentPayPal PaymentMethod = "paypal"
)

// AutoApproves reports whether bookings paid with this method skip manual
// admin approval. Cash, check and comp visits are settled offline and go
// straight to approved (or scheduled, while no sitter is attached).
func (m PaymentMethod) AutoApproves() bool {
	switch m {
	case PaymentCash, PaymentCheck, PaymentComp:
		return true
	}
	return false
}

// Booking represents one scheduled service visit.
type Booking struct {
	ID                 string        `bson:"id" json:"id"`
	RecurringSeriesID  string        `bson:"recurring_series_id,omitempty" json:"recurringSeriesId,omitempty"`
	VisitNumber        int           `bson:"visit_number,omitempty" json:"visitNumber,omitempty"` // 1-based position within a series
	ClientID           string        `bson:"client_id" json:"clientId"`
	SitterID           string        `bson:"sitter_id,omitempty" json:"sitterId,omitempty"`
	ServiceType        string        `bson:"service_type" json:"serviceType"`
	PetTypes           []string      `bson:"pet_types,omitempty" json:"petTypes,omitempty"` // pets covered by this visit
	ScheduledAt        time.Time     `bson:"scheduled_at" json:"scheduledAt"`
	TimeZone           string        `bson:"time_zone,omitempty" json:"timeZone,omitempty"` // IANA identifier, informational only
	DurationMinutes    int           `bson:"duration_minutes" json:"durationMinutes"`
	Price              float64       `bson:"price" json:"price"`
	PaymentMethod      PaymentMethod `bson:"payment_method" json:"paymentMethod"`
	PaymentStatus      string        `bson:"payment_status,omitempty" json:"paymentStatus,omitempty"`
	Status             BookingStatus `bson:"status" json:"status"`
	ApprovedAt         *time.Time    `bson:"approved_at,omitempty" json:"approvedAt,omitempty"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
	CreatedBy          string        `bson:"created_by" json:"createdBy"`
	CreatedByRole      string        `bson:"created_by_role,omitempty" json:"createdByRole,omitempty"`
	LastModifiedBy     string        `bson:"last_modified_by,omitempty" json:"lastModifiedBy,omitempty"`
	ModificationReason string        `bson:"modification_reason,omitempty" json:"modificationReason,omitempty"`
}

// HasSitter reports whether a sitter is attached to this booking.
func (b *Booking) HasSitter() bool {
	return b.SitterID != ""
}

// InSeries reports whether the booking belongs to a recurring series.
func (b *Booking) InSeries() bool {
	return b.RecurringSeriesID != ""
}
