package models

import "time"

// Frequency is how often visits in a recurring series repeat.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Discount returns the fractional discount applied to a series booked at
// this frequency. Daily clients commit to the most visits and get the
// deepest cut.
func (f Frequency) Discount() float64 {
	switch f {
	case FrequencyDaily:
		return 0.10
	case FrequencyWeekly:
		return 0.05
	}
	return 0
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// DaySchedule configures visits for one weekday of a weekly series.
// DayOfWeek uses 0=Sunday .. 6=Saturday.
type DaySchedule struct {
	DayOfWeek      int      `bson:"day_of_week" json:"dayOfWeek"`
	Enabled        bool     `bson:"enabled" json:"enabled"`
	NumberOfVisits int      `bson:"number_of_visits" json:"numberOfVisits"` // 1 or 2
	VisitTimes     []string `bson:"visit_times" json:"visitTimes"`          // wall-clock "HH:MM", one per visit
}

// RecurringSeries is the template that produced a batch of bookings.
type RecurringSeries struct {
	ID              string        `bson:"id" json:"id"`
	ClientID        string        `bson:"client_id" json:"clientId"`
	ServiceType     string        `bson:"service_type" json:"serviceType"`
	Frequency       Frequency     `bson:"frequency" json:"frequency"`
	StartDate       time.Time     `bson:"start_date" json:"startDate"`
	NumberOfVisits  int           `bson:"number_of_visits" json:"numberOfVisits"`
	BasePrice       float64       `bson:"base_price" json:"basePrice"`
	TotalPrice      float64       `bson:"total_price" json:"totalPrice"`
	PreferredTime   string        `bson:"preferred_time,omitempty" json:"preferredTime,omitempty"` // "HH:MM"
	PreferredDays   []int         `bson:"preferred_days,omitempty" json:"preferredDays,omitempty"`
	DaySchedules    []DaySchedule `bson:"day_schedules,omitempty" json:"daySchedules,omitempty"`
	TimeZone        string        `bson:"time_zone,omitempty" json:"timeZone,omitempty"`
	PaymentMethod   PaymentMethod `bson:"payment_method" json:"paymentMethod"`
	CompletedVisits int           `bson:"completed_visits" json:"completedVisits"`
	CanceledVisits  int           `bson:"canceled_visits" json:"canceledVisits"`
	UpcomingVisits  int           `bson:"upcoming_visits" json:"upcomingVisits"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	CreatedBy       string        `bson:"created_by" json:"createdBy"`
}

// WeeklyMode selects which weekly generation strategy a rule uses. The
// choice is made once, at rule construction, rather than re-sniffed on
// every pass through the generator.
type WeeklyMode int

const (
	// WeeklyUnconstrained repeats the start date's weekday every 7 days.
	WeeklyUnconstrained WeeklyMode = iota
	// WeeklyPreferredDays cycles through an ordinal weekday list.
	WeeklyPreferredDays
	// WeeklyPerDaySchedule uses a per-weekday visit template.
	WeeklyPerDaySchedule
)

// RecurrenceRule is the input to visit-date generation. It is a plain
// value; generation itself performs no I/O.
type RecurrenceRule struct {
	Frequency           Frequency
	StartDate           time.Time
	BaseTime            string // wall-clock "HH:MM" for the first visit of a day
	NumberOfVisits      int
	VisitsPerDay        int // multiplier for index mode, default 1
	TimeIntervalMinutes int // gap between same-day visits in index mode
	PreferredDays       []int
	DaySchedules        []DaySchedule
}

// Mode classifies a weekly rule into its generation strategy. Only
// meaningful when Frequency is weekly; a per-day schedule wins when at
// least one enabled day carries a non-empty time list.
func (r RecurrenceRule) Mode() WeeklyMode {
	for _, ds := range r.DaySchedules {
		if ds.Enabled && len(ds.VisitTimes) > 0 {
			return WeeklyPerDaySchedule
		}
	}
	if len(r.PreferredDays) > 0 {
		return WeeklyPreferredDays
	}
	return WeeklyUnconstrained
}

// EnabledDaySchedules returns the usable per-day schedules, in weekday order.
func (r RecurrenceRule) EnabledDaySchedules() []DaySchedule {
	var out []DaySchedule
	for _, ds := range r.DaySchedules {
		if ds.Enabled && len(ds.VisitTimes) > 0 {
			out = append(out, ds)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].DayOfWeek < out[j-1].DayOfWeek; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
