package scheduling

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"pawfolio/models"
)

// defaultVisitInterval spaces same-day visits when a rule carries more
// than one visit per day but no explicit interval.
const defaultVisitInterval = 60

// GenerateVisitDates expands a recurrence rule into the full ordered
// sequence of visit instants. It is deterministic, performs no I/O, and
// fails only on malformed input: a rule that cannot yield the requested
// visit count produces an InvalidRuleError rather than a short result.
func GenerateVisitDates(rule models.RecurrenceRule) ([]time.Time, error) {
	if err := validateRule(rule); err != nil {
		return nil, err
	}

	var visits []time.Time
	if rule.Frequency == models.FrequencyWeekly && rule.Mode() == models.WeeklyPerDaySchedule {
		visits = generatePerDaySchedule(rule)
	}
	// A per-day template with no usable time entries yields nothing;
	// fall through to index mode instead of returning an empty series.
	if len(visits) == 0 {
		visits = generateIndexed(rule)
	}

	sort.Slice(visits, func(i, j int) bool { return visits[i].Before(visits[j]) })

	if len(visits) != rule.NumberOfVisits {
		return nil, InvalidRuleError{
			Reason:    "rule cannot produce the requested visit count",
			Requested: rule.NumberOfVisits,
			Generated: len(visits),
		}
	}
	return visits, nil
}

func validateRule(rule models.RecurrenceRule) error {
	if rule.NumberOfVisits <= 0 {
		return InvalidRuleError{Reason: fmt.Sprintf("numberOfVisits must be positive, got %d", rule.NumberOfVisits)}
	}
	if !rule.Frequency.Valid() {
		return InvalidRuleError{Reason: fmt.Sprintf("unsupported frequency %q", rule.Frequency)}
	}
	if rule.StartDate.IsZero() {
		return InvalidRuleError{Reason: "start date is required"}
	}
	if rule.BaseTime != "" {
		if _, _, err := parseClock(rule.BaseTime); err != nil {
			return InvalidRuleError{Reason: fmt.Sprintf("bad base time %q: %v", rule.BaseTime, err)}
		}
	}
	for _, ds := range rule.DaySchedules {
		if !ds.Enabled {
			continue
		}
		if ds.DayOfWeek < 0 || ds.DayOfWeek > 6 {
			return InvalidRuleError{Reason: fmt.Sprintf("day schedule weekday %d out of range", ds.DayOfWeek)}
		}
		if ds.NumberOfVisits > 0 && len(ds.VisitTimes) != ds.NumberOfVisits {
			return InvalidRuleError{Reason: fmt.Sprintf(
				"day schedule for weekday %d declares %d visits but lists %d times",
				ds.DayOfWeek, ds.NumberOfVisits, len(ds.VisitTimes))}
		}
		for _, vt := range ds.VisitTimes {
			if _, _, err := parseClock(vt); err != nil {
				return InvalidRuleError{Reason: fmt.Sprintf("bad visit time %q: %v", vt, err)}
			}
		}
	}
	for _, d := range rule.PreferredDays {
		switch rule.Frequency {
		case models.FrequencyWeekly:
			if d < 0 || d > 6 {
				return InvalidRuleError{Reason: fmt.Sprintf("preferred weekday %d out of range", d)}
			}
		case models.FrequencyMonthly:
			if d < 1 || d > 31 {
				return InvalidRuleError{Reason: fmt.Sprintf("preferred day-of-month %d out of range", d)}
			}
		}
	}
	return nil
}

// generatePerDaySchedule treats the enabled weekdays as a weekly
// template and walks it week by week until the visit count is reached.
func generatePerDaySchedule(rule models.RecurrenceRule) []time.Time {
	days := rule.EnabledDaySchedules()
	visitsPerWeek := 0
	for _, ds := range days {
		visitsPerWeek += len(ds.VisitTimes)
	}
	if visitsPerWeek == 0 {
		return nil
	}

	n := rule.NumberOfVisits
	// Runaway guard: one spare week beyond the arithmetic minimum.
	maxWeeks := (n+visitsPerWeek-1)/visitsPerWeek + 1

	visits := make([]time.Time, 0, n)
	for week := 0; week < maxWeeks && len(visits) < n; week++ {
		weekAnchor := rule.StartDate.AddDate(0, 0, 7*week)
		for _, ds := range days {
			if len(visits) >= n {
				break
			}
			target := nextWeekday(weekAnchor, time.Weekday(ds.DayOfWeek))
			for _, vt := range ds.VisitTimes {
				if len(visits) >= n {
					break
				}
				hour, minute, _ := parseClock(vt)
				visits = append(visits, atClock(target, hour, minute))
			}
		}
	}
	return visits
}

// generateIndexed handles daily and monthly rules, and weekly rules
// without a usable per-day template. Visit dayIndex → target date is a
// pure function of the frequency and the preferred-day list.
func generateIndexed(rule models.RecurrenceRule) []time.Time {
	n := rule.NumberOfVisits
	visitsPerDay := rule.VisitsPerDay
	if visitsPerDay <= 0 {
		visitsPerDay = 1
	}
	interval := rule.TimeIntervalMinutes
	if interval <= 0 {
		interval = defaultVisitInterval
	}

	baseHour, baseMinute := rule.StartDate.Hour(), rule.StartDate.Minute()
	if rule.BaseTime != "" {
		baseHour, baseMinute, _ = parseClock(rule.BaseTime)
	}

	uniqueDays := (n + visitsPerDay - 1) / visitsPerDay
	visits := make([]time.Time, 0, n)

	for dayIndex := 0; dayIndex < uniqueDays && len(visits) < n; dayIndex++ {
		var target time.Time
		switch rule.Frequency {
		case models.FrequencyDaily:
			target = rule.StartDate.AddDate(0, 0, dayIndex)
		case models.FrequencyWeekly:
			if k := len(rule.PreferredDays); k > 0 {
				weekOffset := dayIndex / k
				weekday := rule.PreferredDays[dayIndex%k]
				target = nextWeekday(rule.StartDate.AddDate(0, 0, 7*weekOffset), time.Weekday(weekday))
			} else {
				target = rule.StartDate.AddDate(0, 0, 7*dayIndex)
			}
		case models.FrequencyMonthly:
			if k := len(rule.PreferredDays); k > 0 {
				target = monthShift(rule.StartDate, dayIndex/k, rule.PreferredDays[dayIndex%k])
			} else {
				target = monthShift(rule.StartDate, dayIndex, rule.StartDate.Day())
			}
		}

		for v := 0; v < visitsPerDay && len(visits) < n; v++ {
			// Minute overflow rolls into the hour via normalization.
			visits = append(visits, time.Date(
				target.Year(), target.Month(), target.Day(),
				baseHour, baseMinute+v*interval, 0, 0, rule.StartDate.Location()))
		}
	}
	return visits
}

// nextWeekday returns the first occurrence of weekday on or after t.
func nextWeekday(t time.Time, weekday time.Weekday) time.Time {
	delta := (int(weekday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, delta)
}

// monthShift moves t forward by the given number of calendar months and
// substitutes the day-of-month, clamped to the target month's last day.
// The clamp means a "31st of every month" rule lands on the 30th (or
// 28th/29th) in shorter months instead of skipping or overflowing.
func monthShift(t time.Time, months, dayOfMonth int) time.Time {
	anchor := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := time.Date(anchor.Year(), anchor.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if dayOfMonth > lastDay {
		dayOfMonth = lastDay
	}
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	return time.Date(anchor.Year(), anchor.Month(), dayOfMonth, t.Hour(), t.Minute(), 0, 0, t.Location())
}

// atClock pins a wall-clock time onto a date.
func atClock(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

// parseClock parses a wall-clock "HH:MM" string.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour %q", parts[0])
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute %q", parts[1])
	}
	return hour, minute, nil
}
