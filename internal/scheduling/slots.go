package scheduling

import (
	"sort"
	"time"

	"freedesk/internal/domain"
)

// Interval is a half-open [Start, End) range of minutes on one date.
type Interval struct {
	Start domain.Clock
	End   domain.Clock
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// ComputeSlots returns the bookable slots of date generated by the active rules
// for that weekday. A slot is marked unavailable when a non-cancelled
// appointment on date starts at exactly the same minute. Slots are ordered by
// start time; ties keep rule order and are not deduplicated.
//
// All rules may be passed in; filtering by weekday happens here.
func ComputeSlots(date time.Time, rules []domain.AvailabilityRule, appointments []domain.Appointment) []domain.Slot {
	weekday := domain.WeekdayOf(date)

	taken := make(map[domain.Clock]bool)
	for _, a := range appointments {
		if !a.Active() || !domain.SameDate(a.AppointmentDate, date) {
			continue
		}
		taken[a.StartTime] = true
	}

	slots := make([]domain.Slot, 0)
	for _, rule := range rules {
		if !rule.IsActive || rule.DayOfWeek != weekday {
			continue
		}
		for _, start := range candidates(rule) {
			slots = append(slots, domain.Slot{
				StartTime: start,
				Duration:  rule.SlotDuration,
				Available: !taken[start],
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})

	return slots
}

// SlotDuration reports the duration of the first active rule for date's
// weekday that generates a slot starting at start.
func SlotDuration(date time.Time, start domain.Clock, rules []domain.AvailabilityRule) (int, bool) {
	weekday := domain.WeekdayOf(date)
	for _, rule := range rules {
		if !rule.IsActive || rule.DayOfWeek != weekday {
			continue
		}
		for _, candidate := range candidates(rule) {
			if candidate == start {
				return rule.SlotDuration, true
			}
			if candidate > start {
				break
			}
		}
	}
	return 0, false
}

// FindConflict returns the first non-cancelled appointment on date whose
// interval overlaps want.
func FindConflict(date time.Time, want Interval, appointments []domain.Appointment) *domain.Appointment {
	for i := range appointments {
		a := &appointments[i]
		if !a.Active() || !domain.SameDate(a.AppointmentDate, date) {
			continue
		}
		if want.Overlaps(Interval{Start: a.StartTime, End: a.EndTime}) {
			return a
		}
	}
	return nil
}

func candidates(rule domain.AvailabilityRule) []domain.Clock {
	if rule.SlotDuration <= 0 || rule.StartTime >= rule.EndTime {
		return nil
	}
	var out []domain.Clock
	for t := rule.StartTime; t.Add(rule.SlotDuration) <= rule.EndTime; t = t.Add(rule.SlotDuration) {
		out = append(out, t)
	}
	return out
}
