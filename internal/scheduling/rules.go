package scheduling

import (
	"fmt"
	"slices"

	"freedesk/internal/domain"
)

var DefaultSlotDurations = []int{15, 30, 45, 60}

// ValidateRule checks a rule before it is persisted.
func ValidateRule(rule domain.AvailabilityRule, durations []int) error {
	if len(durations) == 0 {
		durations = DefaultSlotDurations
	}

	if !rule.DayOfWeek.Valid() {
		return domain.NewValidationError("day_of_week", "день недели должен быть от 0 (понедельник) до 6 (воскресенье)")
	}
	if rule.StartTime < 0 || rule.StartTime >= domain.MinutesPerDay {
		return domain.NewValidationError("start_time", "время начала вне диапазона суток")
	}
	if !rule.EndTime.Valid() {
		return domain.NewValidationError("end_time", "время окончания вне диапазона суток")
	}
	if rule.StartTime >= rule.EndTime {
		return domain.NewValidationError("end_time", "время начала должно быть раньше времени окончания")
	}
	if !slices.Contains(durations, rule.SlotDuration) {
		return domain.NewValidationError("slot_duration", fmt.Sprintf("недопустимая длительность слота %d, разрешено: %v", rule.SlotDuration, durations))
	}
	if rule.StartTime.Add(rule.SlotDuration) > rule.EndTime {
		return domain.NewValidationError("slot_duration", "в интервал не помещается ни одного слота")
	}
	return nil
}

// OverlappingRules returns the active rules on the same weekday whose time
// range intersects rule. Overlaps are allowed but produce duplicate slots.
func OverlappingRules(rule domain.AvailabilityRule, existing []domain.AvailabilityRule) []domain.AvailabilityRule {
	var out []domain.AvailabilityRule
	want := Interval{Start: rule.StartTime, End: rule.EndTime}
	for _, other := range existing {
		if other.ID == rule.ID || !other.IsActive || other.DayOfWeek != rule.DayOfWeek {
			continue
		}
		if want.Overlaps(Interval{Start: other.StartTime, End: other.EndTime}) {
			out = append(out, other)
		}
	}
	return out
}
