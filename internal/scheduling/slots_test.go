package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freedesk/internal/domain"
)

// 2025-03-03 is a Monday.
var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func rule(id int64, day domain.Weekday, start, end domain.Clock, duration int) domain.AvailabilityRule {
	return domain.AvailabilityRule{ID: id, DayOfWeek: day, StartTime: start, EndTime: end, SlotDuration: duration, IsActive: true}
}

func appt(id int64, date time.Time, start, end domain.Clock, status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{ID: id, ClientID: 1, AppointmentDate: date, StartTime: start, EndTime: end, Status: status}
}

func TestComputeSlotsDropsShortTrailingSlot(t *testing.T) {
	slots := ComputeSlots(monday, []domain.AvailabilityRule{rule(1, domain.Monday, 540, 590, 30)}, nil)

	assert.Equal(t, []domain.Slot{{StartTime: 540, Duration: 30, Available: true}}, slots)
}

func TestComputeSlotsMarksCollision(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(1, domain.Monday, 540, 600, 30)}
	appointments := []domain.Appointment{appt(7, monday, 540, 570, domain.AppointmentStatusConfirmed)}

	slots := ComputeSlots(monday, rules, appointments)

	assert.Equal(t, []domain.Slot{
		{StartTime: 540, Duration: 30, Available: false},
		{StartTime: 570, Duration: 30, Available: true},
	}, slots)
}

func TestComputeSlotsIgnoresCancelledAndOtherDates(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(1, domain.Monday, 540, 600, 30)}
	appointments := []domain.Appointment{
		appt(1, monday, 540, 570, domain.AppointmentStatusCancelled),
		appt(2, monday.AddDate(0, 0, 7), 570, 600, domain.AppointmentStatusConfirmed),
	}

	slots := ComputeSlots(monday, rules, appointments)

	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestComputeSlotsFiltersByWeekdayAndActive(t *testing.T) {
	inactive := rule(3, domain.Monday, 600, 660, 60)
	inactive.IsActive = false

	rules := []domain.AvailabilityRule{
		rule(1, domain.Tuesday, 540, 600, 30),
		rule(2, domain.Sunday, 540, 600, 30),
		inactive,
	}

	assert.Empty(t, ComputeSlots(monday, rules, nil))
	assert.Len(t, ComputeSlots(monday.AddDate(0, 0, 1), rules, nil), 2)
	assert.Len(t, ComputeSlots(monday.AddDate(0, 0, 6), rules, nil), 2)
}

func TestComputeSlotsOrderedWithoutDedup(t *testing.T) {
	rules := []domain.AvailabilityRule{
		rule(1, domain.Monday, 840, 900, 30),
		rule(2, domain.Monday, 540, 600, 60),
		rule(3, domain.Monday, 540, 600, 30),
	}

	slots := ComputeSlots(monday, rules, nil)

	starts := make([]domain.Clock, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []domain.Clock{540, 540, 570, 840, 870}, starts)
	// ties keep rule order
	assert.Equal(t, 60, slots[0].Duration)
	assert.Equal(t, 30, slots[1].Duration)
}

func TestComputeSlotsEndOfDay(t *testing.T) {
	slots := ComputeSlots(monday, []domain.AvailabilityRule{rule(1, domain.Monday, 1380, 1440, 30)}, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, domain.Clock(1410), slots[1].StartTime)
	assert.Equal(t, domain.Clock(1440), slots[1].EndTime())
}

func TestComputeSlotsDeterministic(t *testing.T) {
	rules := []domain.AvailabilityRule{
		rule(1, domain.Monday, 540, 720, 45),
		rule(2, domain.Monday, 600, 660, 15),
		rule(3, domain.Monday, 480, 540, 60),
	}
	appointments := []domain.Appointment{
		appt(1, monday, 600, 615, domain.AppointmentStatusPending),
		appt(2, monday, 540, 585, domain.AppointmentStatusConfirmed),
	}

	first := ComputeSlots(monday, rules, appointments)
	second := ComputeSlots(monday, rules, appointments)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestComputeSlotsEmptyInputs(t *testing.T) {
	slots := ComputeSlots(monday, nil, nil)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestSlotDuration(t *testing.T) {
	rules := []domain.AvailabilityRule{
		rule(1, domain.Monday, 540, 600, 30),
		rule(2, domain.Monday, 840, 960, 60),
	}

	d, ok := SlotDuration(monday, 570, rules)
	assert.True(t, ok)
	assert.Equal(t, 30, d)

	d, ok = SlotDuration(monday, 900, rules)
	assert.True(t, ok)
	assert.Equal(t, 60, d)

	_, ok = SlotDuration(monday, 555, rules)
	assert.False(t, ok, "not aligned to the rule grid")

	_, ok = SlotDuration(monday, 960, rules)
	assert.False(t, ok, "end of rule is not a slot start")

	_, ok = SlotDuration(monday.AddDate(0, 0, 1), 540, rules)
	assert.False(t, ok, "wrong weekday")
}

func TestFindConflict(t *testing.T) {
	appointments := []domain.Appointment{
		appt(1, monday, 540, 600, domain.AppointmentStatusConfirmed),
		appt(2, monday, 600, 630, domain.AppointmentStatusCancelled),
	}

	conflict := FindConflict(monday, Interval{Start: 570, End: 600}, appointments)
	require.NotNil(t, conflict)
	assert.Equal(t, int64(1), conflict.ID)

	assert.Nil(t, FindConflict(monday, Interval{Start: 600, End: 630}, appointments), "touching and cancelled")
	assert.Nil(t, FindConflict(monday.AddDate(0, 0, 1), Interval{Start: 540, End: 600}, appointments))
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Start: 540, End: 600}

	assert.True(t, a.Overlaps(Interval{Start: 560, End: 580}))
	assert.True(t, a.Overlaps(Interval{Start: 500, End: 541}))
	assert.False(t, a.Overlaps(Interval{Start: 600, End: 660}))
	assert.False(t, a.Overlaps(Interval{Start: 480, End: 540}))
}

func TestValidateRule(t *testing.T) {
	tests := []struct {
		name  string
		rule  domain.AvailabilityRule
		field string
	}{
		{name: "valid", rule: rule(0, domain.Friday, 540, 720, 45)},
		{name: "bad weekday", rule: rule(0, 7, 540, 600, 30), field: "day_of_week"},
		{name: "start after end", rule: rule(0, domain.Monday, 600, 540, 30), field: "end_time"},
		{name: "start equals end", rule: rule(0, domain.Monday, 600, 600, 30), field: "end_time"},
		{name: "unsupported duration", rule: rule(0, domain.Monday, 540, 600, 20), field: "slot_duration"},
		{name: "no slot fits", rule: rule(0, domain.Monday, 540, 570, 45), field: "slot_duration"},
		{name: "end past midnight", rule: rule(0, domain.Monday, 1380, 1500, 60), field: "end_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRule(tt.rule, nil)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestOverlappingRules(t *testing.T) {
	inactive := rule(4, domain.Monday, 540, 600, 30)
	inactive.IsActive = false
	existing := []domain.AvailabilityRule{
		rule(1, domain.Monday, 480, 560, 30),
		rule(2, domain.Monday, 600, 660, 30),
		rule(3, domain.Tuesday, 540, 600, 30),
		inactive,
	}

	got := OverlappingRules(rule(0, domain.Monday, 540, 600, 30), existing)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}
