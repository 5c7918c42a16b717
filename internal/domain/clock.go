package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	DateLayout = "2006-01-02"

	MinutesPerDay = 24 * 60
)

// Clock is a wall-clock time of day in minutes since midnight. 1440 is only
// meaningful as an exclusive end bound ("24:00").
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func ParseClock(value string) (Clock, error) {
	if len(value) != 5 || value[2] != ':' || !isDigits(value[:2]) || !isDigits(value[3:]) {
		return 0, fmt.Errorf("неверный формат времени %q, ожидается HH:MM", value)
	}
	hour, _ := strconv.Atoi(value[:2])
	minute, _ := strconv.Atoi(value[3:])
	if minute < 0 || minute > 59 || hour < 0 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("время %q вне диапазона", value)
	}
	return NewClock(hour, minute), nil
}

func (c Clock) Hour() int {
	return int(c) / 60
}

func (c Clock) Minute() int {
	return int(c) % 60
}

func (c Clock) Valid() bool {
	return c >= 0 && c <= MinutesPerDay
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On places the clock on the given calendar date in loc.
func (c Clock) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, loc)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var minutes int
		if err := json.Unmarshal(data, &minutes); err != nil {
			return fmt.Errorf("неверный формат времени: %s", string(data))
		}
		*c = Clock(minutes)
		return nil
	}

	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

// ParseDate reads a calendar date and returns it at midnight UTC so that
// dates compare with Equal regardless of the server zone.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный формат даты %q, ожидается YYYY-MM-DD", value)
	}
	return date, nil
}

func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
