package domain

import (
	"fmt"
	"time"
)

// Weekday numbers days Monday=0 through Sunday=6. Every date to weekday
// conversion must go through WeekdayOf.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func WeekdayOf(date time.Time) Weekday {
	return Weekday((int(date.Weekday()) + 6) % 7)
}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}
