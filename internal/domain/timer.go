package domain

import (
	"time"
)

type TimerState string

const (
	TimerRunning TimerState = "running"
	TimerPaused  TimerState = "paused"
)

// TimerSession tracks work time for one category. Accumulated holds the time
// banked by previous pauses; the running stretch since StartedAt is added on read.
type TimerSession struct {
	Category    string        `json:"category"`
	State       TimerState    `json:"state"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	Accumulated time.Duration `json:"-"`
	Elapsed     int64         `json:"elapsed_seconds"`
}

type TimeEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Category  string    `json:"category"`
	Seconds   int64     `json:"seconds"`
	Note      *string   `json:"note,omitempty"`
	StoppedAt time.Time `json:"stopped_at"`
}

type StopTimerDTO struct {
	Note *string `json:"note"`
}

type TimeEntryFilter struct {
	UserID   *int64     `json:"user_id"`
	Category *string    `json:"category"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}
