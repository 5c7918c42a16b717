package domain

import (
	"encoding/json"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled:
		return true
	}
	return false
}

type MeetingType string

const (
	MeetingTypeRemote   MeetingType = "remote"
	MeetingTypeInPerson MeetingType = "in-person"
)

func (m MeetingType) Valid() bool {
	return m == MeetingTypeRemote || m == MeetingTypeInPerson
}

type Appointment struct {
	ID              int64             `json:"id"`
	ClientID        int64             `json:"client_id"`
	AppointmentDate time.Time         `json:"appointment_date" swaggertype:"string" example:"2025-03-03"`
	StartTime       Clock             `json:"start_time" swaggertype:"string" example:"09:00"`
	EndTime         Clock             `json:"end_time" swaggertype:"string" example:"09:30"`
	Status          AppointmentStatus `json:"status"`
	MeetingType     MeetingType       `json:"meeting_type"`
	Notes           *string           `json:"notes,omitempty"`
	RescheduledFrom *int64            `json:"rescheduled_from,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	ClientName      string            `json:"client_name,omitempty"`
}

// MarshalJSON writes appointment_date as a calendar date without time or zone.
func (a Appointment) MarshalJSON() ([]byte, error) {
	type plain Appointment
	return json.Marshal(struct {
		plain
		AppointmentDate string `json:"appointment_date"`
	}{plain: plain(a), AppointmentDate: a.AppointmentDate.Format(DateLayout)})
}

func (a Appointment) Active() bool {
	return a.Status != AppointmentStatusCancelled
}

// BookingRequestDTO is what a client sends; the client is always taken from
// the authenticated identity.
type BookingRequestDTO struct {
	Date        string      `json:"date" binding:"required" example:"2025-03-03"`
	StartTime   string      `json:"start_time" binding:"required" example:"09:00"`
	MeetingType MeetingType `json:"meeting_type" binding:"required,oneof=remote in-person"`
	Notes       *string     `json:"notes"`
}

// FreelancerBookingDTO books a slot on behalf of a client from the freelancer portal.
type FreelancerBookingDTO struct {
	ClientID    int64       `json:"client_id" binding:"required"`
	Date        string      `json:"date" binding:"required" example:"2025-03-03"`
	StartTime   string      `json:"start_time" binding:"required" example:"09:00"`
	MeetingType MeetingType `json:"meeting_type" binding:"required,oneof=remote in-person"`
	Notes       *string     `json:"notes"`
}

type RescheduleDTO struct {
	Date        string       `json:"date" binding:"required" example:"2025-03-04"`
	StartTime   string       `json:"start_time" binding:"required" example:"10:00"`
	MeetingType *MeetingType `json:"meeting_type" binding:"omitempty,oneof=remote in-person"`
	Notes       *string      `json:"notes"`
}

type RescheduleResult struct {
	Appointment  *Appointment `json:"appointment"`
	OldID        int64        `json:"old_id"`
	OldCancelled bool         `json:"old_cancelled"`
}

type AppointmentFilter struct {
	ClientID      *int64             `json:"client_id"`
	Status        *AppointmentStatus `json:"status"`
	ExcludeStatus *AppointmentStatus `json:"exclude_status"`
	StartDate     *time.Time         `json:"start_date"`
	EndDate       *time.Time         `json:"end_date"`
	Limit         int                `json:"limit"`
	Offset        int                `json:"offset"`
}

// Slot is derived from availability rules on every request and never stored.
type Slot struct {
	StartTime Clock `json:"start_time" swaggertype:"string" example:"09:00"`
	Duration  int   `json:"duration"`
	Available bool  `json:"available"`
}

func (s Slot) EndTime() Clock {
	return s.StartTime.Add(s.Duration)
}
