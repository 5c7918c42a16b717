package domain

import (
	"time"
)

type AppointmentEventType string

const (
	EventAppointmentRequested   AppointmentEventType = "appointment.requested"
	EventAppointmentBooked      AppointmentEventType = "appointment.booked"
	EventAppointmentConfirmed   AppointmentEventType = "appointment.confirmed"
	EventAppointmentCancelled   AppointmentEventType = "appointment.cancelled"
	EventAppointmentRescheduled AppointmentEventType = "appointment.rescheduled"
)

type AppointmentEvent struct {
	ID            string               `json:"event_id"`
	Type          AppointmentEventType `json:"event_type"`
	AppointmentID int64                `json:"appointment_id"`
	ClientID      int64                `json:"client_id"`
	Date          string               `json:"date"`
	StartTime     Clock                `json:"start_time"`
	EndTime       Clock                `json:"end_time"`
	Status        AppointmentStatus    `json:"status"`
	PreviousID    *int64               `json:"previous_id,omitempty"`
	OccurredAt    time.Time            `json:"occurred_at"`
}
