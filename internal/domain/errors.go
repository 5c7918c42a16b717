package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound      = errors.New("не найдено")
	ErrForbidden     = errors.New("доступ запрещен")
	ErrAlreadyExists = errors.New("уже существует")
	// ErrSlotConflict is returned by the appointment store when a write would
	// overlap a non-cancelled appointment.
	ErrSlotConflict = errors.New("пересечение с существующей записью")
)

type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type SlotUnavailableReason string

const (
	SlotReasonTaken       SlotUnavailableReason = "taken"
	SlotReasonPast        SlotUnavailableReason = "past"
	SlotReasonNotOffered  SlotUnavailableReason = "not_offered"
	SlotReasonOverlapping SlotUnavailableReason = "overlapping"
)

type SlotUnavailableError struct {
	Date      time.Time
	StartTime Clock
	Reason    SlotUnavailableReason
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("слот %s %s недоступен (%s)", e.Date.Format(DateLayout), e.StartTime, e.Reason)
}

type PaymentRequiredError struct {
	ClientID int64
	Invoices []Invoice
}

func (e *PaymentRequiredError) Error() string {
	return fmt.Sprintf("у клиента %d есть неоплаченные счета", e.ClientID)
}

type IllegalTransitionError struct {
	AppointmentID int64
	From          AppointmentStatus
	To            AppointmentStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("недопустимый переход записи %d: %s -> %s", e.AppointmentID, e.From, e.To)
}

// CollaboratorError marks a failure of storage, identity or invoicing rather
// than a business refusal.
type CollaboratorError struct {
	Op  string
	Err error
}

func NewCollaboratorError(op string, err error) *CollaboratorError {
	return &CollaboratorError{Op: op, Err: err}
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// RescheduleIncompleteError means the new appointment exists but the old one
// could not be cancelled and still needs manual cancellation.
type RescheduleIncompleteError struct {
	NewAppointment *Appointment
	OldID          int64
	Err            error
}

func (e *RescheduleIncompleteError) Error() string {
	return fmt.Sprintf("новая запись %d создана, но запись %d не отменена: %v", e.NewAppointment.ID, e.OldID, e.Err)
}

func (e *RescheduleIncompleteError) Unwrap() error {
	return e.Err
}
