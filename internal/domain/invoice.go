package domain

import (
	"time"
)

type InvoiceStatus string

// Statuses are stored as the invoicing module writes them.
const (
	InvoiceStatusDraft     InvoiceStatus = "Brouillon"
	InvoiceStatusSent      InvoiceStatus = "Envoyée"
	InvoiceStatusOverdue   InvoiceStatus = "En retard"
	InvoiceStatusPaid      InvoiceStatus = "Payée"
	InvoiceStatusCancelled InvoiceStatus = "Annulée"
)

// AwaitingPaymentStatuses are the non-final statuses that block new bookings.
var AwaitingPaymentStatuses = []InvoiceStatus{InvoiceStatusSent, InvoiceStatusOverdue}

func (s InvoiceStatus) AwaitingPayment() bool {
	for _, status := range AwaitingPaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Invoice struct {
	ID          string        `json:"id"`
	ClientID    int64         `json:"client_id"`
	Number      string        `json:"number"`
	Status      InvoiceStatus `json:"status"`
	AmountCents int64         `json:"amount_cents"`
	Currency    string        `json:"currency"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	IssuedAt    time.Time     `json:"issued_at"`
}
