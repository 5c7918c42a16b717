package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"freedesk/internal/domain"
	"freedesk/internal/repository"
)

// StripeGate looks up unpaid invoices in Stripe for clients that have a
// Stripe customer. Open invoices count as sent, or overdue once past due.
type StripeGate struct {
	api     *client.API
	clients repository.ClientRepository
	now     func() time.Time
	logger  *zap.Logger
}

func NewStripeGate(secretKey string, clients repository.ClientRepository, logger *zap.Logger) (*StripeGate, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("STRIPE_SECRET_KEY не задан")
	}
	return newStripeGate(client.New(secretKey, nil), clients, logger), nil
}

func newStripeGate(api *client.API, clients repository.ClientRepository, logger *zap.Logger) *StripeGate {
	return &StripeGate{
		api:     api,
		clients: clients,
		now:     time.Now,
		logger:  logger,
	}
}

func (g *StripeGate) HasUnpaidInvoices(ctx context.Context, clientID int64) (bool, error) {
	invoices, err := g.openInvoices(ctx, clientID, 1)
	if err != nil {
		return false, err
	}
	return len(invoices) > 0, nil
}

func (g *StripeGate) UnpaidInvoices(ctx context.Context, clientID int64) ([]domain.Invoice, error) {
	return g.openInvoices(ctx, clientID, 0)
}

func (g *StripeGate) openInvoices(ctx context.Context, clientID int64, limit int64) ([]domain.Invoice, error) {
	customerID, err := g.customerID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0)
	if customerID == "" {
		return invoices, nil
	}

	params := &stripe.InvoiceListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.InvoiceStatusOpen)),
	}
	params.Context = ctx
	if limit > 0 {
		params.Limit = stripe.Int64(limit)
		params.Single = true
	}

	iter := g.api.Invoices.List(params)
	for iter.Next() {
		invoices = append(invoices, g.toDomain(clientID, iter.Invoice()))
		if limit > 0 && int64(len(invoices)) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		g.logger.Error("ошибка запроса счетов Stripe", zap.Int64("clientID", clientID), zap.Error(err))
		return nil, domain.NewCollaboratorError("stripe.invoices", err)
	}

	return invoices, nil
}

func (g *StripeGate) customerID(ctx context.Context, clientID int64) (string, error) {
	c, err := g.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("клиент %d: %w", clientID, domain.ErrNotFound)
		}
		g.logger.Error("ошибка получения клиента", zap.Int64("clientID", clientID), zap.Error(err))
		return "", domain.NewCollaboratorError("clients.get", err)
	}

	if c.StripeCustomerID == nil || *c.StripeCustomerID == "" {
		g.logger.Debug("у клиента нет Stripe customer", zap.Int64("clientID", clientID))
		return "", nil
	}

	return *c.StripeCustomerID, nil
}

func (g *StripeGate) toDomain(clientID int64, inv *stripe.Invoice) domain.Invoice {
	invoice := domain.Invoice{
		ID:          inv.ID,
		ClientID:    clientID,
		Number:      inv.Number,
		Status:      domain.InvoiceStatusSent,
		AmountCents: inv.AmountDue,
		Currency:    strings.ToUpper(string(inv.Currency)),
		IssuedAt:    time.Unix(inv.Created, 0).UTC(),
	}

	if inv.DueDate > 0 {
		due := time.Unix(inv.DueDate, 0).UTC()
		invoice.DueDate = &due
		if due.Before(g.now()) {
			invoice.Status = domain.InvoiceStatusOverdue
		}
	}

	return invoice
}
