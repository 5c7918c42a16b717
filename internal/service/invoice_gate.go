package service

import (
	"context"

	"go.uber.org/zap"

	"freedesk/internal/domain"
	"freedesk/internal/repository"
)

// InvoiceGateImpl reads the invoices table the invoicing module writes to.
type InvoiceGateImpl struct {
	repo   repository.InvoiceRepository
	logger *zap.Logger
}

func NewInvoiceGate(repo repository.InvoiceRepository, logger *zap.Logger) *InvoiceGateImpl {
	return &InvoiceGateImpl{
		repo:   repo,
		logger: logger,
	}
}

func (g *InvoiceGateImpl) HasUnpaidInvoices(ctx context.Context, clientID int64) (bool, error) {
	count, err := g.repo.CountUnpaidByClient(ctx, clientID)
	if err != nil {
		g.logger.Error("ошибка проверки неоплаченных счетов", zap.Int64("clientID", clientID), zap.Error(err))
		return false, domain.NewCollaboratorError("invoices.count", err)
	}
	return count > 0, nil
}

func (g *InvoiceGateImpl) UnpaidInvoices(ctx context.Context, clientID int64) ([]domain.Invoice, error) {
	invoices, err := g.repo.ListUnpaidByClient(ctx, clientID)
	if err != nil {
		g.logger.Error("ошибка получения неоплаченных счетов", zap.Int64("clientID", clientID), zap.Error(err))
		return nil, domain.NewCollaboratorError("invoices.list", err)
	}
	return invoices, nil
}
