package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"freedesk/internal/domain"
)

// InvoiceRepo reads invoices owned by the invoicing module through database/sql.
type InvoiceRepo struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepo {
	return &InvoiceRepo{
		db: db,
	}
}

func (r *InvoiceRepo) ListUnpaidByClient(ctx context.Context, clientID int64) ([]domain.Invoice, error) {
	statusClause, args := unpaidStatusClause(clientID)

	query := `
		SELECT id, client_id, number, status, amount_cents, currency, due_date, issued_at
		FROM invoices
		WHERE client_id = $1 AND ` + statusClause + `
		ORDER BY issued_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения неоплаченных счетов: %w", err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		var invoice domain.Invoice
		var dueDate sql.NullTime
		var status string

		if err := rows.Scan(
			&invoice.ID,
			&invoice.ClientID,
			&invoice.Number,
			&status,
			&invoice.AmountCents,
			&invoice.Currency,
			&dueDate,
			&invoice.IssuedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования счета: %w", err)
		}

		invoice.Status = domain.InvoiceStatus(status)
		if dueDate.Valid {
			invoice.DueDate = &dueDate.Time
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return invoices, nil
}

func (r *InvoiceRepo) CountUnpaidByClient(ctx context.Context, clientID int64) (int, error) {
	statusClause, args := unpaidStatusClause(clientID)

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices WHERE client_id = $1 AND `+statusClause, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета неоплаченных счетов: %w", err)
	}

	return count, nil
}

func unpaidStatusClause(clientID int64) (string, []interface{}) {
	args := []interface{}{clientID}
	placeholders := make([]string, 0, len(domain.AwaitingPaymentStatuses))
	for i, status := range domain.AwaitingPaymentStatuses {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, string(status))
	}
	return "status IN (" + strings.Join(placeholders, ", ") + ")", args
}
