package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freedesk/internal/domain"
)

type ClientRepo struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{
		db: db,
	}
}

const clientColumns = `id, user_id, name, email, company, stripe_customer_id, created_at`

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("клиент %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения клиента: %w", err)
	}

	return client, nil
}

func (r *ClientRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Client, error) {
	client, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("клиент пользователя %d: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения клиента: %w", err)
	}

	return client, nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	err := row.Scan(
		&client.ID,
		&client.UserID,
		&client.Name,
		&client.Email,
		&client.Company,
		&client.StripeCustomerID,
		&client.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}
