package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freedesk/internal/domain"
	"freedesk/pkg/database"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

const userColumns = `id, first_name, last_name, email, password_hash, role, is_active, created_at, updated_at`

func (r *UserRepo) Create(ctx context.Context, user domain.CreateUserDTO) (int64, error) {
	now := time.Now()

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
		RETURNING id
	`,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		now,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, fmt.Errorf("пользователь %s: %w", user.Email, domain.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return id, nil
}

func (r *UserRepo) CreateClientAccount(ctx context.Context, user domain.CreateUserDTO, client domain.CreateClientDTO) (int64, int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	var userID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
		RETURNING id
	`,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		now,
	).Scan(&userID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, 0, fmt.Errorf("пользователь %s: %w", user.Email, domain.ErrAlreadyExists)
		}
		return 0, 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	var clientID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO clients (user_id, name, email, company, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		userID,
		client.Name,
		client.Email,
		client.Company,
		now,
	).Scan(&clientID)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка создания клиента: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("ошибка коммита транзакции: %w", err)
	}

	return userID, clientID, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с id %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с email %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
