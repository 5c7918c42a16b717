package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freedesk/internal/domain"
)

type AvailabilityRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) *AvailabilityRepo {
	return &AvailabilityRepo{
		db: db,
	}
}

const availabilityColumns = `id, day_of_week, start_minute, end_minute, slot_duration, is_active, created_at, updated_at`

func (r *AvailabilityRepo) Create(ctx context.Context, rule domain.AvailabilityRule) (int64, error) {
	query := `
		INSERT INTO availability_rules (day_of_week, start_minute, end_minute, slot_duration, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		int(rule.DayOfWeek),
		int(rule.StartTime),
		int(rule.EndTime),
		rule.SlotDuration,
		rule.IsActive,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания правила доступности: %w", err)
	}

	return id, nil
}

func (r *AvailabilityRepo) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availability_rules WHERE id = $1`

	rule, err := scanAvailabilityRule(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("правило доступности %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения правила доступности: %w", err)
	}

	return rule, nil
}

func (r *AvailabilityRepo) SetActive(ctx context.Context, id int64, isActive bool) error {
	query := `UPDATE availability_rules SET is_active = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, isActive, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления правила доступности: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("правило доступности %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *AvailabilityRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM availability_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления правила доступности: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("правило доступности %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *AvailabilityRepo) List(ctx context.Context, filter domain.AvailabilityRuleFilter) ([]domain.AvailabilityRule, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availability_rules`

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.DayOfWeek != nil {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", argCount))
		args = append(args, int(*filter.DayOfWeek))
		argCount++
	}

	if filter.ActiveOnly {
		conditions = append(conditions, "is_active")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY day_of_week, start_minute, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.AvailabilityRule, 0)
	for rows.Next() {
		rule, err := scanAvailabilityRule(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования правила доступности: %w", err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return rules, nil
}

func scanAvailabilityRule(row pgx.Row) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var day, start, end int

	err := row.Scan(
		&rule.ID,
		&day,
		&start,
		&end,
		&rule.SlotDuration,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.DayOfWeek = domain.Weekday(day)
	rule.StartTime = domain.Clock(start)
	rule.EndTime = domain.Clock(end)

	return &rule, nil
}
