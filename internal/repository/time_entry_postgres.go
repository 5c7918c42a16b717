package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"freedesk/internal/domain"
)

type TimeEntryRepo struct {
	db *pgxpool.Pool
}

func NewTimeEntryRepository(db *pgxpool.Pool) *TimeEntryRepo {
	return &TimeEntryRepo{
		db: db,
	}
}

func (r *TimeEntryRepo) Create(ctx context.Context, entry domain.TimeEntry) (int64, error) {
	query := `
		INSERT INTO time_entries (user_id, category, seconds, note, stopped_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		entry.UserID,
		entry.Category,
		entry.Seconds,
		entry.Note,
		entry.StoppedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка сохранения учета времени: %w", err)
	}

	return id, nil
}

func (r *TimeEntryRepo) List(ctx context.Context, filter domain.TimeEntryFilter) ([]domain.TimeEntry, error) {
	query := `SELECT id, user_id, category, seconds, note, stopped_at FROM time_entries`

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argCount))
		args = append(args, *filter.UserID)
		argCount++
	}

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filter.Category)
		argCount++
	}

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("stopped_at >= $%d", argCount))
		args = append(args, *filter.From)
		argCount++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("stopped_at < $%d", argCount))
		args = append(args, *filter.To)
		argCount++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY stopped_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TimeEntry, 0)
	for rows.Next() {
		var entry domain.TimeEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Category,
			&entry.Seconds,
			&entry.Note,
			&entry.StoppedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования учета времени: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return entries, nil
}
