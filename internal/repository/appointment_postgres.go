package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"freedesk/internal/domain"
	"freedesk/pkg/database"
)

type AppointmentRepo struct {
	db PgxIface
}

func NewAppointmentRepository(db PgxIface) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

const appointmentSelect = `
	SELECT a.id, a.client_id, a.appointment_date, a.start_minute, a.end_minute, a.status, a.meeting_type,
	       a.notes, a.rescheduled_from, a.created_at, a.updated_at, c.name
	FROM appointments a
	JOIN clients c ON a.client_id = c.id
`

// Create serialises writers per date with an advisory lock, re-checks interval
// overlap and inserts. The appointments_no_overlap exclusion constraint backs
// the check up if another writer bypasses the lock.
func (r *AppointmentRepo) Create(ctx context.Context, appointment domain.Appointment) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	date := appointment.AppointmentDate.Format(domain.DateLayout)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('appointments:' || $1))`, date); err != nil {
		return 0, fmt.Errorf("ошибка блокировки даты: %w", err)
	}

	checkQuery := `
		SELECT COUNT(*)
		FROM appointments
		WHERE appointment_date = $1
		AND status != 'cancelled'
		AND start_minute < $3
		AND $2 < end_minute
	`

	var count int
	err = tx.QueryRow(ctx, checkQuery, date, int(appointment.StartTime), int(appointment.EndTime)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки доступности слота: %w", err)
	}

	if count > 0 {
		return 0, domain.ErrSlotConflict
	}

	query := `
		INSERT INTO appointments (client_id, appointment_date, start_minute, end_minute, status, meeting_type, notes, rescheduled_from, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	var id int64
	err = tx.QueryRow(ctx, query,
		appointment.ClientID,
		date,
		int(appointment.StartTime),
		int(appointment.EndTime),
		appointment.Status,
		appointment.MeetingType,
		appointment.Notes,
		appointment.RescheduledFrom,
		time.Now(),
	).Scan(&id)
	if err != nil {
		if database.IsExclusionViolation(err) {
			return 0, domain.ErrSlotConflict
		}
		return 0, fmt.Errorf("ошибка создания записи: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		if database.IsExclusionViolation(err) {
			return 0, domain.ErrSlotConflict
		}
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := appointmentSelect + ` WHERE a.id = $1`

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("запись %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) TransitionStatus(ctx context.Context, id int64, from []domain.AppointmentStatus, to domain.AppointmentStatus) (bool, error) {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = ANY($4)
	`

	statuses := make([]string, 0, len(from))
	for _, s := range from {
		statuses = append(statuses, string(s))
	}

	tag, err := r.db.Exec(ctx, query, to, time.Now(), id, statuses)
	if err != nil {
		return false, fmt.Errorf("ошибка обновления статуса записи: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *AppointmentRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.appointment_date = $1 AND a.status != 'cancelled'
		ORDER BY a.start_minute, a.id
	`

	rows, err := r.db.Query(ctx, query, date.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей на дату: %w", err)
	}

	return collectAppointments(rows)
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	where, args := appointmentConditions(filter)

	query := appointmentSelect + where + " ORDER BY a.appointment_date DESC, a.start_minute DESC"

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

	return collectAppointments(rows)
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	where, args := appointmentConditions(filter)

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointments a`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета записей: %w", err)
	}

	return count, nil
}

func appointmentConditions(filter domain.AppointmentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("a.client_id = $%d", argCount))
		args = append(args, *filter.ClientID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.ExcludeStatus != nil {
		conditions = append(conditions, fmt.Sprintf("a.status != $%d", argCount))
		args = append(args, *filter.ExcludeStatus)
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date >= $%d", argCount))
		args = append(args, filter.StartDate.Format(domain.DateLayout))
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date <= $%d", argCount))
		args = append(args, filter.EndDate.Format(domain.DateLayout))
		argCount++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func collectAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return appointments, nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var start, end int

	err := row.Scan(
		&appointment.ID,
		&appointment.ClientID,
		&appointment.AppointmentDate,
		&start,
		&end,
		&appointment.Status,
		&appointment.MeetingType,
		&appointment.Notes,
		&appointment.RescheduledFrom,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&appointment.ClientName,
	)
	if err != nil {
		return nil, err
	}

	appointment.StartTime = domain.Clock(start)
	appointment.EndTime = domain.Clock(end)

	return &appointment, nil
}
