package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"freedesk/internal/domain"
)

// PgxIface is the part of *pgxpool.Pool the appointment store needs.
type PgxIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repositories struct {
	User         UserRepository
	Client       ClientRepository
	Auth         AuthRepository
	Availability AvailabilityRuleRepository
	Appointment  AppointmentRepository
	Invoice      InvoiceRepository
	TimeEntry    TimeEntryRepository
}

// NewRepositories wires the pgx-backed stores. sqlDB is the same pool seen
// through database/sql and serves the read-only invoice queries.
func NewRepositories(db *pgxpool.Pool, sqlDB *sql.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Client:       NewClientRepository(db),
		Auth:         NewAuthRepository(db),
		Availability: NewAvailabilityRepository(db),
		Appointment:  NewAppointmentRepository(db),
		Invoice:      NewInvoiceRepository(sqlDB),
		TimeEntry:    NewTimeEntryRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	// CreateClientAccount inserts a client user together with its client record.
	CreateClientAccount(ctx context.Context, user domain.CreateUserDTO, client domain.CreateClientDTO) (int64, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Client, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type AvailabilityRuleRepository interface {
	Create(ctx context.Context, rule domain.AvailabilityRule) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	SetActive(ctx context.Context, id int64, isActive bool) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AvailabilityRuleFilter) ([]domain.AvailabilityRule, error)
}

type AppointmentRepository interface {
	// Create inserts a non-cancelled appointment and returns domain.ErrSlotConflict
	// when its interval overlaps another non-cancelled appointment on that date.
	Create(ctx context.Context, appointment domain.Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// TransitionStatus moves the appointment to `to` only if its current status
	// is one of `from`. It reports whether a row changed.
	TransitionStatus(ctx context.Context, id int64, from []domain.AppointmentStatus, to domain.AppointmentStatus) (bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
}

type InvoiceRepository interface {
	ListUnpaidByClient(ctx context.Context, clientID int64) ([]domain.Invoice, error)
	CountUnpaidByClient(ctx context.Context, clientID int64) (int, error)
}

type TimeEntryRepository interface {
	Create(ctx context.Context, entry domain.TimeEntry) (int64, error)
	List(ctx context.Context, filter domain.TimeEntryFilter) ([]domain.TimeEntry, error)
}
