package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"freedesk/config"
	"freedesk/internal/domain"
	"freedesk/internal/events"
	"freedesk/internal/repository"
	"freedesk/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Events      events.Publisher
	// InvoiceGate overrides the Postgres-backed gate, e.g. with the Stripe one.
	InvoiceGate InvoiceGate
	Now         func() time.Time
}

type Services struct {
	Auth         AuthService
	Identity     IdentityService
	Availability AvailabilityService
	Booking      BookingService
	Invoices     InvoiceGate
	Timer        TimerService
	Export       ExportService
}

func NewServices(deps Deps) *Services {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	publisher := deps.Events
	if publisher == nil {
		publisher = events.Noop{}
	}

	gate := deps.InvoiceGate
	if gate == nil {
		gate = NewInvoiceGate(deps.Repos.Invoice, deps.Logger)
	}

	return &Services{
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Identity:     NewIdentityService(deps.Repos.User, deps.Repos.Client, deps.Logger),
		Availability: NewAvailabilityService(deps.Repos.Availability, deps.Config.Booking.SlotDurations, deps.Logger),
		Booking: NewBookingService(BookingDeps{
			Rules:                  deps.Repos.Availability,
			Appointments:           deps.Repos.Appointment,
			Clients:                deps.Repos.Client,
			Gate:                   gate,
			Events:                 publisher,
			Location:               deps.Config.Location(),
			GateFreelancerBookings: deps.Config.Booking.GateFreelancerBookings,
			Now:                    now,
		}, deps.Logger),
		Invoices: gate,
		Timer:    NewTimerService(deps.Repos.TimeEntry, now, deps.Logger),
		Export:   NewExportService(deps.Repos.Appointment, deps.FileStorage, deps.Config.S3.PresignTTL, deps.Config.Location(), now, deps.Logger),
	}
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
	EnsureFreelancer(ctx context.Context, cfg config.FreelancerConfig) error
}

// IdentityService turns an authenticated user into the principal the booking
// core works with.
type IdentityService interface {
	Resolve(ctx context.Context, userID int64) (*domain.Identity, error)
}

type AvailabilityService interface {
	AddRule(ctx context.Context, dto domain.CreateAvailabilityRuleDTO) (*domain.AvailabilityRule, error)
	ToggleRule(ctx context.Context, id int64, isActive bool) (*domain.AvailabilityRule, error)
	DeleteRule(ctx context.Context, id int64) error
	GetRule(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	ListRules(ctx context.Context, filter domain.AvailabilityRuleFilter) ([]domain.AvailabilityRule, error)
}

type BookingService interface {
	AvailableSlots(ctx context.Context, date time.Time) ([]domain.Slot, error)
	RequestBooking(ctx context.Context, identity domain.Identity, dto domain.BookingRequestDTO) (*domain.Appointment, error)
	BookForClient(ctx context.Context, dto domain.FreelancerBookingDTO) (*domain.Appointment, error)
	Confirm(ctx context.Context, id int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, actor domain.Identity, id int64) (*domain.Appointment, error)
	Reschedule(ctx context.Context, actor domain.Identity, id int64, dto domain.RescheduleDTO) (*domain.RescheduleResult, error)
	GetByID(ctx context.Context, actor domain.Identity, id int64) (*domain.Appointment, error)
	List(ctx context.Context, actor domain.Identity, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
}

// InvoiceGate answers whether a client still owes money. Only invoices in an
// awaiting-payment status count.
type InvoiceGate interface {
	HasUnpaidInvoices(ctx context.Context, clientID int64) (bool, error)
	UnpaidInvoices(ctx context.Context, clientID int64) ([]domain.Invoice, error)
}

type TimerService interface {
	Start(ctx context.Context, userID int64, category string) (*domain.TimerSession, error)
	Pause(ctx context.Context, userID int64, category string) (*domain.TimerSession, error)
	Stop(ctx context.Context, userID int64, category string, dto domain.StopTimerDTO) (*domain.TimeEntry, error)
	List(ctx context.Context, userID int64) ([]domain.TimerSession, error)
	Entries(ctx context.Context, filter domain.TimeEntryFilter) ([]domain.TimeEntry, error)
}

type ExportService interface {
	ExportAgenda(ctx context.Context, from, to time.Time) (*domain.AgendaExport, error)
}
