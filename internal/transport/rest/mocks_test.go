package rest

import (
	"context"
	"time"

	testifymock "github.com/stretchr/testify/mock"

	"freedesk/config"
	"freedesk/internal/domain"
)

type MockAuthService struct {
	testifymock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, dto domain.RegisterRequest) (int64, error) {
	args := m.Called(ctx, dto)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	args := m.Called(ctx, dto, userAgent, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	args := m.Called(ctx, refreshToken, userAgent, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Get(1).(domain.UserRole), args.Error(2)
}

func (m *MockAuthService) EnsureFreelancer(ctx context.Context, cfg config.FreelancerConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

type MockIdentityService struct {
	testifymock.Mock
}

func (m *MockIdentityService) Resolve(ctx context.Context, userID int64) (*domain.Identity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

type MockBookingService struct {
	testifymock.Mock
}

func (m *MockBookingService) AvailableSlots(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Slot), args.Error(1)
}

func (m *MockBookingService) RequestBooking(ctx context.Context, identity domain.Identity, dto domain.BookingRequestDTO) (*domain.Appointment, error) {
	args := m.Called(ctx, identity, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockBookingService) BookForClient(ctx context.Context, dto domain.FreelancerBookingDTO) (*domain.Appointment, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockBookingService) Confirm(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, actor domain.Identity, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockBookingService) Reschedule(ctx context.Context, actor domain.Identity, id int64, dto domain.RescheduleDTO) (*domain.RescheduleResult, error) {
	args := m.Called(ctx, actor, id, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RescheduleResult), args.Error(1)
}

func (m *MockBookingService) GetByID(ctx context.Context, actor domain.Identity, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context, actor domain.Identity, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Appointment), args.Int(1), args.Error(2)
}

type MockInvoiceGate struct {
	testifymock.Mock
}

func (m *MockInvoiceGate) HasUnpaidInvoices(ctx context.Context, clientID int64) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceGate) UnpaidInvoices(ctx context.Context, clientID int64) ([]domain.Invoice, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

type MockTimerService struct {
	testifymock.Mock
}

func (m *MockTimerService) Start(ctx context.Context, userID int64, category string) (*domain.TimerSession, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimerSession), args.Error(1)
}

func (m *MockTimerService) Pause(ctx context.Context, userID int64, category string) (*domain.TimerSession, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimerSession), args.Error(1)
}

func (m *MockTimerService) Stop(ctx context.Context, userID int64, category string, dto domain.StopTimerDTO) (*domain.TimeEntry, error) {
	args := m.Called(ctx, userID, category, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimerService) List(ctx context.Context, userID int64) ([]domain.TimerSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimerSession), args.Error(1)
}

func (m *MockTimerService) Entries(ctx context.Context, filter domain.TimeEntryFilter) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

type MockAvailabilityService struct {
	testifymock.Mock
}

func (m *MockAvailabilityService) AddRule(ctx context.Context, dto domain.CreateAvailabilityRuleDTO) (*domain.AvailabilityRule, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityRule), args.Error(1)
}

func (m *MockAvailabilityService) ToggleRule(ctx context.Context, id int64, isActive bool) (*domain.AvailabilityRule, error) {
	args := m.Called(ctx, id, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityRule), args.Error(1)
}

func (m *MockAvailabilityService) DeleteRule(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAvailabilityService) GetRule(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityRule), args.Error(1)
}

func (m *MockAvailabilityService) ListRules(ctx context.Context, filter domain.AvailabilityRuleFilter) ([]domain.AvailabilityRule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityRule), args.Error(1)
}
