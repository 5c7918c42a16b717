package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freedesk/config"
	"freedesk/internal/domain"
	"freedesk/internal/service"
)

type testServer struct {
	router       *gin.Engine
	auth         *MockAuthService
	identity     *MockIdentityService
	availability *MockAvailabilityService
	booking      *MockBookingService
	invoices     *MockInvoiceGate
	timers       *MockTimerService
}

var (
	clientIdentity     = domain.Identity{UserID: 20, Email: "claire@example.com", Role: domain.UserRoleClient, ClientID: service.PointerTo(int64(7))}
	freelancerIdentity = domain.Identity{UserID: 1, Email: "camille@example.com", Role: domain.UserRoleFreelancer}
)

func newTestServer(t *testing.T, limiter RateLimiter, failOpen bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		auth:         &MockAuthService{},
		identity:     &MockIdentityService{},
		availability: &MockAvailabilityService{},
		booking:      &MockBookingService{},
		invoices:     &MockInvoiceGate{},
		timers:       &MockTimerService{},
	}

	s.auth.On("ParseToken", testifymock.Anything, "client-token").Return(int64(20), domain.UserRoleClient, nil)
	s.auth.On("ParseToken", testifymock.Anything, "freelancer-token").Return(int64(1), domain.UserRoleFreelancer, nil)
	s.auth.On("ParseToken", testifymock.Anything, "forged").Return(int64(0), domain.UserRole(""), service.ErrInvalidToken)
	s.identity.On("Resolve", testifymock.Anything, int64(20)).Return(&clientIdentity, nil)
	s.identity.On("Resolve", testifymock.Anything, int64(1)).Return(&freelancerIdentity, nil)

	cfg := &config.Config{
		Version:   "test",
		RateLimit: config.RateLimitConfig{Bookings: 100, Window: time.Minute, FailOpen: failOpen},
	}

	handler := NewHandler(&service.Services{
		Auth:         s.auth,
		Identity:     s.identity,
		Availability: s.availability,
		Booking:      s.booking,
		Invoices:     s.invoices,
		Timer:        s.timers,
	}, zap.NewNop(), cfg, limiter)

	s.router = gin.New()
	handler.InitRoutes(s.router)

	return s
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(authorizationHeader, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil, true)

	w := s.do(http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t, nil, true)

	t.Run("missing header", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/me", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/me", "forged", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("identity from the store", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/me", "client-token", "")
		require.Equal(t, http.StatusOK, w.Code)

		data := decode(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "client", data["role"])
		assert.Equal(t, float64(7), data["client_id"])
	})

	t.Run("disabled account", func(t *testing.T) {
		s := newTestServer(t, nil, true)
		s.auth.On("ParseToken", testifymock.Anything, "stale-token").Return(int64(30), domain.UserRoleClient, nil)
		s.identity.On("Resolve", testifymock.Anything, int64(30)).Return(nil, domain.ErrForbidden)

		w := s.do(http.MethodGet, "/api/v1/me", "stale-token", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFreelancerOnlyRoutes(t *testing.T) {
	s := newTestServer(t, nil, true)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/availability/rules"},
		{http.MethodPost, "/api/v1/appointments/book"},
		{http.MethodPost, "/api/v1/appointments/3/confirm"},
		{http.MethodGet, "/api/v1/agenda/export?from=2025-03-01"},
		{http.MethodPost, "/api/v1/timers/design/start"},
	} {
		w := s.do(route.method, route.path, "client-token", "")
		assert.Equal(t, http.StatusForbidden, w.Code, route.path)
	}
}

func TestAvailabilityRuleRoutes(t *testing.T) {
	s := newTestServer(t, nil, true)
	rule := &domain.AvailabilityRule{ID: 4, DayOfWeek: domain.Monday, StartTime: domain.NewClock(9, 0), EndTime: domain.NewClock(12, 0), SlotDuration: 30, IsActive: true}
	monday := 0
	s.availability.On("AddRule", testifymock.Anything, domain.CreateAvailabilityRuleDTO{
		DayOfWeek: &monday, StartTime: "09:00", EndTime: "12:00", SlotDuration: 30,
	}).Return(rule, nil)
	s.availability.On("ToggleRule", testifymock.Anything, int64(4), false).Return(&domain.AvailabilityRule{ID: 4, IsActive: false}, nil)
	s.availability.On("DeleteRule", testifymock.Anything, int64(5)).Return(domain.ErrNotFound)

	w := s.do(http.MethodPost, "/api/v1/availability/rules", "freelancer-token",
		`{"day_of_week":0,"start_time":"09:00","end_time":"12:00","slot_duration":30}`)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "12:00", data["end_time"])

	w = s.do(http.MethodPatch, "/api/v1/availability/rules/4", "freelancer-token", `{"is_active":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["data"].(map[string]interface{})["is_active"])

	w = s.do(http.MethodPatch, "/api/v1/availability/rules/4", "freelancer-token", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/api/v1/availability/rules/5", "freelancer-token", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/v1/availability/rules", "freelancer-token",
		`{"day_of_week":7,"start_time":"09:00","end_time":"12:00","slot_duration":30}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestAppointmentUsesIdentity(t *testing.T) {
	s := newTestServer(t, nil, true)
	dto := domain.BookingRequestDTO{Date: "2025-03-03", StartTime: "09:00", MeetingType: domain.MeetingTypeRemote}
	s.booking.On("RequestBooking", testifymock.Anything, clientIdentity, dto).Return(&domain.Appointment{
		ID: 11, ClientID: 7, StartTime: domain.NewClock(9, 0), EndTime: domain.NewClock(9, 30), Status: domain.AppointmentStatusPending,
	}, nil)

	w := s.do(http.MethodPost, "/api/v1/appointments", "client-token",
		`{"client_id":99,"date":"2025-03-03","start_time":"09:00","meeting_type":"remote"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["client_id"])
	assert.Equal(t, "09:30", data["end_time"])
	s.booking.AssertExpectations(t)
}

func TestRequestAppointmentRejectsBadBody(t *testing.T) {
	s := newTestServer(t, nil, true)

	w := s.do(http.MethodPost, "/api/v1/appointments", "client-token", `{"date":"2025-03-03","start_time":"09:00","meeting_type":"phone"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	s.booking.AssertNotCalled(t, "RequestBooking", testifymock.Anything, testifymock.Anything, testifymock.Anything)
}

func TestServiceErrorMapping(t *testing.T) {
	created := &domain.Appointment{ID: 12, ClientID: 7, Status: domain.AppointmentStatusPending}

	tests := []struct {
		name   string
		err    error
		status int
		check  func(t *testing.T, body map[string]interface{})
	}{
		{
			name:   "validation",
			err:    domain.NewValidationError("start_time", "неверный формат"),
			status: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "start_time", body["field"])
			},
		},
		{
			name:   "slot unavailable",
			err:    &domain.SlotUnavailableError{Reason: domain.SlotReasonTaken},
			status: http.StatusConflict,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "taken", body["reason"])
			},
		},
		{
			name: "payment required",
			err: &domain.PaymentRequiredError{ClientID: 7, Invoices: []domain.Invoice{
				{ID: "inv-1", Number: "F-2025-001", Status: domain.InvoiceStatusOverdue},
			}},
			status: http.StatusPaymentRequired,
			check: func(t *testing.T, body map[string]interface{}) {
				invoices := body["invoices"].([]interface{})
				require.Len(t, invoices, 1)
				assert.Equal(t, "En retard", invoices[0].(map[string]interface{})["status"])
			},
		},
		{
			name:   "illegal transition",
			err:    &domain.IllegalTransitionError{AppointmentID: 3, From: domain.AppointmentStatusCancelled, To: domain.AppointmentStatusConfirmed},
			status: http.StatusConflict,
		},
		{
			name:   "reschedule incomplete",
			err:    &domain.RescheduleIncompleteError{NewAppointment: created, OldID: 3, Err: domain.NewCollaboratorError("appointments.transition", errors.New("reset"))},
			status: http.StatusBadGateway,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, float64(3), body["old_id"])
				assert.Equal(t, float64(12), body["appointment"].(map[string]interface{})["id"])
			},
		},
		{name: "not found", err: domain.ErrNotFound, status: http.StatusNotFound},
		{name: "forbidden", err: domain.ErrForbidden, status: http.StatusForbidden},
		{name: "collaborator", err: domain.NewCollaboratorError("rules.list", errors.New("timeout")), status: http.StatusBadGateway},
		{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, true)
			s.booking.On("Reschedule", testifymock.Anything, clientIdentity, int64(3), testifymock.Anything).Return(nil, tt.err)

			w := s.do(http.MethodPost, "/api/v1/appointments/3/reschedule", "client-token", `{"date":"2025-03-04","start_time":"10:00"}`)

			require.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, "error", body["status"])
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestConfirmAndCancel(t *testing.T) {
	s := newTestServer(t, nil, true)
	s.booking.On("Confirm", testifymock.Anything, int64(3)).Return(&domain.Appointment{ID: 3, Status: domain.AppointmentStatusConfirmed}, nil)
	s.booking.On("Cancel", testifymock.Anything, clientIdentity, int64(3)).Return(&domain.Appointment{ID: 3, Status: domain.AppointmentStatusCancelled}, nil)

	w := s.do(http.MethodPost, "/api/v1/appointments/3/confirm", "freelancer-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", decode(t, w)["data"].(map[string]interface{})["status"])

	w = s.do(http.MethodPost, "/api/v1/appointments/3/cancel", "client-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decode(t, w)["data"].(map[string]interface{})["status"])

	w = s.do(http.MethodPost, "/api/v1/appointments/abc/cancel", "client-token", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAppointmentsPaginates(t *testing.T) {
	s := newTestServer(t, nil, true)
	s.booking.On("List", testifymock.Anything, clientIdentity, testifymock.MatchedBy(func(f domain.AppointmentFilter) bool {
		return f.Limit == 10 && f.Offset == 10 && f.Status != nil && *f.Status == domain.AppointmentStatusPending
	})).Return([]domain.Appointment{{ID: 1}}, 25, nil)

	w := s.do(http.MethodGet, "/api/v1/appointments?status=pending&limit=10&offset=10", "client-token", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(25), body["total_count"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(3), body["total_pages"])

	w = s.do(http.MethodGet, "/api/v1/appointments?status=done", "client-token", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSlots(t *testing.T) {
	s := newTestServer(t, nil, true)
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	s.booking.On("AvailableSlots", testifymock.Anything, date).Return([]domain.Slot{
		{StartTime: domain.NewClock(9, 0), Duration: 30, Available: true},
	}, nil)

	w := s.do(http.MethodGet, "/api/v1/slots?date=2025-03-03", "client-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	slots := decode(t, w)["data"].([]interface{})
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].(map[string]interface{})["start_time"])

	w = s.do(http.MethodGet, "/api/v1/slots?date=03-03-2025", "client-token", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnpaidInvoices(t *testing.T) {
	s := newTestServer(t, nil, true)
	s.invoices.On("UnpaidInvoices", testifymock.Anything, int64(7)).Return(nil, nil)
	s.invoices.On("UnpaidInvoices", testifymock.Anything, int64(8)).Return([]domain.Invoice{{ID: "inv-2", ClientID: 8}}, nil)

	w := s.do(http.MethodGet, "/api/v1/invoices/unpaid?client_id=8", "client-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["data"])

	w = s.do(http.MethodGet, "/api/v1/invoices/unpaid?client_id=8", "freelancer-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = s.do(http.MethodGet, "/api/v1/invoices/unpaid", "freelancer-token", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimerRoutes(t *testing.T) {
	s := newTestServer(t, nil, true)
	s.timers.On("Start", testifymock.Anything, int64(1), "design").Return(&domain.TimerSession{Category: "design", State: domain.TimerRunning}, nil)
	s.timers.On("Stop", testifymock.Anything, int64(1), "design", domain.StopTimerDTO{}).Return(&domain.TimeEntry{ID: 4, Category: "design", Seconds: 90}, nil)
	s.timers.On("Pause", testifymock.Anything, int64(1), "admin").Return(nil, domain.ErrNotFound)

	w := s.do(http.MethodPost, "/api/v1/timers/design/start", "freelancer-token", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/timers/design/stop", "freelancer-token", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(90), decode(t, w)["data"].(map[string]interface{})["seconds"])

	w = s.do(http.MethodPost, "/api/v1/timers/admin/pause", "freelancer-token", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingRequestsAreRateLimited(t *testing.T) {
	s := newTestServer(t, NewMemoryRateLimiter(2, time.Minute), true)
	s.booking.On("RequestBooking", testifymock.Anything, testifymock.Anything, testifymock.Anything).
		Return(&domain.Appointment{ID: 1, ClientID: 7}, nil)

	body := `{"date":"2025-03-03","start_time":"09:00","meeting_type":"remote"}`
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/appointments", "client-token", body).Code)
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/appointments", "client-token", body).Code)

	w := s.do(http.MethodPost, "/api/v1/appointments", "client-token", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/appointments", "freelancer-token", body).Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func TestRateLimiterFailure(t *testing.T) {
	body := `{"date":"2025-03-03","start_time":"09:00","meeting_type":"remote"}`

	t.Run("fail open", func(t *testing.T) {
		s := newTestServer(t, failingLimiter{}, true)
		s.booking.On("RequestBooking", testifymock.Anything, testifymock.Anything, testifymock.Anything).
			Return(&domain.Appointment{ID: 1, ClientID: 7}, nil)

		assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/appointments", "client-token", body).Code)
	})

	t.Run("fail closed", func(t *testing.T) {
		s := newTestServer(t, failingLimiter{}, false)

		assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodPost, "/api/v1/appointments", "client-token", body).Code)
	})
}

func TestMemoryRateLimiterWindow(t *testing.T) {
	limiter := NewMemoryRateLimiter(1, time.Minute)
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	allowed, err := limiter.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _ = limiter.Allow(context.Background(), "k")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(context.Background(), "other")
	assert.True(t, allowed)

	now = now.Add(61 * time.Second)
	allowed, _ = limiter.Allow(context.Background(), "k")
	assert.True(t, allowed)
}

func TestRedisRateLimiterReportsUnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	limiter := NewRedisRateLimiter(rdb, 5, time.Minute, "")

	_, err := limiter.Allow(context.Background(), "bookings:user:1")
	assert.Error(t, err)
}
