package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	testifymock "github.com/stretchr/testify/mock"

	"freedesk/internal/domain"
	"freedesk/internal/scheduling"
)

// memoryAppointments mirrors the Postgres store, including the write-time
// overlap guard.
type memoryAppointments struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Appointment

	createErr     error
	transitionErr map[int64]error
}

func newMemoryAppointments(seed ...domain.Appointment) *memoryAppointments {
	m := &memoryAppointments{rows: make(map[int64]domain.Appointment), transitionErr: make(map[int64]error)}
	for _, a := range seed {
		if a.ID > m.nextID {
			m.nextID = a.ID
		}
		m.rows[a.ID] = a
	}
	return m
}

func (m *memoryAppointments) Create(_ context.Context, appointment domain.Appointment) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return 0, m.createErr
	}

	want := scheduling.Interval{Start: appointment.StartTime, End: appointment.EndTime}
	for _, existing := range m.rows {
		if !existing.Active() || !domain.SameDate(existing.AppointmentDate, appointment.AppointmentDate) {
			continue
		}
		if want.Overlaps(scheduling.Interval{Start: existing.StartTime, End: existing.EndTime}) {
			return 0, domain.ErrSlotConflict
		}
	}

	m.nextID++
	appointment.ID = m.nextID
	m.rows[appointment.ID] = appointment
	return appointment.ID, nil
}

func (m *memoryAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("запись %d: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

func (m *memoryAppointments) TransitionStatus(_ context.Context, id int64, from []domain.AppointmentStatus, to domain.AppointmentStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.transitionErr[id]; err != nil {
		return false, err
	}

	a, ok := m.rows[id]
	if !ok || !slices.Contains(from, a.Status) {
		return false, nil
	}
	a.Status = to
	m.rows[id] = a
	return true, nil
}

func (m *memoryAppointments) ListByDate(_ context.Context, date time.Time) ([]domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Appointment, 0)
	for _, a := range m.rows {
		if a.Active() && domain.SameDate(a.AppointmentDate, date) {
			out = append(out, a)
		}
	}
	sortAppointments(out)
	return out, nil
}

func (m *memoryAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Appointment, 0)
	for _, a := range m.rows {
		if filter.ClientID != nil && a.ClientID != *filter.ClientID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.ExcludeStatus != nil && a.Status == *filter.ExcludeStatus {
			continue
		}
		if filter.StartDate != nil && a.AppointmentDate.Before(domain.DateOf(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && a.AppointmentDate.After(domain.DateOf(*filter.EndDate)) {
			continue
		}
		out = append(out, a)
	}
	sortAppointments(out)
	return out, nil
}

func (m *memoryAppointments) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	list, err := m.List(ctx, filter)
	return len(list), err
}

func (m *memoryAppointments) active() []domain.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Appointment, 0)
	for _, a := range m.rows {
		if a.Active() {
			out = append(out, a)
		}
	}
	sortAppointments(out)
	return out
}

func (m *memoryAppointments) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func sortAppointments(list []domain.Appointment) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].AppointmentDate.Equal(list[j].AppointmentDate) {
			return list[i].AppointmentDate.Before(list[j].AppointmentDate)
		}
		if list[i].StartTime != list[j].StartTime {
			return list[i].StartTime < list[j].StartTime
		}
		return list[i].ID < list[j].ID
	})
}

type memoryRules struct {
	mu     sync.Mutex
	nextID int64
	rules  []domain.AvailabilityRule

	listErr error
}

func newMemoryRules(rules ...domain.AvailabilityRule) *memoryRules {
	m := &memoryRules{}
	for _, r := range rules {
		m.nextID++
		r.ID = m.nextID
		m.rules = append(m.rules, r)
	}
	return m
}

func (m *memoryRules) Create(_ context.Context, rule domain.AvailabilityRule) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	rule.ID = m.nextID
	m.rules = append(m.rules, rule)
	return rule.ID, nil
}

func (m *memoryRules) GetByID(_ context.Context, id int64) (*domain.AvailabilityRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rules {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("правило %d: %w", id, domain.ErrNotFound)
}

func (m *memoryRules) SetActive(_ context.Context, id int64, isActive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.rules {
		if m.rules[i].ID == id {
			m.rules[i].IsActive = isActive
			return nil
		}
	}
	return fmt.Errorf("правило %d: %w", id, domain.ErrNotFound)
}

func (m *memoryRules) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.rules {
		if m.rules[i].ID == id {
			m.rules = append(m.rules[:i], m.rules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("правило %d: %w", id, domain.ErrNotFound)
}

func (m *memoryRules) List(_ context.Context, filter domain.AvailabilityRuleFilter) ([]domain.AvailabilityRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}

	out := make([]domain.AvailabilityRule, 0)
	for _, r := range m.rules {
		if filter.ActiveOnly && !r.IsActive {
			continue
		}
		if filter.DayOfWeek != nil && r.DayOfWeek != *filter.DayOfWeek {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type memoryClients struct {
	clients map[int64]domain.Client
	err     error
}

func (m *memoryClients) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.clients[id]
	if !ok {
		return nil, fmt.Errorf("клиент %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (m *memoryClients) GetByUserID(_ context.Context, userID int64) (*domain.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.clients {
		if c.UserID != nil && *c.UserID == userID {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("клиент пользователя %d: %w", userID, domain.ErrNotFound)
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
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.AppointmentEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.AppointmentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []domain.AppointmentEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.AppointmentEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryTimeEntries struct {
	mu      sync.Mutex
	entries []domain.TimeEntry
	err     error
}

func (m *memoryTimeEntries) Create(_ context.Context, entry domain.TimeEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return 0, m.err
	}
	entry.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, entry)
	return entry.ID, nil
}

func (m *memoryTimeEntries) List(_ context.Context, filter domain.TimeEntryFilter) ([]domain.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.TimeEntry, 0)
	for _, e := range m.entries {
		if filter.UserID != nil && e.UserID != *filter.UserID {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// manualClock is a settable time source.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
