package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freedesk/internal/domain"
	"freedesk/internal/events"
	"freedesk/internal/repository"
	"freedesk/internal/scheduling"
	"freedesk/pkg/validator"
)

type BookingDeps struct {
	Rules        repository.AvailabilityRuleRepository
	Appointments repository.AppointmentRepository
	Clients      repository.ClientRepository
	Gate         InvoiceGate
	Events       events.Publisher
	// Location is the wall-clock zone used to tell past slots from future ones.
	Location *time.Location
	// GateFreelancerBookings makes freelancer-initiated bookings pass the
	// invoice gate too.
	GateFreelancerBookings bool
	Now                    func() time.Time
}

type BookingServiceImpl struct {
	rules          repository.AvailabilityRuleRepository
	appointments   repository.AppointmentRepository
	clients        repository.ClientRepository
	gate           InvoiceGate
	events         events.Publisher
	location       *time.Location
	gateFreelancer bool
	now            func() time.Time
	logger         *zap.Logger
}

func NewBookingService(deps BookingDeps, logger *zap.Logger) *BookingServiceImpl {
	s := &BookingServiceImpl{
		rules:          deps.Rules,
		appointments:   deps.Appointments,
		clients:        deps.Clients,
		gate:           deps.Gate,
		events:         deps.Events,
		location:       deps.Location,
		gateFreelancer: deps.GateFreelancerBookings,
		now:            deps.Now,
		logger:         logger,
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.events == nil {
		s.events = events.Noop{}
	}
	return s
}

// slotRequest is the common input of every path that creates an appointment.
type slotRequest struct {
	clientID        int64
	date            string
	startTime       string
	meetingType     domain.MeetingType
	notes           *string
	status          domain.AppointmentStatus
	checkInvoices   bool
	rescheduledFrom *int64
}

// AvailableSlots recomputes the slots of date on every call. Slots that have
// already started are reported unavailable.
func (s *BookingServiceImpl) AvailableSlots(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	rules, err := s.rules.List(ctx, domain.AvailabilityRuleFilter{ActiveOnly: true})
	if err != nil {
		return nil, s.collaborator("rules.list", err)
	}

	appointments, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, s.collaborator("appointments.list_by_date", err)
	}

	slots := scheduling.ComputeSlots(date, rules, appointments)

	now := s.now()
	for i := range slots {
		if !slots[i].StartTime.On(date, s.location).After(now) {
			slots[i].Available = false
		}
	}

	return slots, nil
}

func (s *BookingServiceImpl) RequestBooking(ctx context.Context, identity domain.Identity, dto domain.BookingRequestDTO) (*domain.Appointment, error) {
	if identity.ClientID == nil {
		return nil, fmt.Errorf("запрос записи доступен только клиенту: %w", domain.ErrForbidden)
	}

	appointment, err := s.book(ctx, slotRequest{
		clientID:      *identity.ClientID,
		date:          dto.Date,
		startTime:     dto.StartTime,
		meetingType:   dto.MeetingType,
		notes:         dto.Notes,
		status:        domain.AppointmentStatusPending,
		checkInvoices: true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("клиент запросил запись",
		zap.Int64("appointmentID", appointment.ID),
		zap.Int64("clientID", appointment.ClientID),
		zap.String("date", dto.Date),
		zap.Stringer("start", appointment.StartTime))

	s.publish(ctx, domain.EventAppointmentRequested, appointment, nil)

	return appointment, nil
}

func (s *BookingServiceImpl) BookForClient(ctx context.Context, dto domain.FreelancerBookingDTO) (*domain.Appointment, error) {
	client, err := s.clients.GetByID(ctx, dto.ClientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("client_id", "клиент не найден")
		}
		return nil, s.collaborator("clients.get", err)
	}

	appointment, err := s.book(ctx, slotRequest{
		clientID:      client.ID,
		date:          dto.Date,
		startTime:     dto.StartTime,
		meetingType:   dto.MeetingType,
		notes:         dto.Notes,
		status:        domain.AppointmentStatusConfirmed,
		checkInvoices: s.gateFreelancer,
	})
	if err != nil {
		return nil, err
	}
	appointment.ClientName = client.Name

	s.logger.Info("фрилансер создал запись",
		zap.Int64("appointmentID", appointment.ID),
		zap.Int64("clientID", client.ID),
		zap.String("date", dto.Date),
		zap.Stringer("start", appointment.StartTime))

	s.publish(ctx, domain.EventAppointmentBooked, appointment, nil)

	return appointment, nil
}

// Confirm moves a pending appointment to confirmed. Confirming a confirmed
// appointment is a no-op.
func (s *BookingServiceImpl) Confirm(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	switch appointment.Status {
	case domain.AppointmentStatusConfirmed:
		return appointment, nil
	case domain.AppointmentStatusCancelled:
		return nil, s.illegalTransition(appointment.ID, appointment.Status, domain.AppointmentStatusConfirmed)
	}

	changed, err := s.appointments.TransitionStatus(ctx, id, []domain.AppointmentStatus{domain.AppointmentStatusPending}, domain.AppointmentStatusConfirmed)
	if err != nil {
		return nil, s.collaborator("appointments.transition", err)
	}
	if !changed {
		current, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status == domain.AppointmentStatusConfirmed {
			return current, nil
		}
		return nil, s.illegalTransition(id, current.Status, domain.AppointmentStatusConfirmed)
	}

	appointment.Status = domain.AppointmentStatusConfirmed
	appointment.UpdatedAt = s.now()

	s.logger.Info("запись подтверждена", zap.Int64("appointmentID", id))
	s.publish(ctx, domain.EventAppointmentConfirmed, appointment, nil)

	return appointment, nil
}

// Cancel is idempotent: cancelling a cancelled appointment succeeds without a write.
func (s *BookingServiceImpl) Cancel(ctx context.Context, actor domain.Identity, id int64) (*domain.Appointment, error) {
	appointment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, appointment); err != nil {
		return nil, err
	}

	if appointment.Status == domain.AppointmentStatusCancelled {
		return appointment, nil
	}

	cancelled, err := s.cancel(ctx, appointment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("запись отменена", zap.Int64("appointmentID", id), zap.Int64("actorUserID", actor.UserID))

	return cancelled, nil
}

// Reschedule books the new slot first and cancels the old appointment only
// once that succeeded. If the old appointment cannot be cancelled afterwards
// a RescheduleIncompleteError carrying the new appointment is returned.
func (s *BookingServiceImpl) Reschedule(ctx context.Context, actor domain.Identity, id int64, dto domain.RescheduleDTO) (*domain.RescheduleResult, error) {
	old, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, old); err != nil {
		return nil, err
	}

	status := domain.AppointmentStatusPending
	checkInvoices := true
	if actor.IsFreelancer() {
		status = domain.AppointmentStatusConfirmed
		checkInvoices = s.gateFreelancer
	}

	if old.Status == domain.AppointmentStatusCancelled {
		return nil, s.illegalTransition(old.ID, old.Status, status)
	}

	meetingType := old.MeetingType
	if dto.MeetingType != nil {
		meetingType = *dto.MeetingType
	}
	notes := old.Notes
	if dto.Notes != nil {
		notes = dto.Notes
	}

	created, err := s.book(ctx, slotRequest{
		clientID:        old.ClientID,
		date:            dto.Date,
		startTime:       dto.StartTime,
		meetingType:     meetingType,
		notes:           notes,
		status:          status,
		checkInvoices:   checkInvoices,
		rescheduledFrom: &old.ID,
	})
	if err != nil {
		s.logger.Warn("перенос не выполнен, исходная запись не изменена", zap.Int64("appointmentID", old.ID), zap.Error(err))
		return nil, err
	}
	created.ClientName = old.ClientName

	s.publish(ctx, domain.EventAppointmentRescheduled, created, &old.ID)

	if _, err := s.cancel(ctx, old); err != nil {
		s.logger.Error("новая запись создана, но исходная не отменена",
			zap.Int64("newAppointmentID", created.ID),
			zap.Int64("oldAppointmentID", old.ID),
			zap.Error(err))
		return nil, &domain.RescheduleIncompleteError{NewAppointment: created, OldID: old.ID, Err: err}
	}

	s.logger.Info("запись перенесена",
		zap.Int64("oldAppointmentID", old.ID),
		zap.Int64("newAppointmentID", created.ID))

	return &domain.RescheduleResult{
		Appointment:  created,
		OldID:        old.ID,
		OldCancelled: true,
	}, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, actor domain.Identity, id int64) (*domain.Appointment, error) {
	appointment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// List scopes clients to their own appointments whatever the filter says.
func (s *BookingServiceImpl) List(ctx context.Context, actor domain.Identity, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	if !actor.IsFreelancer() {
		if actor.ClientID == nil {
			return nil, 0, fmt.Errorf("пользователь %d не является клиентом: %w", actor.UserID, domain.ErrForbidden)
		}
		filter.ClientID = actor.ClientID
	}

	appointments, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, 0, s.collaborator("appointments.list", err)
	}

	count, err := s.appointments.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, s.collaborator("appointments.count", err)
	}

	return appointments, count, nil
}

func (s *BookingServiceImpl) book(ctx context.Context, req slotRequest) (*domain.Appointment, error) {
	date, err := domain.ParseDate(req.date)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}

	start, err := domain.ParseClock(req.startTime)
	if err != nil {
		return nil, domain.NewValidationError("start_time", err.Error())
	}
	if start >= domain.MinutesPerDay {
		return nil, domain.NewValidationError("start_time", "время начала должно быть раньше 24:00")
	}

	if !req.meetingType.Valid() {
		return nil, domain.NewValidationError("meeting_type", "тип встречи должен быть remote или in-person")
	}

	if !start.On(date, s.location).After(s.now()) {
		return nil, &domain.SlotUnavailableError{Date: date, StartTime: start, Reason: domain.SlotReasonPast}
	}

	rules, err := s.rules.List(ctx, domain.AvailabilityRuleFilter{ActiveOnly: true})
	if err != nil {
		return nil, s.collaborator("rules.list", err)
	}

	duration, ok := scheduling.SlotDuration(date, start, rules)
	if !ok {
		return nil, &domain.SlotUnavailableError{Date: date, StartTime: start, Reason: domain.SlotReasonNotOffered}
	}
	end := start.Add(duration)

	existing, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, s.collaborator("appointments.list_by_date", err)
	}

	if conflict := scheduling.FindConflict(date, scheduling.Interval{Start: start, End: end}, existing); conflict != nil {
		reason := domain.SlotReasonOverlapping
		if conflict.StartTime == start {
			reason = domain.SlotReasonTaken
		}
		s.logger.Warn("слот недоступен",
			zap.String("date", req.date),
			zap.Stringer("start", start),
			zap.Int64("conflictID", conflict.ID),
			zap.String("reason", string(reason)))
		return nil, &domain.SlotUnavailableError{Date: date, StartTime: start, Reason: reason}
	}

	if req.checkInvoices {
		if err := s.checkInvoices(ctx, req.clientID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	appointment := domain.Appointment{
		ClientID:        req.clientID,
		AppointmentDate: date,
		StartTime:       start,
		EndTime:         end,
		Status:          req.status,
		MeetingType:     req.meetingType,
		Notes:           cleanNotes(req.notes),
		RescheduledFrom: req.rescheduledFrom,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.appointments.Create(ctx, appointment)
	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			s.logger.Warn("слот занят параллельной записью", zap.String("date", req.date), zap.Stringer("start", start))
			return nil, &domain.SlotUnavailableError{Date: date, StartTime: start, Reason: domain.SlotReasonTaken}
		}
		return nil, s.collaborator("appointments.create", err)
	}
	appointment.ID = id

	return &appointment, nil
}

func (s *BookingServiceImpl) checkInvoices(ctx context.Context, clientID int64) error {
	unpaid, err := s.gate.HasUnpaidInvoices(ctx, clientID)
	if err != nil {
		return s.collaborator("invoices.has_unpaid", err)
	}
	if !unpaid {
		return nil
	}

	invoices, err := s.gate.UnpaidInvoices(ctx, clientID)
	if err != nil {
		s.logger.Warn("не удалось получить список неоплаченных счетов", zap.Int64("clientID", clientID), zap.Error(err))
		invoices = nil
	}

	s.logger.Warn("запись заблокирована неоплаченными счетами", zap.Int64("clientID", clientID), zap.Int("invoices", len(invoices)))

	return &domain.PaymentRequiredError{ClientID: clientID, Invoices: invoices}
}

func (s *BookingServiceImpl) cancel(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	changed, err := s.appointments.TransitionStatus(ctx, appointment.ID,
		[]domain.AppointmentStatus{domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed},
		domain.AppointmentStatusCancelled)
	if err != nil {
		return nil, s.collaborator("appointments.transition", err)
	}

	if !changed {
		current, err := s.load(ctx, appointment.ID)
		if err != nil {
			return nil, err
		}
		if current.Status == domain.AppointmentStatusCancelled {
			return current, nil
		}
		return nil, s.illegalTransition(appointment.ID, current.Status, domain.AppointmentStatusCancelled)
	}

	cancelled := *appointment
	cancelled.Status = domain.AppointmentStatusCancelled
	cancelled.UpdatedAt = s.now()

	s.publish(ctx, domain.EventAppointmentCancelled, &cancelled, nil)

	return &cancelled, nil
}

func (s *BookingServiceImpl) load(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, s.collaborator("appointments.get", err)
	}
	return appointment, nil
}

func (s *BookingServiceImpl) publish(ctx context.Context, eventType domain.AppointmentEventType, appointment *domain.Appointment, previousID *int64) {
	event := domain.AppointmentEvent{
		ID:            uuid.New().String(),
		Type:          eventType,
		AppointmentID: appointment.ID,
		ClientID:      appointment.ClientID,
		Date:          appointment.AppointmentDate.Format(domain.DateLayout),
		StartTime:     appointment.StartTime,
		EndTime:       appointment.EndTime,
		Status:        appointment.Status,
		PreviousID:    previousID,
		OccurredAt:    s.now().UTC(),
	}

	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("не удалось опубликовать событие",
			zap.String("eventType", string(eventType)),
			zap.Int64("appointmentID", appointment.ID),
			zap.Error(err))
	}
}

func (s *BookingServiceImpl) illegalTransition(id int64, from, to domain.AppointmentStatus) error {
	s.logger.Error("недопустимый переход статуса записи",
		zap.Int64("appointmentID", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return &domain.IllegalTransitionError{AppointmentID: id, From: from, To: to}
}

func (s *BookingServiceImpl) collaborator(op string, err error) error {
	var collaboratorErr *domain.CollaboratorError
	if errors.As(err, &collaboratorErr) {
		return err
	}
	s.logger.Error("ошибка внешнего компонента", zap.String("op", op), zap.Error(err))
	return domain.NewCollaboratorError(op, err)
}

func authorize(actor domain.Identity, appointment *domain.Appointment) error {
	if actor.IsFreelancer() || actor.Owns(appointment) {
		return nil
	}
	return fmt.Errorf("запись %d принадлежит другому клиенту: %w", appointment.ID, domain.ErrForbidden)
}

func cleanNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	cleaned := validator.CleanNotes(*notes)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func PointerTo[T any](v T) *T {
	return &v
}
