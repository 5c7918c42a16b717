package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"freedesk/internal/domain"
	"freedesk/internal/repository"
	"freedesk/internal/storage"
)

const (
	maxExportRange    = 366 * 24 * time.Hour
	calendarProductID = "-//freedesk//agenda//FR"
	calendarMediaType = "text/calendar; charset=utf-8"
)

var ErrStorageDisabled = errors.New("файловое хранилище не настроено")

type ExportServiceImpl struct {
	appointments repository.AppointmentRepository
	storage      storage.FileStorage
	presignTTL   time.Duration
	location     *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

func NewExportService(appointments repository.AppointmentRepository, fileStorage storage.FileStorage, presignTTL time.Duration, location *time.Location, now func() time.Time, logger *zap.Logger) *ExportServiceImpl {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	if location == nil {
		location = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &ExportServiceImpl{
		appointments: appointments,
		storage:      fileStorage,
		presignTTL:   presignTTL,
		location:     location,
		now:          now,
		logger:       logger,
	}
}

// ExportAgenda writes the non-cancelled appointments of [from, to] as an
// iCalendar file to object storage and returns a temporary download link.
func (s *ExportServiceImpl) ExportAgenda(ctx context.Context, from, to time.Time) (*domain.AgendaExport, error) {
	if to.Before(from) {
		return nil, domain.NewValidationError("to", "дата окончания раньше даты начала")
	}
	if to.Sub(from) > maxExportRange {
		return nil, domain.NewValidationError("to", "период выгрузки не может превышать год")
	}
	if s.storage == nil {
		return nil, domain.NewCollaboratorError("storage", ErrStorageDisabled)
	}

	appointments, err := s.appointments.List(ctx, domain.AppointmentFilter{
		ExcludeStatus: PointerTo(domain.AppointmentStatusCancelled),
		StartDate:     &from,
		EndDate:       &to,
	})
	if err != nil {
		s.logger.Error("ошибка получения записей для выгрузки", zap.Error(err))
		return nil, domain.NewCollaboratorError("appointments.list", err)
	}

	now := s.now()
	data := renderCalendar(appointments, s.location, now)

	objectName := fmt.Sprintf("agenda/%s_%s_%s.ics", from.Format(domain.DateLayout), to.Format(domain.DateLayout), uuid.New().String())

	if _, err := s.storage.UploadFile(ctx, data, objectName, calendarMediaType); err != nil {
		s.logger.Error("ошибка загрузки выгрузки", zap.String("object", objectName), zap.Error(err))
		return nil, domain.NewCollaboratorError("storage.upload", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, objectName, s.presignTTL)
	if err != nil {
		s.logger.Error("ошибка генерации ссылки на выгрузку", zap.String("object", objectName), zap.Error(err))
		if delErr := s.storage.DeleteFile(ctx, objectName); delErr != nil {
			s.logger.Warn("не удалось удалить выгрузку", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, domain.NewCollaboratorError("storage.presign", err)
	}

	s.logger.Info("агенда выгружена", zap.String("object", objectName), zap.Int("appointments", len(appointments)))

	return &domain.AgendaExport{
		URL:          url,
		ObjectName:   objectName,
		Appointments: len(appointments),
		ExpiresAt:    now.Add(s.presignTTL),
	}, nil
}

func renderCalendar(appointments []domain.Appointment, loc *time.Location, now time.Time) []byte {
	cal := ics.NewCalendar()
	cal.SetProductId(calendarProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	for _, a := range appointments {
		summary := "Rendez-vous"
		if a.ClientName != "" {
			summary += " - " + a.ClientName
		}

		event := cal.AddEvent(fmt.Sprintf("appointment-%d@freedesk", a.ID))
		event.SetDtStampTime(now)
		event.SetStartAt(a.StartTime.On(a.AppointmentDate, loc))
		event.SetEndAt(a.EndTime.On(a.AppointmentDate, loc))
		event.SetSummary(summary)
		event.AddCategory(string(a.MeetingType))
		if a.Status == domain.AppointmentStatusConfirmed {
			event.SetStatus(ics.ObjectStatusConfirmed)
		} else {
			event.SetStatus(ics.ObjectStatusTentative)
		}
		if a.Notes != nil {
			event.SetDescription(strings.ReplaceAll(*a.Notes, "\r\n", "\n"))
		}
	}

	return []byte(cal.Serialize())
}
