package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"freedesk/internal/domain"
	"freedesk/internal/repository"
	"freedesk/pkg/validator"
)

type timerKey struct {
	userID   int64
	category string
}

// TimerServiceImpl is the process-wide registry of work timers, one per user
// and category. Only stopped timers are persisted.
type TimerServiceImpl struct {
	mu       sync.Mutex
	sessions map[timerKey]*domain.TimerSession
	repo     repository.TimeEntryRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewTimerService(repo repository.TimeEntryRepository, now func() time.Time, logger *zap.Logger) *TimerServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &TimerServiceImpl{
		sessions: make(map[timerKey]*domain.TimerSession),
		repo:     repo,
		now:      now,
		logger:   logger,
	}
}

// Start starts a new timer or resumes a paused one. Starting a running timer
// is a no-op.
func (s *TimerServiceImpl) Start(ctx context.Context, userID int64, category string) (*domain.TimerSession, error) {
	if !validator.ValidateCategory(category) {
		return nil, domain.NewValidationError("category", "категория: строчные латинские буквы, цифры, '-' и '_'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := timerKey{userID: userID, category: category}

	session, ok := s.sessions[key]
	if !ok {
		session = &domain.TimerSession{Category: category}
		s.sessions[key] = session
	}

	if session.State != domain.TimerRunning {
		started := now
		session.State = domain.TimerRunning
		session.StartedAt = &started
		s.logger.Debug("таймер запущен", zap.Int64("userID", userID), zap.String("category", category))
	}

	return snapshot(session, now), nil
}

// Pause banks the running stretch. Pausing a paused timer is a no-op.
func (s *TimerServiceImpl) Pause(ctx context.Context, userID int64, category string) (*domain.TimerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session, ok := s.sessions[timerKey{userID: userID, category: category}]
	if !ok {
		return nil, fmt.Errorf("таймер %s: %w", category, domain.ErrNotFound)
	}

	if session.State == domain.TimerRunning {
		session.Accumulated += now.Sub(*session.StartedAt)
		session.StartedAt = nil
		session.State = domain.TimerPaused
	}

	return snapshot(session, now), nil
}

// Stop removes the timer and records its total as a time entry. The timer is
// put back if the entry cannot be saved.
func (s *TimerServiceImpl) Stop(ctx context.Context, userID int64, category string, dto domain.StopTimerDTO) (*domain.TimeEntry, error) {
	key := timerKey{userID: userID, category: category}

	s.mu.Lock()
	session, ok := s.sessions[key]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("таймер %s: %w", category, domain.ErrNotFound)
	}
	now := s.now()
	total := snapshot(session, now)
	delete(s.sessions, key)
	s.mu.Unlock()

	entry := domain.TimeEntry{
		UserID:    userID,
		Category:  category,
		Seconds:   total.Elapsed,
		Note:      cleanNotes(dto.Note),
		StoppedAt: now,
	}

	id, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.mu.Lock()
		if _, taken := s.sessions[key]; !taken {
			s.sessions[key] = session
		}
		s.mu.Unlock()

		s.logger.Error("ошибка сохранения учета времени", zap.Int64("userID", userID), zap.String("category", category), zap.Error(err))
		return nil, domain.NewCollaboratorError("time_entries.create", err)
	}
	entry.ID = id

	s.logger.Info("таймер остановлен",
		zap.Int64("userID", userID),
		zap.String("category", category),
		zap.Int64("seconds", entry.Seconds))

	return &entry, nil
}

func (s *TimerServiceImpl) List(ctx context.Context, userID int64) ([]domain.TimerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sessions := make([]domain.TimerSession, 0)
	for key, session := range s.sessions {
		if key.userID != userID {
			continue
		}
		sessions = append(sessions, *snapshot(session, now))
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Category < sessions[j].Category
	})

	return sessions, nil
}

func (s *TimerServiceImpl) Entries(ctx context.Context, filter domain.TimeEntryFilter) ([]domain.TimeEntry, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения учета времени", zap.Error(err))
		return nil, domain.NewCollaboratorError("time_entries.list", err)
	}
	return entries, nil
}

func snapshot(session *domain.TimerSession, now time.Time) *domain.TimerSession {
	out := *session
	elapsed := session.Accumulated
	if session.State == domain.TimerRunning && session.StartedAt != nil {
		elapsed += now.Sub(*session.StartedAt)
		started := *session.StartedAt
		out.StartedAt = &started
	}
	out.Elapsed = int64(elapsed / time.Second)
	return &out
}
