package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"freedesk/internal/domain"
	"freedesk/internal/repository"
	"freedesk/internal/scheduling"
)

type AvailabilityServiceImpl struct {
	repo      repository.AvailabilityRuleRepository
	durations []int
	logger    *zap.Logger
}

func NewAvailabilityService(repo repository.AvailabilityRuleRepository, durations []int, logger *zap.Logger) *AvailabilityServiceImpl {
	if len(durations) == 0 {
		durations = scheduling.DefaultSlotDurations
	}
	return &AvailabilityServiceImpl{
		repo:      repo,
		durations: durations,
		logger:    logger,
	}
}

func (s *AvailabilityServiceImpl) AddRule(ctx context.Context, dto domain.CreateAvailabilityRuleDTO) (*domain.AvailabilityRule, error) {
	if dto.DayOfWeek == nil {
		return nil, domain.NewValidationError("day_of_week", "день недели обязателен")
	}

	start, err := domain.ParseClock(dto.StartTime)
	if err != nil {
		return nil, domain.NewValidationError("start_time", err.Error())
	}

	end, err := domain.ParseClock(dto.EndTime)
	if err != nil {
		return nil, domain.NewValidationError("end_time", err.Error())
	}

	rule := domain.AvailabilityRule{
		DayOfWeek:    domain.Weekday(*dto.DayOfWeek),
		StartTime:    start,
		EndTime:      end,
		SlotDuration: dto.SlotDuration,
		IsActive:     true,
	}
	if dto.IsActive != nil {
		rule.IsActive = *dto.IsActive
	}

	if err := scheduling.ValidateRule(rule, s.durations); err != nil {
		return nil, err
	}

	existing, err := s.repo.List(ctx, domain.AvailabilityRuleFilter{DayOfWeek: &rule.DayOfWeek, ActiveOnly: true})
	if err != nil {
		s.logger.Error("ошибка получения правил доступности", zap.Error(err))
		return nil, domain.NewCollaboratorError("availability.list", err)
	}
	if overlapping := scheduling.OverlappingRules(rule, existing); len(overlapping) > 0 && rule.IsActive {
		s.logger.Warn("правило пересекается с существующими, возможны дублирующиеся слоты",
			zap.String("day", rule.DayOfWeek.String()),
			zap.Stringer("start", rule.StartTime),
			zap.Stringer("end", rule.EndTime),
			zap.Int("overlapping", len(overlapping)))
	}

	id, err := s.repo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("ошибка создания правила доступности", zap.Error(err))
		return nil, domain.NewCollaboratorError("availability.create", err)
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("не удалось перечитать созданное правило", zap.Int64("id", id), zap.Error(err))
		rule.ID = id
		return &rule, nil
	}

	s.logger.Info("добавлено правило доступности", zap.Int64("id", id), zap.String("day", rule.DayOfWeek.String()))

	return created, nil
}

// ToggleRule never touches appointments already booked under the rule.
func (s *AvailabilityServiceImpl) ToggleRule(ctx context.Context, id int64, isActive bool) (*domain.AvailabilityRule, error) {
	if err := s.repo.SetActive(ctx, id, isActive); err != nil {
		return nil, s.storeError("availability.toggle", id, err)
	}

	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError("availability.get", id, err)
	}

	s.logger.Info("изменена активность правила", zap.Int64("id", id), zap.Bool("isActive", isActive))

	return rule, nil
}

// DeleteRule never touches appointments already booked under the rule.
func (s *AvailabilityServiceImpl) DeleteRule(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeError("availability.delete", id, err)
	}

	s.logger.Info("удалено правило доступности", zap.Int64("id", id))

	return nil
}

func (s *AvailabilityServiceImpl) GetRule(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError("availability.get", id, err)
	}
	return rule, nil
}

func (s *AvailabilityServiceImpl) ListRules(ctx context.Context, filter domain.AvailabilityRuleFilter) ([]domain.AvailabilityRule, error) {
	if filter.DayOfWeek != nil && !filter.DayOfWeek.Valid() {
		return nil, domain.NewValidationError("day_of_week", "день недели должен быть от 0 (понедельник) до 6 (воскресенье)")
	}

	rules, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения правил доступности", zap.Error(err))
		return nil, domain.NewCollaboratorError("availability.list", err)
	}
	return rules, nil
}

func (s *AvailabilityServiceImpl) storeError(op string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	s.logger.Error("ошибка хранилища правил доступности", zap.String("op", op), zap.Int64("id", id), zap.Error(err))
	return domain.NewCollaboratorError(op, err)
}
