package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"freedesk/internal/domain"
	"freedesk/internal/repository"
)

type IdentityServiceImpl struct {
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
	logger     *zap.Logger
}

func NewIdentityService(userRepo repository.UserRepository, clientRepo repository.ClientRepository, logger *zap.Logger) *IdentityServiceImpl {
	return &IdentityServiceImpl{
		userRepo:   userRepo,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Resolve loads the user behind a token. The role is read from the store, not
// from the token, and a client user always gets the client record linked to
// its account.
func (s *IdentityServiceImpl) Resolve(ctx context.Context, userID int64) (*domain.Identity, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("пользователь %d: %w", userID, domain.ErrForbidden)
		}
		s.logger.Error("ошибка получения пользователя", zap.Int64("userID", userID), zap.Error(err))
		return nil, domain.NewCollaboratorError("identity.user", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("аккаунт %d деактивирован: %w", userID, domain.ErrForbidden)
	}

	identity := &domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	if user.Role != domain.UserRoleClient {
		return identity, nil
	}

	client, err := s.clientRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("у пользователя нет карточки клиента", zap.Int64("userID", user.ID))
			return nil, fmt.Errorf("клиент пользователя %d: %w", userID, domain.ErrForbidden)
		}
		s.logger.Error("ошибка получения клиента", zap.Int64("userID", userID), zap.Error(err))
		return nil, domain.NewCollaboratorError("identity.client", err)
	}

	identity.ClientID = &client.ID

	return identity, nil
}
