package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"freedesk/config"
	"freedesk/internal/domain"
	"freedesk/internal/repository"
	"freedesk/pkg/auth"
	"freedesk/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrAccountDisabled    = errors.New("аккаунт деактивирован")
	ErrInvalidToken       = errors.New("недействительный токен")
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

type AuthServiceImpl struct {
	authRepo  repository.AuthRepository
	userRepo  repository.UserRepository
	jwtConfig config.JWTConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthService(authRepo repository.AuthRepository, userRepo repository.UserRepository, jwtConfig config.JWTConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		authRepo:  authRepo,
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a client account. The freelancer account comes from
// EnsureFreelancer, never from this endpoint.
func (s *AuthServiceImpl) Register(ctx context.Context, dto domain.RegisterRequest) (int64, error) {
	email := validator.NormalizeEmail(dto.Email)
	if !validator.ValidateEmail(email) {
		return 0, domain.NewValidationError("email", "некорректный email")
	}
	if !validator.ValidatePassword(dto.Password) {
		return 0, domain.NewValidationError("password", "пароль должен содержать не менее 8 символов, буквы и цифры")
	}
	if !validator.ValidateNamePart(dto.FirstName) {
		return 0, domain.NewValidationError("first_name", "некорректное имя")
	}
	if !validator.ValidateNamePart(dto.LastName) {
		return 0, domain.NewValidationError("last_name", "некорректная фамилия")
	}

	hashedPassword, err := auth.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return 0, errors.New("ошибка при регистрации пользователя")
	}

	user := domain.CreateUserDTO{
		FirstName:    validator.FormatName(dto.FirstName),
		LastName:     validator.FormatName(dto.LastName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         domain.UserRoleClient,
	}

	client := domain.CreateClientDTO{
		Name:    user.FirstName + " " + user.LastName,
		Email:   email,
		Company: strings.TrimSpace(validator.SanitizeString(dto.Company)),
	}

	userID, clientID, err := s.userRepo.CreateClientAccount(ctx, user, client)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return 0, err
		}
		s.logger.Error("ошибка при создании пользователя", zap.Error(err))
		return 0, errors.New("ошибка при регистрации пользователя")
	}

	s.logger.Info("зарегистрирован клиент", zap.Int64("userID", userID), zap.Int64("clientID", clientID))

	return userID, nil
}

// EnsureFreelancer creates the freelancer account if no user owns the email yet.
func (s *AuthServiceImpl) EnsureFreelancer(ctx context.Context, cfg config.FreelancerConfig) error {
	email := validator.NormalizeEmail(cfg.Email)
	if email == "" {
		return nil
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role != domain.UserRoleFreelancer {
			return fmt.Errorf("email %s занят пользователем с ролью %s", email, existing.Role)
		}
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("ошибка поиска фрилансера: %w", err)
	}

	if !validator.ValidatePassword(cfg.Password) {
		return domain.NewValidationError("FREELANCER_PASSWORD", "пароль должен содержать не менее 8 символов, буквы и цифры")
	}

	hashedPassword, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	id, err := s.userRepo.Create(ctx, domain.CreateUserDTO{
		FirstName:    validator.FormatName(cfg.FirstName),
		LastName:     validator.FormatName(cfg.LastName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         domain.UserRoleFreelancer,
	})
	if err != nil {
		return err
	}

	s.logger.Info("создан аккаунт фрилансера", zap.Int64("userID", id), zap.String("email", email))

	return nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, validator.NormalizeEmail(dto.Email))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("ошибка получения пользователя", zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(dto.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("ошибка проверки пароля", zap.Int64("userID", user.ID), zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if !ok {
		s.logger.Warn("неверный пароль", zap.Int64("userID", user.ID))
		return nil, ErrInvalidCredentials
	}
	if auth.IsLegacyHash(user.PasswordHash) {
		s.logger.Warn("пароль хранится в устаревшем формате bcrypt", zap.Int64("userID", user.ID))
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.openSession(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Warn("ошибка получения сессии", zap.Error(err))
		return nil, ErrInvalidToken
	}

	if session.ExpiresAt.Before(s.now()) {
		if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
			s.logger.Warn("ошибка удаления истекшей сессии", zap.Error(err))
		}
		return nil, errors.New("refresh token истек")
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		s.logger.Error("пользователь не найден", zap.Int64("userID", session.UserID), zap.Error(err))
		return nil, ErrInvalidToken
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Warn("ошибка удаления старой сессии", zap.Error(err))
	}

	return s.openSession(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("сессия не найдена при выходе")
			return nil
		}
		s.logger.Error("ошибка получения сессии", zap.Error(err))
		return errors.New("ошибка при выходе")
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("ошибка удаления сессии", zap.Error(err))
		return errors.New("ошибка при выходе")
	}

	return nil
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, tokenString string) (int64, domain.UserRole, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	return claims.UserID, claims.Role, nil
}

func (s *AuthServiceImpl) openSession(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.Tokens, error) {
	tokens, err := s.generateTokens(user.ID, user.Role)
	if err != nil {
		s.logger.Error("ошибка генерации токенов", zap.Error(err))
		return nil, errors.New("ошибка при аутентификации")
	}

	now := s.now()
	session := domain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    now.Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    now,
	}

	if err := s.authRepo.CreateSession(ctx, session); err != nil {
		s.logger.Error("ошибка сохранения сессии", zap.Error(err))
		return nil, errors.New("ошибка при аутентификации")
	}

	return tokens, nil
}

func (s *AuthServiceImpl) generateTokens(userID int64, role domain.UserRole) (*domain.Tokens, error) {
	now := s.now()

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	})
	accessTokenString, err := accessToken.SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи access token: %w", err)
	}

	// ID makes refresh tokens issued in the same second distinct.
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	})
	refreshTokenString, err := refreshToken.SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи refresh token: %w", err)
	}

	return &domain.Tokens{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
	}, nil
}
