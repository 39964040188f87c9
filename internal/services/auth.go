package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"rating-system/internal/dto"
	"rating-system/internal/entities"
	"rating-system/internal/repositories"
	"rating-system/pkg/config"
	apperrors "rating-system/pkg/errors"
	"rating-system/pkg/service"
	"rating-system/pkg/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Signup(ctx context.Context, payload dto.SignupDTO) (*dto.UserDTO, error)
	RequestCode(ctx context.Context, payload dto.RequestCodeDTO) error
	ExchangeCode(ctx context.Context, payload dto.ExchangeCodeDTO) (*dto.TokenPairDTO, error)
	RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AccessTokenDTO, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	emailSvc  EmailServiceInterface
	jwtSvc    service.JWTService
	authCfg   *config.AuthConfig
	logger    *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	emailSvc EmailServiceInterface,
	jwtSvc service.JWTService,
	authCfg *config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		emailSvc:  emailSvc,
		jwtSvc:    jwtSvc,
		authCfg:   authCfg,
		logger:    logger,
	}
}

func cooldownKey(email string) string {
	return "confirmation_cooldown:" + email
}

func attemptsKey(email string) string {
	return "exchange_attempts:" + email
}

func (s *AuthService) Signup(ctx context.Context, payload dto.SignupDTO) (*dto.UserDTO, error) {
	// Роль при самостоятельной регистрации всегда "user".
	user, err := s.userRepo.CreateUser(ctx, payload.Username, payload.Email, entities.RoleUser, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("зарегистрирован новый пользователь",
		zap.String("username", user.Username), zap.Uint64("userID", user.ID))

	userDTO := toUserDTO(user)
	return &userDTO, nil
}

func (s *AuthService) RequestCode(ctx context.Context, payload dto.RequestCodeDTO) error {
	if _, err := s.cacheRepo.Get(ctx, cooldownKey(payload.Email)); err == nil {
		message := "Код уже отправлен, повторите запрос позже"
		if ttl, ttlErr := s.cacheRepo.TTL(ctx, cooldownKey(payload.Email)); ttlErr == nil && ttl > 0 {
			message = fmt.Sprintf("Код уже отправлен, повторите через %d сек.", int(ttl.Seconds()))
		}
		return apperrors.NewTooManyRequestsError(message)
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("redis недоступен при проверке cooldown", zap.Error(err))
	}

	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		return err
	}

	code := utils.GenerateConfirmationCode()
	codeHash, err := utils.HashConfirmationCode(code)
	if err != nil {
		return fmt.Errorf("хэширование кода подтверждения: %w", err)
	}

	// Повторный запрос всегда перезаписывает предыдущий код.
	if err := s.userRepo.SetConfirmationCode(ctx, user.ID, codeHash); err != nil {
		return err
	}

	if err := s.emailSvc.SendConfirmationCode(user.Email, code); err != nil {
		return apperrors.NewHttpError(http.StatusInternalServerError,
			"Не удалось отправить письмо с кодом", err, nil)
	}

	if err := s.cacheRepo.Set(ctx, cooldownKey(payload.Email), "1", s.authCfg.ResendCooldown); err != nil {
		s.logger.Warn("не удалось выставить cooldown", zap.Error(err))
	}

	s.logger.Info("код подтверждения сгенерирован и отправлен", zap.Uint64("userID", user.ID))
	return nil
}

func (s *AuthService) ExchangeCode(ctx context.Context, payload dto.ExchangeCodeDTO) (*dto.TokenPairDTO, error) {
	if attemptsStr, err := s.cacheRepo.Get(ctx, attemptsKey(payload.Email)); err == nil {
		if attempts, convErr := strconv.Atoi(attemptsStr); convErr == nil && attempts >= s.authCfg.MaxExchangeAttempts {
			return nil, apperrors.NewTooManyRequestsError("Слишком много неудачных попыток, повторите позже")
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewBadRequestError("Неверный email или код подтверждения")
		}
		return nil, err
	}

	if !utils.CheckConfirmationCode(user.ConfirmationCode, payload.ConfirmationCode) {
		s.registerFailedAttempt(ctx, payload.Email)
		return nil, apperrors.NewBadRequestError("Неверный email или код подтверждения")
	}

	// Код одноразовый: после успешного обмена сбрасывается в сентинел.
	if err := s.userRepo.SetConfirmationCode(ctx, user.ID, utils.ConfirmationCodeSentinel); err != nil {
		return nil, err
	}
	if err := s.cacheRepo.Del(ctx, attemptsKey(payload.Email)); err != nil {
		s.logger.Warn("не удалось сбросить счётчик попыток", zap.Error(err))
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("генерация токенов: %w", err)
	}

	s.logger.Info("выдана пара токенов", zap.Uint64("userID", user.ID))
	return &dto.TokenPairDTO{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, email string) {
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey(email))
	if err != nil {
		s.logger.Warn("не удалось увеличить счётчик попыток", zap.Error(err))
		return
	}
	if attempts == 1 {
		if err := s.cacheRepo.Expire(ctx, attemptsKey(email), s.authCfg.LockoutDuration); err != nil {
			s.logger.Warn("не удалось выставить TTL счётчика попыток", zap.Error(err))
		}
	}
}

func (s *AuthService) RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AccessTokenDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(payload.Refresh)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Роль перечитывается из хранилища: она могла измениться после выдачи refresh.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	access, _, err := s.jwtSvc.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("генерация access-токена: %w", err)
	}

	return &dto.AccessTokenDTO{Access: access}, nil
}

func toUserDTO(user *entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
