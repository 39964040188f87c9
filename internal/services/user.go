package services

import (
	"context"

	"rating-system/internal/authz"
	"rating-system/internal/dto"
	"rating-system/internal/entities"
	"rating-system/internal/repositories"
	apperrors "rating-system/pkg/errors"
	"rating-system/pkg/utils"

	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter utils.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, username string) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, username string, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, username string) error
	GetMe(ctx context.Context) (*dto.UserDTO, error)
	UpdateMe(ctx context.Context, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, filter utils.Filter) ([]dto.UserDTO, uint64, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionList, authz.ResourceUser, 0) {
		return nil, 0, apperrors.ErrForbidden
	}

	users, total, err := s.userRepo.GetUsers(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, toUserDTO(&users[i]))
	}
	return dtos, total, nil
}

func (s *UserService) FindUser(ctx context.Context, username string) (*dto.UserDTO, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionRetrieve, authz.ResourceUser, 0) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	userDTO := toUserDTO(user)
	return &userDTO, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionCreate, authz.ResourceUser, 0) {
		return nil, apperrors.ErrForbidden
	}

	role := payload.Role
	if role == "" {
		role = entities.RoleUser
	}

	user, err := s.userRepo.CreateUser(ctx, payload.Username, payload.Email, role, payload.Bio)
	if err != nil {
		return nil, err
	}

	s.logger.Info("пользователь создан администратором",
		zap.String("username", user.Username), zap.Uint64("adminID", actor.ID))

	userDTO := toUserDTO(user)
	return &userDTO, nil
}

func (s *UserService) UpdateUser(ctx context.Context, username string, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionPartialUpdate, authz.ResourceUser, 0) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateUser(ctx, user.ID, payload)
	if err != nil {
		return nil, err
	}
	userDTO := toUserDTO(updated)
	return &userDTO, nil
}

func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionDestroy, authz.ResourceUser, 0) {
		return apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.userRepo.DeleteUser(ctx, user.ID)
}

func (s *UserService) GetMe(ctx context.Context) (*dto.UserDTO, error) {
	userID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	userDTO := toUserDTO(user)
	return &userDTO, nil
}

func (s *UserService) UpdateMe(ctx context.Context, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	userID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	actor := actorFromContext(ctx)
	// Поле role может менять только админ.
	if payload.Role != nil && !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Только админ может менять роль")
	}

	updated, err := s.userRepo.UpdateUser(ctx, userID, payload)
	if err != nil {
		return nil, err
	}
	userDTO := toUserDTO(updated)
	return &userDTO, nil
}
