package services

import (
	"context"

	"rating-system/internal/authz"
	"rating-system/internal/dto"
	"rating-system/internal/repositories"
	apperrors "rating-system/pkg/errors"
	"rating-system/pkg/utils"

	"go.uber.org/zap"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context, filter utils.Filter) ([]dto.CategoryDTO, uint64, error)
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, slug string) error
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface, logger *zap.Logger) CategoryServiceInterface {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

func (s *CategoryService) GetCategories(ctx context.Context, filter utils.Filter) ([]dto.CategoryDTO, uint64, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionList, authz.ResourceCategory, 0) {
		return nil, 0, apperrors.ErrForbidden
	}

	categories, total, err := s.categoryRepo.GetCategories(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, dto.CategoryDTO{Name: c.Name, Slug: c.Slug})
	}
	return dtos, total, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionCreate, authz.ResourceCategory, 0) {
		return nil, apperrors.ErrForbidden
	}

	category, err := s.categoryRepo.CreateCategory(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("категория создана", zap.String("slug", category.Slug))
	return &dto.CategoryDTO{Name: category.Name, Slug: category.Slug}, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, slug string) error {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionDestroy, authz.ResourceCategory, 0) {
		return apperrors.ErrForbidden
	}

	return s.categoryRepo.DeleteBySlug(ctx, slug)
}
