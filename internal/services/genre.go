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

type GenreServiceInterface interface {
	GetGenres(ctx context.Context, filter utils.Filter) ([]dto.GenreDTO, uint64, error)
	CreateGenre(ctx context.Context, payload dto.CreateGenreDTO) (*dto.GenreDTO, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type GenreService struct {
	genreRepo repositories.GenreRepositoryInterface
	logger    *zap.Logger
}

func NewGenreService(genreRepo repositories.GenreRepositoryInterface, logger *zap.Logger) GenreServiceInterface {
	return &GenreService{genreRepo: genreRepo, logger: logger}
}

func (s *GenreService) GetGenres(ctx context.Context, filter utils.Filter) ([]dto.GenreDTO, uint64, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionList, authz.ResourceGenre, 0) {
		return nil, 0, apperrors.ErrForbidden
	}

	genres, total, err := s.genreRepo.GetGenres(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.GenreDTO, 0, len(genres))
	for _, g := range genres {
		dtos = append(dtos, dto.GenreDTO{Name: g.Name, Slug: g.Slug})
	}
	return dtos, total, nil
}

func (s *GenreService) CreateGenre(ctx context.Context, payload dto.CreateGenreDTO) (*dto.GenreDTO, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionCreate, authz.ResourceGenre, 0) {
		return nil, apperrors.ErrForbidden
	}

	genre, err := s.genreRepo.CreateGenre(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("жанр создан", zap.String("slug", genre.Slug))
	return &dto.GenreDTO{Name: genre.Name, Slug: genre.Slug}, nil
}

func (s *GenreService) DeleteGenre(ctx context.Context, slug string) error {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionDestroy, authz.ResourceGenre, 0) {
		return apperrors.ErrForbidden
	}

	return s.genreRepo.DeleteBySlug(ctx, slug)
}
