package services

import (
	"context"
	"errors"

	"rating-system/internal/authz"
	"rating-system/internal/dto"
	"rating-system/internal/entities"
	"rating-system/internal/repositories"
	apperrors "rating-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TitleServiceInterface interface {
	GetTitles(ctx context.Context, filter repositories.TitleFilter) ([]dto.TitleDTO, uint64, error)
	FindTitle(ctx context.Context, id uint64) (*dto.TitleDTO, error)
	CreateTitle(ctx context.Context, payload dto.CreateTitleDTO) (*dto.TitleDTO, error)
	UpdateTitle(ctx context.Context, id uint64, payload dto.UpdateTitleDTO) (*dto.TitleDTO, error)
	DeleteTitle(ctx context.Context, id uint64) error
}

type TitleService struct {
	titleRepo    repositories.TitleRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	genreRepo    repositories.GenreRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewTitleService(
	titleRepo repositories.TitleRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	genreRepo repositories.GenreRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) TitleServiceInterface {
	return &TitleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *TitleService) GetTitles(ctx context.Context, filter repositories.TitleFilter) ([]dto.TitleDTO, uint64, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionList, authz.ResourceTitle, 0) {
		return nil, 0, apperrors.ErrForbidden
	}

	titles, total, err := s.titleRepo.GetTitles(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.TitleDTO, 0, len(titles))
	for i := range titles {
		dtos = append(dtos, toTitleDTO(&titles[i]))
	}
	return dtos, total, nil
}

func (s *TitleService) FindTitle(ctx context.Context, id uint64) (*dto.TitleDTO, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionRetrieve, authz.ResourceTitle, 0) {
		return nil, apperrors.ErrForbidden
	}

	title, err := s.titleRepo.FindTitle(ctx, id)
	if err != nil {
		return nil, err
	}
	titleDTO := toTitleDTO(title)
	return &titleDTO, nil
}

// CreateTitle: сначала разрешаются все slug'и (NotFound на любой неизвестный),
// затем произведение и связи с жанрами пишутся одной транзакцией.
func (s *TitleService) CreateTitle(ctx context.Context, payload dto.CreateTitleDTO) (*dto.TitleDTO, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionCreate, authz.ResourceTitle, 0) {
		return nil, apperrors.ErrForbidden
	}

	categoryID, err := s.resolveCategory(ctx, payload.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, payload.Genre)
	if err != nil {
		return nil, err
	}

	var titleID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.titleRepo.CreateTitle(ctx, tx, payload.Name, payload.Year, payload.Description, categoryID)
		if err != nil {
			return err
		}
		titleID = id

		for _, genreID := range genreIDs {
			if err := s.titleRepo.AddGenre(ctx, tx, titleID, genreID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("произведение создано", zap.Uint64("titleID", titleID), zap.String("name", payload.Name))
	return s.FindTitle(ctx, titleID)
}

// UpdateTitle обновляет name/year/description и ссылку на категорию, если её slug
// передан. Замена набора жанров при обновлении намеренно не поддерживается.
func (s *TitleService) UpdateTitle(ctx context.Context, id uint64, payload dto.UpdateTitleDTO) (*dto.TitleDTO, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionPartialUpdate, authz.ResourceTitle, 0) {
		return nil, apperrors.ErrForbidden
	}

	if _, err := s.titleRepo.FindTitle(ctx, id); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, payload.Category)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.UpdateTitle(ctx, id, payload.Name, payload.Year, payload.Description, categoryID); err != nil {
		return nil, err
	}

	return s.FindTitle(ctx, id)
}

func (s *TitleService) DeleteTitle(ctx context.Context, id uint64) error {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionDestroy, authz.ResourceTitle, 0) {
		return apperrors.ErrForbidden
	}

	return s.titleRepo.DeleteTitle(ctx, id)
}

func (s *TitleService) resolveCategory(ctx context.Context, slug *string) (*uint64, error) {
	if slug == nil {
		return nil, nil
	}
	category, err := s.categoryRepo.FindBySlug(ctx, *slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Категория с указанным slug не найдена")
		}
		return nil, err
	}
	return &category.ID, nil
}

func (s *TitleService) resolveGenres(ctx context.Context, slugs []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.genreRepo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError("Жанр с указанным slug не найден")
			}
			return nil, err
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}

func toTitleDTO(t *entities.Title) dto.TitleDTO {
	titleDTO := dto.TitleDTO{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]dto.GenreDTO, 0, len(t.Genres)),
	}

	if t.Category != nil {
		titleDTO.Category = &dto.CategoryDTO{Name: t.Category.Name, Slug: t.Category.Slug}
	}
	for _, g := range t.Genres {
		titleDTO.Genre = append(titleDTO.Genre, dto.GenreDTO{Name: g.Name, Slug: g.Slug})
	}
	return titleDTO
}
