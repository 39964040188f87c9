package services

import (
	"context"
	"time"

	"rating-system/internal/authz"
	"rating-system/internal/dto"
	"rating-system/internal/entities"
	"rating-system/internal/repositories"
	apperrors "rating-system/pkg/errors"
	"rating-system/pkg/utils"

	"go.uber.org/zap"
)

type ReviewServiceInterface interface {
	GetReviews(ctx context.Context, titleID uint64, filter utils.Filter) ([]dto.ReviewDTO, uint64, error)
	FindReview(ctx context.Context, titleID, reviewID uint64) (*dto.ReviewDTO, error)
	CreateReview(ctx context.Context, titleID uint64, payload dto.CreateReviewDTO) (*dto.ReviewDTO, error)
	UpdateReview(ctx context.Context, titleID, reviewID uint64, payload dto.UpdateReviewDTO) (*dto.ReviewDTO, error)
	DeleteReview(ctx context.Context, titleID, reviewID uint64) error
}

type ReviewService struct {
	reviewRepo repositories.ReviewRepositoryInterface
	titleRepo  repositories.TitleRepositoryInterface
	logger     *zap.Logger
}

func NewReviewService(
	reviewRepo repositories.ReviewRepositoryInterface,
	titleRepo repositories.TitleRepositoryInterface,
	logger *zap.Logger,
) ReviewServiceInterface {
	return &ReviewService{reviewRepo: reviewRepo, titleRepo: titleRepo, logger: logger}
}

// ensureTitle: отзывы под несуществующим произведением — это 404
// ещё до проверки прав.
func (s *ReviewService) ensureTitle(ctx context.Context, titleID uint64) error {
	_, err := s.titleRepo.FindTitle(ctx, titleID)
	return err
}

func (s *ReviewService) GetReviews(ctx context.Context, titleID uint64, filter utils.Filter) ([]dto.ReviewDTO, uint64, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionList, authz.ResourceReview, 0) {
		return nil, 0, apperrors.ErrForbidden
	}

	reviews, total, err := s.reviewRepo.GetReviewsByTitle(ctx, titleID, uint64(filter.Limit), uint64(filter.Offset))
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.ReviewDTO, 0, len(reviews))
	for i := range reviews {
		dtos = append(dtos, toReviewDTO(&reviews[i]))
	}
	return dtos, total, nil
}

func (s *ReviewService) FindReview(ctx context.Context, titleID, reviewID uint64) (*dto.ReviewDTO, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionRetrieve, authz.ResourceReview, review.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	reviewDTO := toReviewDTO(review)
	return &reviewDTO, nil
}

func (s *ReviewService) CreateReview(ctx context.Context, titleID uint64, payload dto.CreateReviewDTO) (*dto.ReviewDTO, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionCreate, authz.ResourceReview, 0) {
		return nil, apperrors.ErrForbidden
	}

	// Не более одного отзыва на произведение от одного автора.
	exists, err := s.reviewRepo.ExistsForAuthor(ctx, actor.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewBadRequestError("Отзыв уже существует")
	}

	review, err := s.reviewRepo.CreateReview(ctx, actor.ID, titleID, payload.Text, payload.Score)
	if err != nil {
		return nil, err
	}

	s.logger.Info("отзыв создан",
		zap.Uint64("reviewID", review.ID), zap.Uint64("titleID", titleID), zap.Uint64("authorID", actor.ID))

	reviewDTO := toReviewDTO(review)
	return &reviewDTO, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, titleID, reviewID uint64, payload dto.UpdateReviewDTO) (*dto.ReviewDTO, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionPartialUpdate, authz.ResourceReview, review.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	updated, err := s.reviewRepo.UpdateReview(ctx, review.ID, payload.Text, payload.Score)
	if err != nil {
		return nil, err
	}
	reviewDTO := toReviewDTO(updated)
	return &reviewDTO, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, titleID, reviewID uint64) error {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return err
	}

	review, err := s.reviewRepo.FindReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionDestroy, authz.ResourceReview, review.AuthorID) {
		return apperrors.ErrForbidden
	}

	return s.reviewRepo.DeleteReview(ctx, review.ID)
}

func toReviewDTO(r *entities.Review) dto.ReviewDTO {
	return dto.ReviewDTO{
		ID:      r.ID,
		Author:  r.AuthorUsername,
		TitleID: r.TitleID,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate.Format(time.RFC3339),
	}
}
