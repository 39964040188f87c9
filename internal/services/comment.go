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

type CommentServiceInterface interface {
	GetComments(ctx context.Context, titleID, reviewID uint64, filter utils.Filter) ([]dto.CommentDTO, uint64, error)
	FindComment(ctx context.Context, titleID, reviewID, commentID uint64) (*dto.CommentDTO, error)
	CreateComment(ctx context.Context, titleID, reviewID uint64, payload dto.CreateCommentDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, titleID, reviewID, commentID uint64, payload dto.UpdateCommentDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, titleID, reviewID, commentID uint64) error
}

type CommentService struct {
	commentRepo repositories.CommentRepositoryInterface
	reviewRepo  repositories.ReviewRepositoryInterface
	titleRepo   repositories.TitleRepositoryInterface
	logger      *zap.Logger
}

func NewCommentService(
	commentRepo repositories.CommentRepositoryInterface,
	reviewRepo repositories.ReviewRepositoryInterface,
	titleRepo repositories.TitleRepositoryInterface,
	logger *zap.Logger,
) CommentServiceInterface {
	return &CommentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
		logger:      logger,
	}
}

// ensureReview: комментарий живёт только под существующей парой
// произведение/отзыв, иначе 404 до любых проверок прав.
func (s *CommentService) ensureReview(ctx context.Context, titleID, reviewID uint64) error {
	if _, err := s.titleRepo.FindTitle(ctx, titleID); err != nil {
		return err
	}
	_, err := s.reviewRepo.FindReview(ctx, titleID, reviewID)
	return err
}

func (s *CommentService) GetComments(ctx context.Context, titleID, reviewID uint64, filter utils.Filter) ([]dto.CommentDTO, uint64, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionList, authz.ResourceComment, 0) {
		return nil, 0, apperrors.ErrForbidden
	}

	comments, total, err := s.commentRepo.GetCommentsByReview(ctx, reviewID, uint64(filter.Limit), uint64(filter.Offset))
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.CommentDTO, 0, len(comments))
	for i := range comments {
		dtos = append(dtos, toCommentDTO(&comments[i]))
	}
	return dtos, total, nil
}

func (s *CommentService) FindComment(ctx context.Context, titleID, reviewID, commentID uint64) (*dto.CommentDTO, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionRetrieve, authz.ResourceComment, comment.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	commentDTO := toCommentDTO(comment)
	return &commentDTO, nil
}

func (s *CommentService) CreateComment(ctx context.Context, titleID, reviewID uint64, payload dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionCreate, authz.ResourceComment, 0) {
		return nil, apperrors.ErrForbidden
	}

	comment, err := s.commentRepo.CreateComment(ctx, actor.ID, reviewID, payload.Text)
	if err != nil {
		return nil, err
	}

	s.logger.Info("комментарий создан",
		zap.Uint64("commentID", comment.ID), zap.Uint64("reviewID", reviewID), zap.Uint64("authorID", actor.ID))

	commentDTO := toCommentDTO(comment)
	return &commentDTO, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, titleID, reviewID, commentID uint64, payload dto.UpdateCommentDTO) (*dto.CommentDTO, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionPartialUpdate, authz.ResourceComment, comment.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	updated, err := s.commentRepo.UpdateComment(ctx, comment.ID, payload.Text)
	if err != nil {
		return nil, err
	}
	commentDTO := toCommentDTO(updated)
	return &commentDTO, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, titleID, reviewID, commentID uint64) error {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return err
	}

	comment, err := s.commentRepo.FindComment(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionDestroy, authz.ResourceComment, comment.AuthorID) {
		return apperrors.ErrForbidden
	}

	return s.commentRepo.DeleteComment(ctx, comment.ID)
}

func toCommentDTO(c *entities.Comment) dto.CommentDTO {
	return dto.CommentDTO{
		ID:       c.ID,
		Author:   c.AuthorUsername,
		ReviewID: c.ReviewID,
		Text:     c.Text,
		PubDate:  c.PubDate.Format(time.RFC3339),
	}
}
