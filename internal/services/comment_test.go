package services

import (
	"context"
	"testing"

	"rating-system/internal/dto"
	"rating-system/internal/entities"
	apperrors "rating-system/pkg/errors"
	"rating-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type commentFixture struct {
	svc    CommentServiceInterface
	title  *entities.Title
	review *entities.Review
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	titleRepo := newMockTitleRepo()
	reviewRepo := newMockReviewRepo()
	commentRepo := newMockCommentRepo()

	title := titleRepo.addTitle("Дюна")
	review, err := reviewRepo.CreateReview(context.Background(), 10, title.ID, "отзыв", 8)
	require.NoError(t, err)

	svc := NewCommentService(commentRepo, reviewRepo, titleRepo, zap.NewNop())
	return &commentFixture{svc: svc, title: title, review: review}
}

func TestGetCommentsUnknownParents(t *testing.T) {
	f := newCommentFixture(t)

	_, _, err := f.svc.GetComments(anonymousCtx(), 999, f.review.ID, utils.Filter{Limit: 20})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, _, err = f.svc.GetComments(anonymousCtx(), f.title.ID, 999, utils.Filter{Limit: 20})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateCommentUnknownReviewBeatsAuthz(t *testing.T) {
	f := newCommentFixture(t)

	// аноним под несуществующим отзывом получает 404, а не 403
	_, err := f.svc.CreateComment(anonymousCtx(), f.title.ID, 999, dto.CreateCommentDTO{Text: "текст"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateCommentAnonymousForbidden(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.CreateComment(anonymousCtx(), f.title.ID, f.review.ID, dto.CreateCommentDTO{Text: "текст"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateAndListComments(t *testing.T) {
	f := newCommentFixture(t)
	ctx := ctxFor(11, entities.RoleUser)

	created, err := f.svc.CreateComment(ctx, f.title.ID, f.review.ID, dto.CreateCommentDTO{Text: "согласен"})
	require.NoError(t, err)
	assert.Equal(t, f.review.ID, created.ReviewID)

	list, total, err := f.svc.GetComments(anonymousCtx(), f.title.ID, f.review.ID, utils.Filter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "согласен", list[0].Text)
}

func TestUpdateCommentOwnership(t *testing.T) {
	f := newCommentFixture(t)
	owner := ctxFor(11, entities.RoleUser)

	created, err := f.svc.CreateComment(owner, f.title.ID, f.review.ID, dto.CreateCommentDTO{Text: "исходный"})
	require.NoError(t, err)

	newText := "исправленный"

	stranger := ctxFor(12, entities.RoleUser)
	_, err = f.svc.UpdateComment(stranger, f.title.ID, f.review.ID, created.ID, dto.UpdateCommentDTO{Text: &newText})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := f.svc.UpdateComment(owner, f.title.ID, f.review.ID, created.ID, dto.UpdateCommentDTO{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, newText, updated.Text)
}

func TestDeleteCommentByModerator(t *testing.T) {
	f := newCommentFixture(t)
	owner := ctxFor(11, entities.RoleUser)

	created, err := f.svc.CreateComment(owner, f.title.ID, f.review.ID, dto.CreateCommentDTO{Text: "текст"})
	require.NoError(t, err)

	moderator := ctxFor(20, entities.RoleModerator)
	require.NoError(t, f.svc.DeleteComment(moderator, f.title.ID, f.review.ID, created.ID))

	_, err = f.svc.FindComment(anonymousCtx(), f.title.ID, f.review.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
