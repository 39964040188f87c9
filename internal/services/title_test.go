package services

import (
	"context"
	"net/http"
	"testing"

	"rating-system/internal/dto"
	"rating-system/internal/entities"
	"rating-system/internal/repositories"
	apperrors "rating-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type titleFixture struct {
	svc          TitleServiceInterface
	titleRepo    *mockTitleRepo
	categoryRepo *mockCategoryRepo
	genreRepo    *mockGenreRepo
}

func newTitleFixture(t *testing.T) *titleFixture {
	t.Helper()
	titleRepo := newMockTitleRepo()
	categoryRepo := newMockCategoryRepo()
	genreRepo := newMockGenreRepo()

	_, err := categoryRepo.CreateCategory(context.Background(), dto.CreateCategoryDTO{Name: "Книги", Slug: "books"})
	require.NoError(t, err)
	_, err = genreRepo.CreateGenre(context.Background(), dto.CreateGenreDTO{Name: "Фантастика", Slug: "sci-fi"})
	require.NoError(t, err)
	_, err = genreRepo.CreateGenre(context.Background(), dto.CreateGenreDTO{Name: "Драма", Slug: "drama"})
	require.NoError(t, err)

	svc := NewTitleService(titleRepo, categoryRepo, genreRepo, mockTxManager{}, zap.NewNop())
	return &titleFixture{svc: svc, titleRepo: titleRepo, categoryRepo: categoryRepo, genreRepo: genreRepo}
}

func TestCreateTitleRequiresAdmin(t *testing.T) {
	f := newTitleFixture(t)
	payload := dto.CreateTitleDTO{Name: "Дюна"}

	_, err := f.svc.CreateTitle(anonymousCtx(), payload)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.svc.CreateTitle(ctxFor(10, entities.RoleUser), payload)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.svc.CreateTitle(ctxFor(20, entities.RoleModerator), payload)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateTitleResolvesSlugs(t *testing.T) {
	f := newTitleFixture(t)
	ctx := ctxFor(30, entities.RoleAdmin)
	year := 1965
	category := "books"

	res, err := f.svc.CreateTitle(ctx, dto.CreateTitleDTO{
		Name:     "Дюна",
		Year:     &year,
		Category: &category,
		Genre:    []string{"sci-fi", "drama"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Дюна", res.Name)
	assert.Len(t, f.titleRepo.genres[res.ID], 2)
}

func TestCreateTitleUnknownCategorySlug(t *testing.T) {
	f := newTitleFixture(t)
	ctx := ctxFor(30, entities.RoleAdmin)
	category := "no-such"

	_, err := f.svc.CreateTitle(ctx, dto.CreateTitleDTO{Name: "Дюна", Category: &category})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Len(t, f.titleRepo.titles, 0)
}

func TestCreateTitleUnknownGenreSlug(t *testing.T) {
	f := newTitleFixture(t)
	ctx := ctxFor(30, entities.RoleAdmin)

	_, err := f.svc.CreateTitle(ctx, dto.CreateTitleDTO{Name: "Дюна", Genre: []string{"sci-fi", "no-such"}})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Len(t, f.titleRepo.titles, 0)
}

func TestFindTitleOpenToAnonymous(t *testing.T) {
	f := newTitleFixture(t)
	created := f.titleRepo.addTitle("Дюна")

	res, err := f.svc.FindTitle(anonymousCtx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Дюна", res.Name)
	assert.False(t, res.Rating.Valid)
	assert.NotNil(t, res.Genre) // всегда пустой срез, не null
}

func TestUpdateTitleNotFound(t *testing.T) {
	f := newTitleFixture(t)
	name := "Новое имя"

	_, err := f.svc.UpdateTitle(ctxFor(30, entities.RoleAdmin), 999, dto.UpdateTitleDTO{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateTitle(t *testing.T) {
	f := newTitleFixture(t)
	created := f.titleRepo.addTitle("Дюна")
	name := "Дюна (переиздание)"
	category := "books"

	res, err := f.svc.UpdateTitle(ctxFor(30, entities.RoleAdmin), created.ID, dto.UpdateTitleDTO{
		Name:     &name,
		Category: &category,
	})
	require.NoError(t, err)
	assert.Equal(t, name, res.Name)
}

func TestDeleteTitleRequiresAdmin(t *testing.T) {
	f := newTitleFixture(t)
	created := f.titleRepo.addTitle("Дюна")

	assert.ErrorIs(t, f.svc.DeleteTitle(ctxFor(20, entities.RoleModerator), created.ID), apperrors.ErrForbidden)
	require.NoError(t, f.svc.DeleteTitle(ctxFor(30, entities.RoleAdmin), created.ID))

	_, err := f.svc.FindTitle(anonymousCtx(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetTitlesOpenToAnonymous(t *testing.T) {
	f := newTitleFixture(t)
	f.titleRepo.addTitle("Дюна")
	f.titleRepo.addTitle("Солярис")

	list, total, err := f.svc.GetTitles(anonymousCtx(), repositories.TitleFilter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, list, 2)
}
