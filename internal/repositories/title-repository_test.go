//go:build integration
// +build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"rating-system/internal/repositories"
	"rating-system/pkg/database/postgresql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// setupTestDB поднимает контейнер postgres, применяет миграции и
// возвращает пул соединений. Контейнер останавливается по завершении теста.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:alpine",
		postgres.WithDatabase("rating_test"),
		postgres.WithUsername("rating"),
		postgres.WithPassword("rating"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("остановка контейнера: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, postgresql.RunMigrations(dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestTitleRatingAggregation(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	logger := zap.NewNop()

	titleRepo := repositories.NewTitleRepository(pool, logger)
	reviewRepo := repositories.NewReviewRepository(pool, logger)
	userRepo := repositories.NewUserRepository(pool, logger)

	titleID, err := titleRepo.CreateTitle(ctx, nil, "Дюна", nil, "", nil)
	require.NoError(t, err)

	// без отзывов рейтинга нет
	title, err := titleRepo.FindTitle(ctx, titleID)
	require.NoError(t, err)
	assert.False(t, title.Rating.Valid, "рейтинг должен быть NULL, пока нет отзывов")

	first, err := userRepo.CreateUser(ctx, "first", "first@example.com", "user", nil)
	require.NoError(t, err)
	second, err := userRepo.CreateUser(ctx, "second", "second@example.com", "user", nil)
	require.NoError(t, err)

	firstReview, err := reviewRepo.CreateReview(ctx, first.ID, titleID, "отлично", 8)
	require.NoError(t, err)
	secondReview, err := reviewRepo.CreateReview(ctx, second.ID, titleID, "неплохо", 6)
	require.NoError(t, err)

	// {8, 6} -> среднее 7
	title, err = titleRepo.FindTitle(ctx, titleID)
	require.NoError(t, err)
	require.True(t, title.Rating.Valid)
	assert.Equal(t, 7, title.Rating.Int)

	// {8, 7} -> среднее 7.5, округляется вверх до 8, а не усекается до 7
	newScore := 7
	_, err = reviewRepo.UpdateReview(ctx, secondReview.ID, nil, &newScore)
	require.NoError(t, err)

	title, err = titleRepo.FindTitle(ctx, titleID)
	require.NoError(t, err)
	require.True(t, title.Rating.Valid)
	assert.Equal(t, 8, title.Rating.Int)

	// после удаления отзыва рейтинг пересчитывается
	require.NoError(t, reviewRepo.DeleteReview(ctx, firstReview.ID))

	title, err = titleRepo.FindTitle(ctx, titleID)
	require.NoError(t, err)
	require.True(t, title.Rating.Valid)
	assert.Equal(t, 7, title.Rating.Int)

	// без последнего отзыва рейтинг снова NULL
	require.NoError(t, reviewRepo.DeleteReview(ctx, secondReview.ID))

	title, err = titleRepo.FindTitle(ctx, titleID)
	require.NoError(t, err)
	assert.False(t, title.Rating.Valid)
}

func TestTitleRatingInList(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	logger := zap.NewNop()

	titleRepo := repositories.NewTitleRepository(pool, logger)
	reviewRepo := repositories.NewReviewRepository(pool, logger)
	userRepo := repositories.NewUserRepository(pool, logger)

	ratedID, err := titleRepo.CreateTitle(ctx, nil, "Андалузский пёс", nil, "", nil)
	require.NoError(t, err)
	unratedID, err := titleRepo.CreateTitle(ctx, nil, "Бегущий по лезвию", nil, "", nil)
	require.NoError(t, err)

	author, err := userRepo.CreateUser(ctx, "author", "author@example.com", "user", nil)
	require.NoError(t, err)
	_, err = reviewRepo.CreateReview(ctx, author.ID, ratedID, "классика", 10)
	require.NoError(t, err)

	titles, total, err := titleRepo.GetTitles(ctx, repositories.TitleFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, titles, 2)

	byID := make(map[uint64]int, len(titles))
	for i, item := range titles {
		byID[item.ID] = i
	}
	rated := titles[byID[ratedID]]
	require.True(t, rated.Rating.Valid)
	assert.Equal(t, 10, rated.Rating.Int)
	assert.False(t, titles[byID[unratedID]].Rating.Valid)
}
