package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rating-system/internal/entities"
	apperrors "rating-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const reviewFields = "r.id, r.author_id, u.username, r.title_id, r.text, r.score, r.pub_date"

type ReviewRepositoryInterface interface {
	GetReviewsByTitle(ctx context.Context, titleID, limit, offset uint64) ([]entities.Review, uint64, error)
	FindReview(ctx context.Context, titleID, reviewID uint64) (*entities.Review, error)
	ExistsForAuthor(ctx context.Context, authorID, titleID uint64) (bool, error)
	CreateReview(ctx context.Context, authorID, titleID uint64, text string, score int) (*entities.Review, error)
	UpdateReview(ctx context.Context, id uint64, text *string, score *int) (*entities.Review, error)
	DeleteReview(ctx context.Context, id uint64) error
}

type reviewRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReviewRepository(storage *pgxpool.Pool, logger *zap.Logger) ReviewRepositoryInterface {
	return &reviewRepository{storage: storage, logger: logger}
}

func (r *reviewRepository) scanRow(row pgx.Row) (*entities.Review, error) {
	var rev entities.Review
	err := row.Scan(&rev.ID, &rev.AuthorID, &rev.AuthorUsername, &rev.TitleID, &rev.Text, &rev.Score, &rev.PubDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования reviews: %w", err)
	}
	return &rev, nil
}

func (r *reviewRepository) GetReviewsByTitle(ctx context.Context, titleID, limit, offset uint64) ([]entities.Review, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM reviews WHERE title_id = $1", titleID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Review{}, 0, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC
		LIMIT $2 OFFSET $3`, reviewFields)

	rows, err := r.storage.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews := make([]entities.Review, 0)
	for rows.Next() {
		var rev entities.Review
		if err := rows.Scan(&rev.ID, &rev.AuthorID, &rev.AuthorUsername, &rev.TitleID, &rev.Text, &rev.Score, &rev.PubDate); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, total, rows.Err()
}

func (r *reviewRepository) FindReview(ctx context.Context, titleID, reviewID uint64) (*entities.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1 AND r.title_id = $2`, reviewFields)
	return r.scanRow(r.storage.QueryRow(ctx, query, reviewID, titleID))
}

func (r *reviewRepository) ExistsForAuthor(ctx context.Context, authorID, titleID uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM reviews WHERE author_id = $1 AND title_id = $2)",
		authorID, titleID,
	).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) CreateReview(ctx context.Context, authorID, titleID uint64, text string, score int) (*entities.Review, error) {
	query := fmt.Sprintf(`WITH inserted AS (
		INSERT INTO reviews (author_id, title_id, text, score) VALUES ($1, $2, $3, $4)
		RETURNING id, author_id, title_id, text, score, pub_date
	)
	SELECT %s FROM inserted r JOIN users u ON u.id = r.author_id`, reviewFields)

	rev, err := r.scanRow(r.storage.QueryRow(ctx, query, authorID, titleID, text, score))
	if err != nil {
		var pgErr *pgconn.PgError
		// Подстраховка на гонку: ограничение unique_review в БД.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewBadRequestError("Отзыв уже существует")
		}
		return nil, err
	}
	return rev, nil
}

func (r *reviewRepository) UpdateReview(ctx context.Context, id uint64, text *string, score *int) (*entities.Review, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if text != nil {
		setClauses = append(setClauses, fmt.Sprintf("text = $%d", argID))
		args = append(args, *text)
		argID++
	}
	if score != nil {
		setClauses = append(setClauses, fmt.Sprintf("score = $%d", argID))
		args = append(args, *score)
		argID++
	}
	if len(setClauses) == 0 {
		query := fmt.Sprintf("SELECT %s FROM reviews r JOIN users u ON u.id = r.author_id WHERE r.id = $1", reviewFields)
		return r.scanRow(r.storage.QueryRow(ctx, query, id))
	}

	query := fmt.Sprintf(`WITH updated AS (
		UPDATE reviews SET %s WHERE id = $%d
		RETURNING id, author_id, title_id, text, score, pub_date
	)
	SELECT %s FROM updated r JOIN users u ON u.id = r.author_id`,
		strings.Join(setClauses, ", "), argID, reviewFields)
	args = append(args, id)

	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
