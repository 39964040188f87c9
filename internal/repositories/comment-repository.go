package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rating-system/internal/entities"
	apperrors "rating-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const commentFields = "c.id, c.author_id, u.username, c.review_id, c.text, c.pub_date"

type CommentRepositoryInterface interface {
	GetCommentsByReview(ctx context.Context, reviewID, limit, offset uint64) ([]entities.Comment, uint64, error)
	FindComment(ctx context.Context, reviewID, commentID uint64) (*entities.Comment, error)
	CreateComment(ctx context.Context, authorID, reviewID uint64, text string) (*entities.Comment, error)
	UpdateComment(ctx context.Context, id uint64, text *string) (*entities.Comment, error)
	DeleteComment(ctx context.Context, id uint64) error
}

type commentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCommentRepository(storage *pgxpool.Pool, logger *zap.Logger) CommentRepositoryInterface {
	return &commentRepository{storage: storage, logger: logger}
}

func (r *commentRepository) scanRow(row pgx.Row) (*entities.Comment, error) {
	var c entities.Comment
	err := row.Scan(&c.ID, &c.AuthorID, &c.AuthorUsername, &c.ReviewID, &c.Text, &c.PubDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования comments: %w", err)
	}
	return &c, nil
}

func (r *commentRepository) GetCommentsByReview(ctx context.Context, reviewID, limit, offset uint64) ([]entities.Comment, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM comments WHERE review_id = $1", reviewID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Comment{}, 0, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY c.pub_date DESC
		LIMIT $2 OFFSET $3`, commentFields)

	rows, err := r.storage.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := make([]entities.Comment, 0)
	for rows.Next() {
		var c entities.Comment
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.AuthorUsername, &c.ReviewID, &c.Text, &c.PubDate); err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *commentRepository) FindComment(ctx context.Context, reviewID, commentID uint64) (*entities.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 AND c.review_id = $2`, commentFields)
	return r.scanRow(r.storage.QueryRow(ctx, query, commentID, reviewID))
}

func (r *commentRepository) CreateComment(ctx context.Context, authorID, reviewID uint64, text string) (*entities.Comment, error) {
	query := fmt.Sprintf(`WITH inserted AS (
		INSERT INTO comments (author_id, review_id, text) VALUES ($1, $2, $3)
		RETURNING id, author_id, review_id, text, pub_date
	)
	SELECT %s FROM inserted c JOIN users u ON u.id = c.author_id`, commentFields)

	return r.scanRow(r.storage.QueryRow(ctx, query, authorID, reviewID, text))
}

func (r *commentRepository) UpdateComment(ctx context.Context, id uint64, text *string) (*entities.Comment, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if text != nil {
		setClauses = append(setClauses, fmt.Sprintf("text = $%d", argID))
		args = append(args, *text)
		argID++
	}
	if len(setClauses) == 0 {
		query := fmt.Sprintf("SELECT %s FROM comments c JOIN users u ON u.id = c.author_id WHERE c.id = $1", commentFields)
		return r.scanRow(r.storage.QueryRow(ctx, query, id))
	}

	query := fmt.Sprintf(`WITH updated AS (
		UPDATE comments SET %s WHERE id = $%d
		RETURNING id, author_id, review_id, text, pub_date
	)
	SELECT %s FROM updated c JOIN users u ON u.id = c.author_id`,
		strings.Join(setClauses, ", "), argID, commentFields)
	args = append(args, id)

	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *commentRepository) DeleteComment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
