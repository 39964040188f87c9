package repositories

import (
	"context"
	"errors"
	"fmt"

	"rating-system/internal/dto"
	"rating-system/internal/entities"
	apperrors "rating-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	genreTable  = "genres"
	genreFields = "id, name, slug"
)

type GenreRepositoryInterface interface {
	GetGenres(ctx context.Context, limit, offset uint64, search string) ([]entities.Genre, uint64, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Genre, error)
	CreateGenre(ctx context.Context, payload dto.CreateGenreDTO) (*entities.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewGenreRepository(storage *pgxpool.Pool, logger *zap.Logger) GenreRepositoryInterface {
	return &genreRepository{storage: storage, logger: logger}
}

func (r *genreRepository) GetGenres(ctx context.Context, limit, offset uint64, search string) ([]entities.Genre, uint64, error) {
	var total uint64
	var args []interface{}
	whereClause := ""

	if search != "" {
		whereClause = "WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", genreTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Genre{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY name LIMIT $%d OFFSET $%d",
		genreFields, genreTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	genres := make([]entities.Genre, 0)
	for rows.Next() {
		var g entities.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, 0, err
		}
		genres = append(genres, g)
	}
	return genres, total, rows.Err()
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*entities.Genre, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE slug = $1", genreFields, genreTable)
	var g entities.Genre
	err := r.storage.QueryRow(ctx, query, slug).Scan(&g.ID, &g.Name, &g.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *genreRepository) CreateGenre(ctx context.Context, payload dto.CreateGenreDTO) (*entities.Genre, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, slug) VALUES ($1, $2) RETURNING %s", genreTable, genreFields)
	var g entities.Genre
	err := r.storage.QueryRow(ctx, query, payload.Name, payload.Slug).Scan(&g.ID, &g.Name, &g.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewBadRequestError("Жанр с таким именем или slug уже существует")
		}
		return nil, err
	}
	return &g, nil
}

func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE slug = $1", genreTable)
	result, err := r.storage.Exec(ctx, query, slug)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
