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
	categoryTable  = "categories"
	categoryFields = "id, name, slug"
)

type CategoryRepositoryInterface interface {
	GetCategories(ctx context.Context, limit, offset uint64, search string) ([]entities.Category, uint64, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Category, error)
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCategoryRepository(storage *pgxpool.Pool, logger *zap.Logger) CategoryRepositoryInterface {
	return &categoryRepository{storage: storage, logger: logger}
}

func (r *categoryRepository) GetCategories(ctx context.Context, limit, offset uint64, search string) ([]entities.Category, uint64, error) {
	var total uint64
	var args []interface{}
	whereClause := ""

	if search != "" {
		whereClause = "WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", categoryTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Category{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY name LIMIT $%d OFFSET $%d",
		categoryFields, categoryTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	categories := make([]entities.Category, 0)
	for rows.Next() {
		var c entities.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE slug = $1", categoryFields, categoryTable)
	var c entities.Category
	err := r.storage.QueryRow(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.Category, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, slug) VALUES ($1, $2) RETURNING %s", categoryTable, categoryFields)
	var c entities.Category
	err := r.storage.QueryRow(ctx, query, payload.Name, payload.Slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewBadRequestError("Категория с таким именем или slug уже существует")
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE slug = $1", categoryTable)
	result, err := r.storage.Exec(ctx, query, slug)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
