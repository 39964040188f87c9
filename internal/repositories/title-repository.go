package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"rating-system/internal/entities"
	apperrors "rating-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ratingSelect — средний балл отзывов; NULL, когда отзывов нет.
// Пересчитывается на каждом чтении, без кэширования.
const ratingSelect = "(SELECT ROUND(AVG(r.score))::int FROM reviews r WHERE r.title_id = t.id) AS rating"

// TitleFilter — параметры выборки произведений.
type TitleFilter struct {
	Category string
	Genre    string
	Year     *int
	Name     string
	Limit    uint64
	Offset   uint64
}

type TitleRepositoryInterface interface {
	GetTitles(ctx context.Context, filter TitleFilter) ([]entities.Title, uint64, error)
	FindTitle(ctx context.Context, id uint64) (*entities.Title, error)
	CreateTitle(ctx context.Context, tx pgx.Tx, name string, year *int, description string, categoryID *uint64) (uint64, error)
	AddGenre(ctx context.Context, tx pgx.Tx, titleID, genreID uint64) error
	UpdateTitle(ctx context.Context, id uint64, name *string, year *int, description *string, categoryID *uint64) error
	DeleteTitle(ctx context.Context, id uint64) error
}

type titleRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTitleRepository(storage *pgxpool.Pool, logger *zap.Logger) TitleRepositoryInterface {
	return &titleRepository{storage: storage, logger: logger}
}

func (r *titleRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func applyTitleFilter(builder sq.SelectBuilder, filter TitleFilter) sq.SelectBuilder {
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"c.slug": filter.Category})
	}
	if filter.Genre != "" {
		builder = builder.Where(
			"EXISTS (SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id WHERE tg.title_id = t.id AND g.slug = ?)",
			filter.Genre,
		)
	}
	if filter.Year != nil {
		builder = builder.Where(sq.Eq{"t.year": *filter.Year})
	}
	if filter.Name != "" {
		builder = builder.Where("t.name ILIKE ?", "%"+filter.Name+"%")
	}
	return builder
}

func (r *titleRepository) GetTitles(ctx context.Context, filter TitleFilter) ([]entities.Title, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").
		From("titles AS t").
		LeftJoin("categories AS c ON c.id = t.category_id").
		PlaceholderFormat(sq.Dollar)
	countBuilder = applyTitleFilter(countBuilder, filter)

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("сборка count-запроса titles: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Title{}, 0, nil
	}

	builder := sq.Select(
		"t.id", "t.name", "t.year", "t.description", "t.category_id",
		"c.name AS category_name", "c.slug AS category_slug",
		ratingSelect,
	).
		From("titles AS t").
		LeftJoin("categories AS c ON c.id = t.category_id").
		PlaceholderFormat(sq.Dollar).
		OrderBy("t.name", "t.id")
	builder = applyTitleFilter(builder, filter)

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	querySQL, queryArgs, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("сборка запроса titles: %w", err)
	}

	rows, err := r.storage.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	titles := make([]entities.Title, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, err
		}
		titles = append(titles, *t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	genresByTitle, err := r.loadGenres(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range titles {
		titles[i].Genres = genresByTitle[titles[i].ID]
	}

	return titles, total, nil
}

func (r *titleRepository) FindTitle(ctx context.Context, id uint64) (*entities.Title, error) {
	builder := sq.Select(
		"t.id", "t.name", "t.year", "t.description", "t.category_id",
		"c.name AS category_name", "c.slug AS category_slug",
		ratingSelect,
	).
		From("titles AS t").
		LeftJoin("categories AS c ON c.id = t.category_id").
		Where(sq.Eq{"t.id": id}).
		PlaceholderFormat(sq.Dollar)

	querySQL, queryArgs, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка запроса title: %w", err)
	}

	t, err := scanTitle(r.storage.QueryRow(ctx, querySQL, queryArgs...))
	if err != nil {
		return nil, err
	}

	genresByTitle, err := r.loadGenres(ctx, []uint64{t.ID})
	if err != nil {
		return nil, err
	}
	t.Genres = genresByTitle[t.ID]

	return t, nil
}

func scanTitle(row pgx.Row) (*entities.Title, error) {
	var t entities.Title
	var categoryName, categorySlug *string

	err := row.Scan(&t.ID, &t.Name, &t.Year, &t.Description, &t.CategoryID,
		&categoryName, &categorySlug, &t.Rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования titles: %w", err)
	}

	if t.CategoryID.Valid && categoryName != nil && categorySlug != nil {
		t.Category = &entities.Category{
			ID:   t.CategoryID.Uint64,
			Name: *categoryName,
			Slug: *categorySlug,
		}
	}
	return &t, nil
}

func (r *titleRepository) loadGenres(ctx context.Context, titleIDs []uint64) (map[uint64][]entities.Genre, error) {
	result := make(map[uint64][]entities.Genre, len(titleIDs))
	if len(titleIDs) == 0 {
		return result, nil
	}

	query := `SELECT tg.title_id, g.id, g.name, g.slug
		FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name`

	rows, err := r.storage.Query(ctx, query, titleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var titleID uint64
		var g entities.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return nil, err
		}
		result[titleID] = append(result[titleID], g)
	}
	return result, rows.Err()
}

func (r *titleRepository) CreateTitle(ctx context.Context, tx pgx.Tx, name string, year *int, description string, categoryID *uint64) (uint64, error) {
	query := "INSERT INTO titles (name, year, description, category_id) VALUES ($1, $2, $3, $4) RETURNING id"
	var id uint64
	err := r.getQuerier(tx).QueryRow(ctx, query, name, year, description, categoryID).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *titleRepository) AddGenre(ctx context.Context, tx pgx.Tx, titleID, genreID uint64) error {
	query := `INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT unique_genre DO NOTHING`
	_, err := r.getQuerier(tx).Exec(ctx, query, titleID, genreID)
	return err
}

func (r *titleRepository) UpdateTitle(ctx context.Context, id uint64, name *string, year *int, description *string, categoryID *uint64) error {
	builder := sq.Update("titles").PlaceholderFormat(sq.Dollar).Where(sq.Eq{"id": id})

	changed := false
	if name != nil {
		builder = builder.Set("name", *name)
		changed = true
	}
	if year != nil {
		builder = builder.Set("year", *year)
		changed = true
	}
	if description != nil {
		builder = builder.Set("description", *description)
		changed = true
	}
	if categoryID != nil {
		builder = builder.Set("category_id", *categoryID)
		changed = true
	}
	if !changed {
		return nil
	}

	querySQL, queryArgs, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("сборка update-запроса titles: %w", err)
	}

	result, err := r.storage.Exec(ctx, querySQL, queryArgs...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *titleRepository) DeleteTitle(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM titles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
