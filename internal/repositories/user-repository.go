package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rating-system/internal/dto"
	"rating-system/internal/entities"
	apperrors "rating-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	userTable  = "users"
	userFields = "id, username, email, role, bio, confirmation_code, created_at"
)

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, limit, offset uint64, search string) ([]entities.User, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, username, email, role string, bio *string) (*entities.User, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error)
	DeleteUser(ctx context.Context, id uint64) error
	SetConfirmationCode(ctx context.Context, id uint64, codeHash string) error
}

type userRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &userRepository{storage: storage, logger: logger}
}

func (r *userRepository) scanRow(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.Bio, &u.ConfirmationCode, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования users: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetUsers(ctx context.Context, limit, offset uint64, search string) ([]entities.User, uint64, error) {
	var total uint64
	var args []interface{}
	whereClause := ""

	if search != "" {
		whereClause = "WHERE email ILIKE $1 OR username ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", userTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	queryArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY username LIMIT $%d OFFSET $%d",
		userFields, userTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.Bio, &u.ConfirmationCode, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", userFields, userTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, id))
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE username = $1", userFields, userTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, username))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE email = $1", userFields, userTable)
	return r.scanRow(r.storage.QueryRow(ctx, query, email))
}

func (r *userRepository) CreateUser(ctx context.Context, username, email, role string, bio *string) (*entities.User, error) {
	query := fmt.Sprintf("INSERT INTO %s (username, email, role, bio) VALUES ($1, $2, $3, $4) RETURNING %s",
		userTable, userFields)

	user, err := r.scanRow(r.storage.QueryRow(ctx, query, username, email, role, bio))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewBadRequestError("Пользователь с таким username или email уже существует")
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if payload.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *payload.Username)
		argID++
	}
	if payload.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, *payload.Email)
		argID++
	}
	if payload.Role != nil {
		setClauses = append(setClauses, fmt.Sprintf("role = $%d", argID))
		args = append(args, *payload.Role)
		argID++
	}
	if payload.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", argID))
		args = append(args, *payload.Bio)
		argID++
	}
	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		userTable, strings.Join(setClauses, ", "), argID, userFields)
	args = append(args, id)

	user, err := r.scanRow(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewBadRequestError("Пользователь с таким username или email уже существует")
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", userTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetConfirmationCode(ctx context.Context, id uint64, codeHash string) error {
	query := fmt.Sprintf("UPDATE %s SET confirmation_code = $1 WHERE id = $2", userTable)
	result, err := r.storage.Exec(ctx, query, codeHash, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
