package pgxrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"user-crud-service/internal/domain/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
)

const tableName = "users"

var userColumns = []string{"id", "name", "email"}

// Querier is the subset of *pgxpool.Pool used by the repository.
// Every call borrows one pooled connection for one statement.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// UserRepoPgx implements the user Repository with raw SQL on a pgx pool.
type UserRepoPgx struct {
	db  Querier
	log *zap.Logger
	sb  sq.StatementBuilderType
}

// NewUserRepoPgx creates a new instance of UserRepoPgx.
func NewUserRepoPgx(db Querier, log *zap.Logger) *UserRepoPgx {
	return &UserRepoPgx{
		db:  db,
		log: log,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts a new user and returns the row as persisted.
func (r *UserRepoPgx) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	query, args, err := r.sb.Insert(tableName).
		Columns(userColumns...).
		Values(u.ID, u.Name, u.Email).
		Suffix("RETURNING id, name, email").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert: %w", err)
	}

	var created user.User
	if err := r.db.QueryRow(ctx, query, args...).Scan(&created.ID, &created.Name, &created.Email); err != nil {
		logger.WithContext(ctx, r.log).Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &created, nil
}

// List retrieves every user. No ordering is applied.
func (r *UserRepoPgx) List(ctx context.Context) ([]user.User, error) {
	query, args, err := r.sb.Select(userColumns...).From(tableName).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to scan users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []user.User{}
	}

	return users, nil
}

// GetByID retrieves a user by its identifier.
func (r *UserRepoPgx) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query, args, err := r.sb.Select(userColumns...).From(tableName).Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	var u user.User
	if err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%s", id))
		}
		logger.WithContext(ctx, r.log).Error("failed to get user from db", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// Ping verifies that the pool can reach the database.
func (r *UserRepoPgx) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanUser(row pgx.CollectableRow) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Email)
	return u, err
}
