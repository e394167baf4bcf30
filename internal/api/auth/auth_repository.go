package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/astraldaily/horoscope-api/internal/types"
)

// uniqueViolation is the postgres SQLSTATE for a unique-index breach.
const uniqueViolation = "23505"

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo defines the persistence operations the auth service needs. PgxPool
// is the interface subset of pgxpool.Pool the implementation uses, so tests
// can substitute pgxmock.
type AuthRepo interface {
	CreateUser(ctx context.Context, user *types.User) error
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByID(ctx context.Context, userID string) (*types.User, error)
}

type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pool   PgxPool
}

func NewPostgresAuthRepo(pool PgxPool, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pool:   pool,
	}
}

// CreateUser inserts a new user row. The unique index on LOWER(email) turns a
// duplicate registration into types.ErrConflict.
func (r *PostgresAuthRepo) CreateUser(ctx context.Context, user *types.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, birthdate, zodiac_sign, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Birthdate, user.ZodiacSign, time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("email already registered: %w", types.ErrConflict)
		}
		return fmt.Errorf("insert user failed: %w: %w", types.ErrUnavailable, err)
	}
	return nil
}

// GetUserByEmail looks a user up by the normalized login key.
func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	var user types.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, birthdate, zodiac_sign, created_at, updated_at
         FROM users WHERE LOWER(email) = LOWER($1)`,
		email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Birthdate, &user.ZodiacSign, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", types.ErrNotFound)
		}
		return nil, fmt.Errorf("query user by email failed: %w: %w", types.ErrUnavailable, err)
	}
	return &user, nil
}

func (r *PostgresAuthRepo) GetUserByID(ctx context.Context, userID string) (*types.User, error) {
	var user types.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, birthdate, zodiac_sign, created_at, updated_at
         FROM users WHERE id = $1`,
		userID).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Birthdate, &user.ZodiacSign, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", types.ErrNotFound)
		}
		return nil, fmt.Errorf("query user by id failed: %w: %w", types.ErrUnavailable, err)
	}
	return &user, nil
}

var _ PgxPool = (*pgxpool.Pool)(nil)
