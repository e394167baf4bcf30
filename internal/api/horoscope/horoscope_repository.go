package horoscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/astraldaily/horoscope-api/app/observability/metrics"
	"github.com/astraldaily/horoscope-api/internal/types"
)

const uniqueViolation = "23505"

var _ Repo = (*PostgresRepo)(nil)

// Repo defines the persistence operations for daily horoscope records.
type Repo interface {
	// GetByUserAndDate returns the record for (userID, date), or
	// types.ErrNotFound when no horoscope exists for that day yet.
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*types.HoroscopeRecord, error)

	// Insert persists a new record. A breach of the (user_id, date) unique
	// index surfaces as types.ErrConflict.
	Insert(ctx context.Context, record *types.HoroscopeRecord) error

	// ListSince returns the user's records with date >= since, newest first.
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.HoroscopeRecord, error)
}

// PgxPool is the subset of pgxpool.Pool the repository uses, substitutable
// with pgxmock in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresRepo struct {
	logger *slog.Logger
	pool   PgxPool
}

func NewPostgresRepo(pool PgxPool, logger *slog.Logger) *PostgresRepo {
	return &PostgresRepo{
		logger: logger,
		pool:   pool,
	}
}

func (r *PostgresRepo) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*types.HoroscopeRecord, error) {
	start := time.Now()
	var rec types.HoroscopeRecord
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, zodiac_sign, content, date, created_at
         FROM horoscopes WHERE user_id = $1 AND date = $2`,
		userID, date).Scan(&rec.ID, &rec.UserID, &rec.ZodiacSign, &rec.Content, &rec.Date, &rec.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no horoscope for day: %w", types.ErrNotFound)
		}
		return nil, fmt.Errorf("query horoscope failed: %w: %w", types.ErrUnavailable, err)
	}
	return &rec, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, record *types.HoroscopeRecord) error {
	start := time.Now()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO horoscopes (id, user_id, zodiac_sign, content, date, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, record.UserID, record.ZodiacSign, record.Content, record.Date, record.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Another request generated today's horoscope first.
			return fmt.Errorf("horoscope already exists for day: %w", types.ErrConflict)
		}
		return fmt.Errorf("insert horoscope failed: %w: %w", types.ErrUnavailable, err)
	}
	return nil
}

func (r *PostgresRepo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.HoroscopeRecord, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, zodiac_sign, content, date, created_at
         FROM horoscopes WHERE user_id = $1 AND date >= $2
         ORDER BY date DESC`,
		userID, since)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("query horoscope history failed: %w: %w", types.ErrUnavailable, err)
	}
	defer rows.Close()

	var records []types.HoroscopeRecord
	for rows.Next() {
		var rec types.HoroscopeRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ZodiacSign, &rec.Content, &rec.Date, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan horoscope row failed: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate horoscope rows failed: %w: %w", types.ErrUnavailable, err)
	}
	return records, nil
}

var _ PgxPool = (*pgxpool.Pool)(nil)
