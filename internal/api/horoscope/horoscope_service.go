package horoscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/astraldaily/horoscope-api/app/observability/metrics"
	"github.com/astraldaily/horoscope-api/internal/types"
	"github.com/astraldaily/horoscope-api/internal/zodiac"
)

// historyWindow is the trailing range served by History.
const historyWindow = 7 * 24 * time.Hour

var _ HoroscopeService = (*ServiceImpl)(nil)

// UserStore is the slice of the auth repository the horoscope service needs
// to resolve the caller's stored zodiac sign.
type UserStore interface {
	GetUserByID(ctx context.Context, userID string) (*types.User, error)
}

// HoroscopeService defines the daily horoscope operations.
type HoroscopeService interface {
	// Today returns the caller's horoscope for the current UTC day,
	// generating and persisting it on first request.
	Today(ctx context.Context, userID string) (*types.HoroscopeRecord, error)

	// History returns the caller's sign and the trailing 7 days of records,
	// newest first.
	History(ctx context.Context, userID string) (zodiac.Sign, []types.HoroscopeRecord, error)
}

// ServiceImpl implements HoroscopeService as a read-through cache over the
// horoscopes table. The (user_id, date) unique index is the only guard
// against concurrent first-of-day generation; an in-process cache sits in
// front of the table for repeat reads within a day.
type ServiceImpl struct {
	logger *slog.Logger
	repo   Repo
	users  UserStore
	cache  *gocache.Cache
	now    func() time.Time
}

func NewService(repo Repo, users UserStore, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		users:  users,
		// Entries expire on their own; the sweep just reclaims memory.
		cache: gocache.New(24*time.Hour, time.Hour),
		now:   time.Now,
	}
}

// todayUTC truncates the current time to UTC midnight. One anchor for every
// user keeps a (user, day) pair from splitting across timezones.
func (s *ServiceImpl) todayUTC() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}

func cacheKey(userID string, day time.Time) string {
	return userID + "|" + day.Format("2006-01-02")
}

func (s *ServiceImpl) Today(ctx context.Context, userID string) (*types.HoroscopeRecord, error) {
	today := s.todayUTC()
	key := cacheKey(userID, today)

	if cached, found := s.cache.Get(key); found {
		if rec, ok := cached.(*types.HoroscopeRecord); ok {
			metrics.Get().HoroscopeCacheHitsTotal.Add(ctx, 1)
			return rec, nil
		}
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	rec, err := s.repo.GetByUserAndDate(ctx, uid, today)
	if err == nil {
		metrics.Get().HoroscopeCacheHitsTotal.Add(ctx, 1)
		s.cacheUntilEndOfDay(key, rec, today)
		return rec, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	// First request of the day: generate from the stored sign and persist.
	rec = &types.HoroscopeRecord{
		ID:         uuid.New(),
		UserID:     uid,
		ZodiacSign: user.ZodiacSign,
		Content:    zodiac.Horoscope(user.ZodiacSign),
		Date:       today,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		if errors.Is(err, types.ErrConflict) {
			// Another request won the insert race; its row is the day's
			// horoscope, so read and return that instead of erroring.
			metrics.Get().HoroscopeRaceLossesTotal.Add(ctx, 1)
			s.logger.InfoContext(ctx, "Lost first-of-day insert race, re-reading",
				slog.String("user_id", userID))
			winner, readErr := s.repo.GetByUserAndDate(ctx, uid, today)
			if readErr != nil {
				return nil, readErr
			}
			s.cacheUntilEndOfDay(key, winner, today)
			return winner, nil
		}
		return nil, err
	}

	metrics.Get().HoroscopeGeneratedTotal.Add(ctx, 1)
	s.cacheUntilEndOfDay(key, rec, today)
	return rec, nil
}

func (s *ServiceImpl) History(ctx context.Context, userID string) (zodiac.Sign, []types.HoroscopeRecord, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return "", nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	since := s.todayUTC().Add(-historyWindow)
	records, err := s.repo.ListSince(ctx, uid, since)
	if err != nil {
		return "", nil, err
	}
	return user.ZodiacSign, records, nil
}

// cacheUntilEndOfDay stores only content that is already persisted; the table
// stays the source of truth.
func (s *ServiceImpl) cacheUntilEndOfDay(key string, rec *types.HoroscopeRecord, today time.Time) {
	ttl := today.Add(24 * time.Hour).Sub(s.now().UTC())
	if ttl <= 0 {
		return
	}
	s.cache.Set(key, rec, ttl)
}
