package horoscope

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/astraldaily/horoscope-api/internal/types"
	"github.com/astraldaily/horoscope-api/internal/zodiac"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*types.HoroscopeRecord, error) {
	args := m.Called(ctx, userID, date)
	if rec, ok := args.Get(0).(*types.HoroscopeRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) Insert(ctx context.Context, rec *types.HoroscopeRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.HoroscopeRecord, error) {
	args := m.Called(ctx, userID, since)
	if recs, ok := args.Get(0).([]types.HoroscopeRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserByID(ctx context.Context, userID string) (*types.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*types.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// fixedClock pins the service to a known instant so day boundaries are
// deterministic.
var fixedClock = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func newTestService(repo Repo, users UserStore) *ServiceImpl {
	svc := NewService(repo, users, slog.Default())
	svc.now = func() time.Time { return fixedClock }
	return svc
}

func taurusUser(id uuid.UUID) *types.User {
	return &types.User{
		ID:         id,
		Name:       "Test User",
		Email:      "test@example.com",
		Birthdate:  time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC),
		ZodiacSign: zodiac.Taurus,
	}
}

func TestToday(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("FirstRequestGeneratesAndPersists", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockUsers := new(MockUserStore)
		svc := newTestService(mockRepo, mockUsers)

		mockUsers.On("GetUserByID", ctx, userID.String()).Return(taurusUser(userID), nil)
		mockRepo.On("GetByUserAndDate", ctx, userID, today).Return(nil, types.ErrNotFound).Once()
		mockRepo.On("Insert", ctx, mock.AnythingOfType("*types.HoroscopeRecord")).Return(nil).Once()

		rec, err := svc.Today(ctx, userID.String())

		require.NoError(t, err)
		assert.Equal(t, userID, rec.UserID)
		assert.Equal(t, zodiac.Taurus, rec.ZodiacSign)
		assert.True(t, rec.Date.Equal(today))
		assert.Contains(t, zodiac.Templates(zodiac.Taurus), rec.Content)
		mockRepo.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
	})

	t.Run("SecondRequestServedFromCache", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockUsers := new(MockUserStore)
		svc := newTestService(mockRepo, mockUsers)

		mockUsers.On("GetUserByID", ctx, userID.String()).Return(taurusUser(userID), nil)
		mockRepo.On("GetByUserAndDate", ctx, userID, today).Return(nil, types.ErrNotFound).Once()
		mockRepo.On("Insert", ctx, mock.AnythingOfType("*types.HoroscopeRecord")).Return(nil).Once()

		first, err := svc.Today(ctx, userID.String())
		require.NoError(t, err)

		// No further repo calls expected: the cached record is returned.
		second, err := svc.Today(ctx, userID.String())
		require.NoError(t, err)
		assert.Equal(t, first.Content, second.Content)
		assert.Equal(t, first.ID, second.ID)
		mockRepo.AssertNumberOfCalls(t, "GetByUserAndDate", 1)
		mockRepo.AssertNumberOfCalls(t, "Insert", 1)
	})

	t.Run("ExistingRowReadThrough", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockUsers := new(MockUserStore)
		svc := newTestService(mockRepo, mockUsers)

		stored := &types.HoroscopeRecord{
			ID:         uuid.New(),
			UserID:     userID,
			ZodiacSign: zodiac.Taurus,
			Content:    "Stored content from an earlier process.",
			Date:       today,
		}
		mockUsers.On("GetUserByID", ctx, userID.String()).Return(taurusUser(userID), nil)
		mockRepo.On("GetByUserAndDate", ctx, userID, today).Return(stored, nil).Once()

		rec, err := svc.Today(ctx, userID.String())

		require.NoError(t, err)
		assert.Equal(t, stored.ID, rec.ID)
		assert.Equal(t, stored.Content, rec.Content)
		mockRepo.AssertNotCalled(t, "Insert")
	})

	t.Run("LostInsertRaceReturnsWinner", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockUsers := new(MockUserStore)
		svc := newTestService(mockRepo, mockUsers)

		winner := &types.HoroscopeRecord{
			ID:         uuid.New(),
			UserID:     userID,
			ZodiacSign: zodiac.Taurus,
			Content:    "Winner row inserted by the concurrent request.",
			Date:       today,
		}
		mockUsers.On("GetUserByID", ctx, userID.String()).Return(taurusUser(userID), nil)
		mockRepo.On("GetByUserAndDate", ctx, userID, today).Return(nil, types.ErrNotFound).Once()
		mockRepo.On("Insert", ctx, mock.AnythingOfType("*types.HoroscopeRecord")).Return(types.ErrConflict).Once()
		mockRepo.On("GetByUserAndDate", ctx, userID, today).Return(winner, nil).Once()

		rec, err := svc.Today(ctx, userID.String())

		require.NoError(t, err)
		assert.Equal(t, winner.ID, rec.ID)
		assert.Equal(t, winner.Content, rec.Content)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NewDayGeneratesAgain", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockUsers := new(MockUserStore)
		svc := newTestService(mockRepo, mockUsers)

		clock := fixedClock
		svc.now = func() time.Time { return clock }

		mockUsers.On("GetUserByID", ctx, userID.String()).Return(taurusUser(userID), nil)
		mockRepo.On("GetByUserAndDate", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil, types.ErrNotFound)
		mockRepo.On("Insert", ctx, mock.AnythingOfType("*types.HoroscopeRecord")).Return(nil)

		first, err := svc.Today(ctx, userID.String())
		require.NoError(t, err)

		clock = clock.Add(24 * time.Hour)

		second, err := svc.Today(ctx, userID.String())
		require.NoError(t, err)

		assert.NotEqual(t, first.Date, second.Date)
		mockRepo.AssertNumberOfCalls(t, "Insert", 2)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockUsers := new(MockUserStore)
		svc := newTestService(mockRepo, mockUsers)

		missing := uuid.New()
		mockUsers.On("GetUserByID", ctx, missing.String()).Return(nil, types.ErrNotFound)

		rec, err := svc.Today(ctx, missing.String())

		assert.Nil(t, rec)
		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertNotCalled(t, "GetByUserAndDate")
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("ReturnsTrailingWeekNewestFirst", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockUsers := new(MockUserStore)
		svc := newTestService(mockRepo, mockUsers)

		records := []types.HoroscopeRecord{
			{UserID: userID, ZodiacSign: zodiac.Taurus, Date: today, Content: "today"},
			{UserID: userID, ZodiacSign: zodiac.Taurus, Date: today.AddDate(0, 0, -1), Content: "yesterday"},
			{UserID: userID, ZodiacSign: zodiac.Taurus, Date: today.AddDate(0, 0, -3), Content: "three days ago"},
		}
		since := today.Add(-historyWindow)

		mockUsers.On("GetUserByID", ctx, userID.String()).Return(taurusUser(userID), nil)
		mockRepo.On("ListSince", ctx, userID, since).Return(records, nil)

		sign, got, err := svc.History(ctx, userID.String())

		require.NoError(t, err)
		assert.Equal(t, zodiac.Taurus, sign)
		require.Len(t, got, 3)
		assert.Equal(t, "today", got[0].Content)
		assert.Equal(t, "yesterday", got[1].Content)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockUsers := new(MockUserStore)
		svc := newTestService(mockRepo, mockUsers)

		mockUsers.On("GetUserByID", ctx, userID.String()).Return(taurusUser(userID), nil)
		mockRepo.On("ListSince", ctx, userID, mock.AnythingOfType("time.Time")).Return([]types.HoroscopeRecord{}, nil)

		sign, got, err := svc.History(ctx, userID.String())

		require.NoError(t, err)
		assert.Equal(t, zodiac.Taurus, sign)
		assert.Empty(t, got)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		mockRepo := new(MockRepo)
		mockUsers := new(MockUserStore)
		svc := newTestService(mockRepo, mockUsers)

		missing := uuid.New()
		mockUsers.On("GetUserByID", ctx, missing.String()).Return(nil, types.ErrNotFound)

		_, got, err := svc.History(ctx, missing.String())

		assert.Nil(t, got)
		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertNotCalled(t, "ListSince")
	})
}

// Cache entries are scoped to a single UTC day so the following midnight
// always produces fresh content paths.
func TestCacheKeyScopedToDay(t *testing.T) {
	userID := uuid.NewString()
	day1 := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	assert.NotEqual(t, cacheKey(userID, day1), cacheKey(userID, day2))
	assert.Equal(t, userID+"|2025-03-10", cacheKey(userID, day1))
}

func TestCacheUntilEndOfDaySkipsExpired(t *testing.T) {
	svc := &ServiceImpl{
		logger: slog.Default(),
		cache:  gocache.New(24*time.Hour, time.Hour),
		now:    func() time.Time { return fixedClock },
	}
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	rec := &types.HoroscopeRecord{Content: "cached"}

	svc.cacheUntilEndOfDay("k", rec, today)
	_, found := svc.cache.Get("k")
	assert.True(t, found)

	// A day already over gets no cache entry.
	svc.cacheUntilEndOfDay("old", rec, today.Add(-48*time.Hour))
	_, found = svc.cache.Get("old")
	assert.False(t, found)
}
