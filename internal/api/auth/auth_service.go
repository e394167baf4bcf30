package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/astraldaily/horoscope-api/app/observability/metrics"
	"github.com/astraldaily/horoscope-api/config"
	"github.com/astraldaily/horoscope-api/internal/types"
	"github.com/astraldaily/horoscope-api/internal/zodiac"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	// Register creates a new user, deriving the zodiac sign from the
	// birthdate, and returns the stored user plus an access token.
	Register(ctx context.Context, name, email, password string, birthdate time.Time) (*types.User, string, error)

	// Login authenticates a user by email and password and returns the user
	// plus an access token.
	Login(ctx context.Context, email, password string) (*types.User, string, error)

	// GetUserByID fetches a stored user, used by authenticated endpoints.
	GetUserByID(ctx context.Context, userID string) (*types.User, error)
}

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	logger *slog.Logger
	cfg    *config.Config
	repo   AuthRepo
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo AuthRepo, cfg *config.Config, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		cfg:    cfg,
		repo:   repo,
	}
}

// Register creates a new user. Duplicate emails surface as types.ErrConflict;
// the caller decides how to phrase that to the client.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string, birthdate time.Time) (*types.User, string, error) {
	// Uniqueness pre-check; the LOWER(email) unique index remains the final
	// arbiter under concurrent signups.
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", fmt.Errorf("email in use: %w", types.ErrConflict)
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &types.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Birthdate:    birthdate,
		// Computed once at creation and stored, never recomputed on read.
		ZodiacSign: zodiac.SignForDate(birthdate),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}

	metrics.Get().SignupRequestsTotal.Add(ctx, 1)
	s.logger.InfoContext(ctx, "User registered",
		slog.String("user_id", user.ID.String()),
		slog.String("zodiac_sign", user.ZodiacSign.String()),
	)
	return user, token, nil
}

// Login validates credentials. Unknown email and wrong password both collapse
// to types.ErrUnauthenticated to avoid account enumeration.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, "", fmt.Errorf("unknown email: %w", types.ErrUnauthenticated)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("password mismatch: %w", types.ErrUnauthenticated)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}

	metrics.Get().LoginRequestsTotal.Add(ctx, 1)
	return user, token, nil
}

func (s *AuthServiceImpl) GetUserByID(ctx context.Context, userID string) (*types.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// generateAccessToken signs an HS256 JWT carrying the user's id and email.
func (s *AuthServiceImpl) generateAccessToken(user *types.User) (string, error) {
	jwtCfg := s.cfg.JWT
	ttl := jwtCfg.TokenTTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}

	now := time.Now()
	claims := &types.Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{jwtCfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtCfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}
