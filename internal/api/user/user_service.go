package user

import (
	"context"
	"log/slog"

	"github.com/astraldaily/horoscope-api/internal/types"
)

var _ UserService = (*ServiceImpl)(nil)

// UserRepo is the persistence slice the profile service needs; the auth
// repository satisfies it.
type UserRepo interface {
	GetUserByID(ctx context.Context, userID string) (*types.User, error)
}

type UserService interface {
	// GetUserProfile returns the stored profile for an authenticated user.
	GetUserProfile(ctx context.Context, userID string) (*types.User, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewService(repo UserRepo, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) GetUserProfile(ctx context.Context, userID string) (*types.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}
