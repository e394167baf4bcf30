package container

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/astraldaily/horoscope-api/app/db"
	"github.com/astraldaily/horoscope-api/config"
	"github.com/astraldaily/horoscope-api/internal/api/auth"
	"github.com/astraldaily/horoscope-api/internal/api/horoscope"
	"github.com/astraldaily/horoscope-api/internal/api/user"
)

// Container holds all application dependencies.
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	AuthHandler      *auth.AuthHandlerImpl
	HoroscopeHandler *horoscope.HandlerImpl
	UserHandler      *user.HandlerImpl
}

// NewContainer initializes the database pool and wires repositories,
// services and handlers together.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		return nil, err
	}

	// Repositories
	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	horoscopeRepo := horoscope.NewPostgresRepo(pool, logger)

	// Services
	authService := auth.NewAuthService(authRepo, cfg, logger)
	horoscopeService := horoscope.NewService(horoscopeRepo, authRepo, logger)
	userService := user.NewService(authRepo, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		AuthHandler:      auth.NewAuthHandlerImpl(authService, logger),
		HoroscopeHandler: horoscope.NewHandlerImpl(horoscopeService, logger),
		UserHandler:      user.NewHandlerImpl(userService, logger),
	}, nil
}

// Close releases held resources.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
