package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/astraldaily/horoscope-api/internal/api"
	"github.com/astraldaily/horoscope-api/internal/types"
)

type AuthHandlerImpl struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandlerImpl(authService AuthService, logger *slog.Logger) *AuthHandlerImpl {
	return &AuthHandlerImpl{
		authService: authService,
		logger:      logger,
	}
}

// Signup godoc
// @Summary      Register User
// @Description  Creates a new user, derives the zodiac sign from the birthdate and returns an access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        signup body SignupRequest true "Signup Parameters"
// @Success      201 {object} AuthResponse "User Created"
// @Failure      400 {object} types.Response "Validation Error or Duplicate Email"
// @Failure      503 {object} types.Response "Store Unavailable"
// @Router       /auth/signup [post]
func (h *AuthHandlerImpl) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Signup"))

	var req SignupRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req.Normalize()
	if msg := req.Validate(time.Now()); msg != "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, msg)
		return
	}

	user, token, err := h.authService.Register(ctx, req.Name, req.Email, req.Password, req.ParsedBirthdate())
	if err != nil {
		switch {
		case errors.Is(err, types.ErrConflict):
			api.ErrorResponse(w, r, http.StatusBadRequest, "User already exists with this email")
		case errors.Is(err, types.ErrUnavailable):
			l.ErrorContext(ctx, "Datastore unavailable during signup", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Database not available")
		default:
			l.ErrorContext(ctx, "Signup failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, AuthResponse{
		Message: "User created successfully",
		User:    user,
		Token:   token,
	})
}

// Login godoc
// @Summary      Login User
// @Description  Authenticates a user by email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login body LoginRequest true "Login Parameters"
// @Success      200 {object} AuthResponse "Login Successful"
// @Failure      400 {object} types.Response "Validation Error or Bad Credentials"
// @Failure      503 {object} types.Response "Store Unavailable"
// @Router       /auth/login [post]
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req.Normalize()
	if msg := req.Validate(); msg != "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, msg)
		return
	}

	user, token, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrUnauthenticated):
			// One message for both unknown email and wrong password.
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid email or password")
		case errors.Is(err, types.ErrUnavailable):
			l.ErrorContext(ctx, "Datastore unavailable during login", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Database not available")
		default:
			l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, AuthResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}
