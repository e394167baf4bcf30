// Package types holds the domain models and errors shared across handler,
// service and repository layers.
package types

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/astraldaily/horoscope-api/internal/zodiac"
)

var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrValidation      = errors.New("validation failed")
	ErrUnavailable     = errors.New("datastore unavailable")
)

// User is the stored account record. The password hash is never serialized.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Birthdate    time.Time   `json:"birthdate"`
	ZodiacSign   zodiac.Sign `json:"zodiacSign"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// HoroscopeRecord is one persisted daily horoscope. At most one row exists
// per (UserID, Date) pair; Date is always a UTC midnight.
type HoroscopeRecord struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"userId"`
	ZodiacSign zodiac.Sign `json:"zodiacSign"`
	Content    string      `json:"content"`
	Date       time.Time   `json:"date"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Claims represents the custom claims included in the JWT access token.
type Claims struct {
	UserID               string `json:"uid"`
	Email                string `json:"eml"`
	jwt.RegisteredClaims        // Embed standard claims (ExpiresAt, IssuedAt, Subject, etc.).
}

// Response represents a generic API response for success or error messages.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
