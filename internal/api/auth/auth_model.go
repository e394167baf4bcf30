package auth

import (
	"regexp"
	"strings"
	"time"

	"github.com/astraldaily/horoscope-api/internal/types"
)

// emailPattern mirrors the address grammar users were registered against
// historically; changing it would strand existing accounts.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// SignupRequest represents the expected JSON body for user registration.
type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Birthdate string `json:"birthdate"` // YYYY-MM-DD
}

// LoginRequest represents the expected JSON body for user login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the successful JSON payload for both signup and login.
type AuthResponse struct {
	Message string      `json:"message"`
	User    *types.User `json:"user"`
	Token   string      `json:"token"`
}

// Normalize trims whitespace and lowercases the email, matching how emails
// are stored and indexed.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Birthdate = strings.TrimSpace(r.Birthdate)
}

// Validate checks fields in declaration order and returns the first failing
// field's human-readable message, or "" when the request is valid.
func (r *SignupRequest) Validate(now time.Time) string {
	if r.Name == "" {
		return "Name is required"
	}
	if len(r.Name) < 2 {
		return "Name must be at least 2 characters long"
	}
	if len(r.Name) > 50 {
		return "Name must not exceed 50 characters"
	}
	if r.Email == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(r.Email) {
		return "Please enter a valid email address"
	}
	if r.Password == "" {
		return "Password is required"
	}
	if len(r.Password) < 6 {
		return "Password must be at least 6 characters long"
	}
	if r.Birthdate == "" {
		return "Birthdate is required"
	}
	birthdate, err := time.Parse("2006-01-02", r.Birthdate)
	if err != nil {
		return "Birthdate must be a valid date in YYYY-MM-DD format"
	}
	if birthdate.After(now) {
		return "Birthdate cannot be in the future"
	}
	return ""
}

// ParsedBirthdate returns the birthdate as a UTC date. Validate must have
// passed first.
func (r *SignupRequest) ParsedBirthdate() time.Time {
	birthdate, _ := time.Parse("2006-01-02", r.Birthdate)
	return birthdate
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate returns the first failing field's message, or "".
func (r *LoginRequest) Validate() string {
	if r.Email == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(r.Email) {
		return "Please enter a valid email address"
	}
	if r.Password == "" {
		return "Password is required"
	}
	return ""
}
