package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/astraldaily/horoscope-api/internal/types"
	"github.com/astraldaily/horoscope-api/internal/zodiac"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string, birthdate time.Time) (*types.User, string, error) {
	args := m.Called(ctx, name, email, password, birthdate)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*types.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*types.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, userID string) (*types.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	js, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(js))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestSignupHandler(t *testing.T) {
	mockService := new(MockAuthService)
	handler := NewAuthHandlerImpl(mockService, slog.Default())

	t.Run("Success", func(t *testing.T) {
		user := &types.User{
			ID:         uuid.New(),
			Name:       "Test User",
			Email:      "test@example.com",
			Birthdate:  time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC),
			ZodiacSign: zodiac.Taurus,
		}
		mockService.On("Register", mock.Anything, "Test User", "test@example.com", "password123",
			time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC)).
			Return(user, "signed-token", nil).Once()

		w := postJSON(t, handler.Signup, "/auth/signup", map[string]string{
			"name":      "Test User",
			"email":     "test@example.com",
			"password":  "password123",
			"birthdate": "1990-05-15",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "User created successfully", response["message"])
		assert.Equal(t, "signed-token", response["token"])

		userJSON := response["user"].(map[string]interface{})
		assert.Equal(t, "Taurus", userJSON["zodiacSign"])
		// The password must never appear in any returned representation
		assert.NotContains(t, userJSON, "password")
		assert.NotContains(t, userJSON, "passwordHash")
		assert.NotContains(t, w.Body.String(), "password")

		mockService.AssertExpectations(t)
	})

	t.Run("ValidationErrorFirstField", func(t *testing.T) {
		w := postJSON(t, handler.Signup, "/auth/signup", map[string]string{
			"name":      "A",
			"email":     "bad",
			"password":  "123",
			"birthdate": "1990-05-15",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Name must be at least 2 characters long", response["error"])
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockService.On("Register", mock.Anything, "Test User", "taken@example.com", "password123", mock.AnythingOfType("time.Time")).
			Return(nil, "", types.ErrConflict).Once()

		w := postJSON(t, handler.Signup, "/auth/signup", map[string]string{
			"name":      "Test User",
			"email":     "taken@example.com",
			"password":  "password123",
			"birthdate": "1990-05-15",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "User already exists with this email", response["error"])
		mockService.AssertExpectations(t)
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		mockService.On("Register", mock.Anything, "Test User", "down@example.com", "password123", mock.AnythingOfType("time.Time")).
			Return(nil, "", types.ErrUnavailable).Once()

		w := postJSON(t, handler.Signup, "/auth/signup", map[string]string{
			"name":      "Test User",
			"email":     "down@example.com",
			"password":  "password123",
			"birthdate": "1990-05-15",
		})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Database not available", response["error"])
		mockService.AssertExpectations(t)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		handler.Signup(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	mockService := new(MockAuthService)
	handler := NewAuthHandlerImpl(mockService, slog.Default())

	t.Run("Success", func(t *testing.T) {
		user := &types.User{
			ID:         uuid.New(),
			Email:      "test@example.com",
			ZodiacSign: zodiac.Taurus,
		}
		mockService.On("Login", mock.Anything, "test@example.com", "password123").
			Return(user, "signed-token", nil).Once()

		w := postJSON(t, handler.Login, "/auth/login", map[string]string{
			"email":    "test@example.com",
			"password": "password123",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Login successful", response["message"])
		assert.Equal(t, "signed-token", response["token"])
		mockService.AssertExpectations(t)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		mockService.On("Login", mock.Anything, "test@example.com", "wrongpassword").
			Return(nil, "", types.ErrUnauthenticated).Once()

		w := postJSON(t, handler.Login, "/auth/login", map[string]string{
			"email":    "test@example.com",
			"password": "wrongpassword",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		// Unknown email and wrong password share one message
		assert.Equal(t, "Invalid email or password", response["error"])
		mockService.AssertExpectations(t)
	})

	t.Run("MissingPassword", func(t *testing.T) {
		w := postJSON(t, handler.Login, "/auth/login", map[string]string{
			"email": "test@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Password is required", response["error"])
	})
}
