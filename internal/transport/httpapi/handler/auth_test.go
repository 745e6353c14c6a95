package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargrid/lunargrid/internal/platform/user"
	"github.com/lunargrid/lunargrid/internal/transport/httpapi/handler"
)

type fakeUserService struct {
	registerErr error
	loginErr    error
}

func (f *fakeUserService) Register(_ context.Context, email, displayName, _ string) (*user.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &user.User{ID: uuid.New(), Email: email, DisplayName: displayName}, nil
}

func (f *fakeUserService) Login(_ context.Context, email, _ string) (*user.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &user.User{ID: uuid.New(), Email: email}, nil
}

type fakeJWTService struct{}

func (fakeJWTService) GenerateToken(_ uuid.UUID, _ string) (string, error) {
	return "test-token", nil
}

func TestAuthHandler_Register(t *testing.T) {
	h := handler.NewAuthHandler(&fakeUserService{}, fakeJWTService{})

	body := strings.NewReader(`{"email":"alice@example.com","display_name":"Alice","password":"password123"}`)
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", body))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "Alice", resp.User.DisplayName)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	h := handler.NewAuthHandler(&fakeUserService{}, fakeJWTService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"password123"}`},
		{"missing password", `{"email":"alice@example.com"}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandler_RegisterConflict(t *testing.T) {
	h := handler.NewAuthHandler(&fakeUserService{registerErr: user.ErrUserAlreadyExists}, fakeJWTService{})

	body := strings.NewReader(`{"email":"alice@example.com","password":"password123"}`)
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", body))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_LoginWrongCredentials(t *testing.T) {
	h := handler.NewAuthHandler(&fakeUserService{loginErr: user.ErrInvalidPassword}, fakeJWTService{})

	body := strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`)
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", body))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	h := handler.NewAuthHandler(&fakeUserService{}, fakeJWTService{})

	body := strings.NewReader(`{"email":"alice@example.com","password":"password123"}`)
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "test-token", resp.Token)
}
