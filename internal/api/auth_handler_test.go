package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amecrec/ADIA/internal/config"
	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/service/auth"
	"github.com/Amecrec/ADIA/internal/store"
)

// fakeUserStore keeps users in a map keyed by email.
type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.users[user.Email]; exists {
		return store.ErrEmailExists
	}
	s.users[user.Email] = user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func newAuthHandler(t *testing.T) (*AuthHandler, *fakeUserStore) {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	users := newFakeUserStore()
	handler := NewAuthHandler(users, jwtService, auth.NewBcryptVerifier(), time.Hour)
	return handler, users
}

func postJSON(handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	handler, users := newAuthHandler(t)

	rec := postJSON(handler.Register, "/api/auth/register",
		`{"email":"maestra@escuela.mx","password":"correcthorsebattery"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The stored user carries only the hash, never the plaintext.
	stored := users.users["maestra@escuela.mx"]
	require.NotNil(t, stored)
	assert.Empty(t, stored.Password)
	assert.NotEmpty(t, stored.HashedPassword)
	assert.NotEqual(t, "correcthorsebattery", stored.HashedPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler, _ := newAuthHandler(t)

	body := `{"email":"maestra@escuela.mx","password":"correcthorsebattery"}`
	require.Equal(t, http.StatusCreated, postJSON(handler.Register, "/api/auth/register", body).Code)
	assert.Equal(t, http.StatusConflict, postJSON(handler.Register, "/api/auth/register", body).Code)
}

func TestRegisterValidation(t *testing.T) {
	handler, _ := newAuthHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"not-an-email","password":"correcthorsebattery"}`},
		{"short password", `{"email":"a@b.mx","password":"short"}`},
		{"missing fields", `{}`},
		{"malformed JSON", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(handler.Register, "/api/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	handler, _ := newAuthHandler(t)

	require.Equal(t, http.StatusCreated, postJSON(handler.Register, "/api/auth/register",
		`{"email":"maestra@escuela.mx","password":"correcthorsebattery"}`).Code)

	rec := postJSON(handler.Login, "/api/auth/login",
		`{"email":"maestra@escuela.mx","password":"correcthorsebattery"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
}

// Wrong password and unknown email produce identical responses.
func TestLoginInvalidCredentials(t *testing.T) {
	handler, _ := newAuthHandler(t)

	require.Equal(t, http.StatusCreated, postJSON(handler.Register, "/api/auth/register",
		`{"email":"maestra@escuela.mx","password":"correcthorsebattery"}`).Code)

	wrongPassword := postJSON(handler.Login, "/api/auth/login",
		`{"email":"maestra@escuela.mx","password":"wrongpassword1"}`)
	unknownEmail := postJSON(handler.Login, "/api/auth/login",
		`{"email":"nadie@escuela.mx","password":"correcthorsebattery"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestRefreshToken(t *testing.T) {
	handler, _ := newAuthHandler(t)

	rec := postJSON(handler.Register, "/api/auth/register",
		`{"email":"maestra@escuela.mx","password":"correcthorsebattery"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = postJSON(handler.RefreshToken, "/api/auth/refresh",
		`{"refresh_token":"`+registered.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed RefreshTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

// An access token is not accepted where a refresh token is required.
func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	handler, _ := newAuthHandler(t)

	rec := postJSON(handler.Register, "/api/auth/register",
		`{"email":"maestra@escuela.mx","password":"correcthorsebattery"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = postJSON(handler.RefreshToken, "/api/auth/refresh",
		`{"refresh_token":"`+registered.AccessToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshTokenGarbage(t *testing.T) {
	handler, _ := newAuthHandler(t)

	rec := postJSON(handler.RefreshToken, "/api/auth/refresh",
		`{"refresh_token":"not-a-token"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
