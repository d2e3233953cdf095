package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amecrec/ADIA/internal/service/auth"
)

// fakeJWTService validates exactly one known token string.
type fakeJWTService struct {
	validToken string
	userID     uuid.UUID
	err        error
}

func (s *fakeJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.validToken, nil
}

func (s *fakeJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token != s.validToken {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: s.userID}, nil
}

func (s *fakeJWTService) GenerateRefreshToken(
	ctx context.Context,
	userID uuid.UUID,
) (string, error) {
	return s.validToken, nil
}

func (s *fakeJWTService) ValidateRefreshToken(
	ctx context.Context,
	token string,
) (*auth.Claims, error) {
	return s.ValidateToken(ctx, token)
}

func runAuthenticated(t *testing.T, jwtService auth.JWTService, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var gotID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/materials", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)
	return rec, gotID, gotOK
}

func TestAuthenticateValidToken(t *testing.T) {
	userID := uuid.New()
	svc := &fakeJWTService{validToken: "good-token", userID: userID}

	rec, gotID, gotOK := runAuthenticated(t, svc, "Bearer good-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, userID, gotID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	rec, _, gotOK := runAuthenticated(t, &fakeJWTService{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, gotOK)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	tests := []string{
		"good-token",
		"Basic good-token",
		"Bearer",
		"Bearer a b",
	}
	for _, header := range tests {
		rec, _, _ := runAuthenticated(t, &fakeJWTService{validToken: "good-token"}, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	rec, _, _ := runAuthenticated(t,
		&fakeJWTService{validToken: "good-token"}, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	rec, _, _ := runAuthenticated(t,
		&fakeJWTService{err: auth.ErrExpiredToken}, "Bearer any")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
