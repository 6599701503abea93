package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Dealbies-Backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWT() *JWTService {
	return NewJWTService(&JWTConfig{
		SecretKey:           []byte("test-secret"),
		AccessTokenDuration: time.Hour,
		Issuer:              "dealbies-idp",
	})
}

func token(t *testing.T, s *JWTService, user *domain.User) string {
	t.Helper()
	tok, err := s.GenerateAccessToken(user)
	require.NoError(t, err)
	return tok
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := newTestJWT()
	email, name := "a@example.com", "saver"

	claims, err := s.ValidateToken(token(t, s, &domain.User{ID: "idp|1", Email: &email, Username: &name, Role: domain.RoleAdmin}))
	require.NoError(t, err)

	assert.Equal(t, "idp|1", claims.UserID())
	assert.True(t, claims.IsAdmin())

	user := claims.User()
	assert.Equal(t, "idp|1", user.ID)
	require.NotNil(t, user.Email)
	assert.Equal(t, email, *user.Email)
	require.NotNil(t, user.Username)
	assert.Equal(t, name, *user.Username)
	assert.Nil(t, user.Avatar)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestJWTService_Rejects(t *testing.T) {
	s := newTestJWT()

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService(&JWTConfig{SecretKey: []byte("test-secret"), AccessTokenDuration: -time.Minute, Issuer: "dealbies-idp"})
		_, err := s.ValidateToken(token(t, expired, &domain.User{ID: "u"}))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(&JWTConfig{SecretKey: []byte("other"), AccessTokenDuration: time.Hour, Issuer: "dealbies-idp"})
		_, err := s.ValidateToken(token(t, other, &domain.User{ID: "u"}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(&JWTConfig{SecretKey: []byte("test-secret"), AccessTokenDuration: time.Hour, Issuer: "someone-else"})
		_, err := s.ValidateToken(token(t, other, &domain.User{ID: "u"}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := s.ValidateToken(token(t, s, &domain.User{}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", Issuer: "dealbies-idp"}})
		str, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.ValidateToken(str)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractTokenFromBearer(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromBearer("Bearer abc"))
	assert.Empty(t, ExtractTokenFromBearer("Basic abc"))
	assert.Empty(t, ExtractTokenFromBearer("Bearer "))
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(UserIDFromContext(r.Context())))
}

func TestMiddleware(t *testing.T) {
	s := newTestJWT()
	m := NewMiddleware(s, "dealbies_session", []string{"https://dealbies.com"}, zap.NewNop())
	userTok := token(t, s, &domain.User{ID: "user-1", Role: domain.RoleUser})
	adminTok := token(t, s, &domain.User{ID: "admin-1", Role: domain.RoleAdmin})

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		header     string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{"optional anonymous", m.OptionalAuth(echoUser), "", "", http.StatusOK, ""},
		{"optional bad token", m.OptionalAuth(echoUser), "Bearer junk", "", http.StatusOK, ""},
		{"optional bearer", m.OptionalAuth(echoUser), "Bearer " + userTok, "", http.StatusOK, "user-1"},
		{"optional cookie", m.OptionalAuth(echoUser), "", userTok, http.StatusOK, "user-1"},
		{"require missing", m.RequireAuth(echoUser), "", "", http.StatusUnauthorized, ""},
		{"require invalid", m.RequireAuth(echoUser), "Bearer junk", "", http.StatusUnauthorized, ""},
		{"require bearer", m.RequireAuth(echoUser), "Bearer " + userTok, "", http.StatusOK, "user-1"},
		{"require cookie", m.RequireAuth(echoUser), "", userTok, http.StatusOK, "user-1"},
		{"admin as user", m.RequireAdmin(echoUser), "Bearer " + userTok, "", http.StatusForbidden, ""},
		{"admin anonymous", m.RequireAdmin(echoUser), "", "", http.StatusUnauthorized, ""},
		{"admin", m.RequireAdmin(echoUser), "Bearer " + adminTok, "", http.StatusOK, "admin-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "dealbies_session", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			tt.handler(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	m := NewMiddleware(newTestJWT(), "", []string{"https://dealbies.com"}, zap.NewNop())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := m.CORS(next)

	req := httptest.NewRequest(http.MethodGet, "/api/deals", nil)
	req.Header.Set("Origin", "https://dealbies.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "https://dealbies.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/deals", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
