package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// ContextKey тип для ключей контекста
type ContextKey string

// ClaimsKey ключ для получения claims из контекста
const ClaimsKey ContextKey = "claims"

// Middleware JWT middleware для HTTP обработчиков
type Middleware struct {
	jwtService     *JWTService
	sessionCookie  string
	allowedOrigins map[string]bool
	log            *zap.Logger
}

// NewMiddleware создает новый JWT middleware. Токен читается из заголовка
// Authorization, а при его отсутствии из cookie sessionCookie.
func NewMiddleware(jwtService *JWTService, sessionCookie string, allowedOrigins []string, log *zap.Logger) *Middleware {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &Middleware{
		jwtService:     jwtService,
		sessionCookie:  sessionCookie,
		allowedOrigins: origins,
		log:            log,
	}
}

// RequireAuth middleware для проверки JWT токена
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := m.tokenFromRequest(r)
		if tokenString == "" {
			m.log.Debug("missing credentials")
			writeAuthError(w, "authorization required", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.log.Debug("invalid token", zap.Error(err))
			if errors.Is(err, ErrExpiredToken) {
				writeAuthError(w, "token expired", http.StatusUnauthorized)
			} else {
				writeAuthError(w, "invalid token", http.StatusUnauthorized)
			}
			return
		}

		m.log.Debug("authenticated user", zap.String("user_id", claims.UserID()))

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// RequireAdmin пропускает только пользователей с ролью ADMIN
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if !claims.IsAdmin() {
			m.log.Warn("admin route denied", zap.String("user_id", claims.UserID()), zap.String("path", r.URL.Path))
			writeAuthError(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OptionalAuth middleware для опциональной проверки JWT токена
func (m *Middleware) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := m.tokenFromRequest(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			// Неверный токен, но для опционального middleware это не критично
			m.log.Debug("optional auth: invalid token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// CORS middleware для обработки CORS запросов
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if m.allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Add("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		// Обработка preflight OPTIONS запросов
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WithClaims кладет claims в контекст
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// ClaimsFromContext извлекает claims из контекста
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok && claims != nil
}

// UserIDFromContext возвращает ID пользователя или пустую строку для анонима
func UserIDFromContext(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID()
	}
	return ""
}

func (m *Middleware) tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return ExtractTokenFromBearer(header)
	}
	if m.sessionCookie != "" {
		if cookie, err := r.Cookie(m.sessionCookie); err == nil {
			return cookie.Value
		}
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
