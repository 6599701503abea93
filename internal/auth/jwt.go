package auth

import (
	"Dealbies-Backend/internal/domain"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// JWTConfig конфигурация JWT
type JWTConfig struct {
	SecretKey           []byte
	AccessTokenDuration time.Duration
	Issuer              string
}

// Claims токен identity provider. Subject содержит ID пользователя.
type Claims struct {
	Email    string      `json:"email,omitempty"`
	Username string      `json:"username,omitempty"`
	Avatar   string      `json:"avatar,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор пользователя из subject
func (c *Claims) UserID() string {
	return c.Subject
}

// IsAdmin проверяет административную роль
func (c *Claims) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// User строит профиль пользователя для find-or-create
func (c *Claims) User() *domain.User {
	user := &domain.User{ID: c.Subject, Role: domain.RoleUser}
	if c.Role == domain.RoleAdmin {
		user.Role = domain.RoleAdmin
	}
	if c.Email != "" {
		email := c.Email
		user.Email = &email
	}
	if c.Username != "" {
		username := c.Username
		user.Username = &username
	}
	if c.Avatar != "" {
		avatar := c.Avatar
		user.Avatar = &avatar
	}
	return user
}

// JWTService сервис для работы с JWT токенами
type JWTService struct {
	config *JWTConfig
}

// NewJWTService создает новый JWT сервис
func NewJWTService(config *JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// GenerateAccessToken подписывает токен для пользователя. В проде токены выдает
// identity provider, здесь это нужно для локальной разработки и тестов.
func (s *JWTService) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenDuration)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if user.Email != nil {
		claims.Email = *user.Email
	}
	if user.Username != nil {
		claims.Username = *user.Username
	}
	if user.Avatar != nil {
		claims.Avatar = *user.Avatar
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.config.SecretKey)
}

// ValidateToken проверяет и парсит токен
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.config.SecretKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ExtractTokenFromBearer извлекает токен из Bearer заголовка
func ExtractTokenFromBearer(authHeader string) string {
	const bearerPrefix = "Bearer "
	if len(authHeader) > len(bearerPrefix) && authHeader[:len(bearerPrefix)] == bearerPrefix {
		return authHeader[len(bearerPrefix):]
	}
	return ""
}
