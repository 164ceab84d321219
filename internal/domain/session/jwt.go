// Package session provides authentication and role-based authorization for
// dashboard users. Credentials are verified against the backend's login
// records; the dashboard itself stores nothing.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appctx "hoteldash/internal/core/context"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret:   secret,
		Issuer:   "hoteldash",
		TokenTTL: 12 * time.Hour,
	}
}

// Claims represents JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	EmployeeID int    `json:"eid"`
	Username   string `json:"usr"`
	Position   string `json:"pos"`
}

// JWTService handles JWT operations.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service.
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// GenerateToken generates a signed session token.
func (s *JWTService) GenerateToken(sess *appctx.SessionContext) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.TokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   fmt.Sprintf("%d", sess.EmployeeID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		EmployeeID: sess.EmployeeID,
		Username:   sess.Username,
		Position:   sess.Position,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a token and returns the session context.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.SessionContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &appctx.SessionContext{
		EmployeeID: claims.EmployeeID,
		Username:   claims.Username,
		Position:   claims.Position,
	}, nil
}
