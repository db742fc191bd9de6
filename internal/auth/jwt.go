package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hdesk/helpdesk-backend/internal/core/domain"
)

// Token validation errors.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Token types carried in claims, so a refresh token cannot be replayed as
// an access token.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the structured data we store in the JWT
type Claims struct {
	UserID    uuid.UUID   `json:"user_id"`
	Role      domain.Role `json:"role"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates bearer tokens.
type TokenManager struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:  []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken creates a short-lived JWT access token.
func (tm *TokenManager) GenerateAccessToken(userID uuid.UUID, role domain.Role) (string, error) {
	return tm.generate(userID, role, TokenTypeAccess, tm.accessTTL)
}

// GenerateRefreshToken creates a long-lived JWT refresh token.
func (tm *TokenManager) GenerateRefreshToken(userID uuid.UUID, role domain.Role) (string, error) {
	return tm.generate(userID, role, TokenTypeRefresh, tm.refreshTTL)
}

func (tm *TokenManager) generate(userID uuid.UUID, role domain.Role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

// ValidateAccessToken parses and validates an access token string.
func (tm *TokenManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	return tm.validate(tokenString, TokenTypeAccess)
}

// ValidateRefreshToken parses and validates a refresh token string.
func (tm *TokenManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return tm.validate(tokenString, TokenTypeRefresh)
}

func (tm *TokenManager) validate(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
