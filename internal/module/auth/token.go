package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload carried by every issued token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies bearer tokens.
type TokenService interface {
	Generate(userID uint, role string, expiry time.Duration) (token string, expiresAt time.Time, err error)
	Parse(token string) (*Claims, error)
}

// jwtTokenService implements TokenService with HMAC-SHA256 signed JWTs.
type jwtTokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string) (TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &jwtTokenService{
		secret: []byte(secret),
		issuer: "deviceadmin",
	}, nil
}

// Generate issues a signed token for the given user.
func (s *jwtTokenService) Generate(userID uint, role string, expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Parse verifies a token's signature and validity window and returns its claims.
func (s *jwtTokenService) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
