package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voyagehub/travel-bookings/internal/domain"
)

type Claims struct {
	Sub int64 `json:"sub"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies signed identity tokens. The signing key and
// validity window are fixed at construction; nothing here reads the
// environment.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

func (t *Tokens) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			Audience:  []string{"travelbook-api"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify returns the user id a token was issued for. Expired tokens fail
// with domain.ErrTokenExpired, everything else malformed or tampered with
// fails domain.ErrInvalidToken; callers treat both as unauthenticated.
func (t *Tokens) Verify(tokenString string) (int64, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrTokenExpired
		}
		return 0, domain.ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return 0, domain.ErrInvalidToken
	}
	return claims.Sub, nil
}
