package utils

import (
	"errors"
	"time"

	"welfare/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "welfare-api"

var (
	ErrMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// GenerateSessionToken signs claims with HS256. The registered claims are
// filled in here, anything the caller set on them is overwritten.
func GenerateSessionToken(secret string, claims models.SessionClaims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
		Subject:   claims.ActorID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken parses and validates a session token string.
func ParseSessionToken(secret, tokenStr string) (*models.SessionClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Role == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
