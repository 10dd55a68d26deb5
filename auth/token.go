package auth

import (
	"fmt"
	"strconv"
	"time"

	"chat-sync/domain"
	"chat-sync/errors"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chat-sync"

// CustomClaims is the payload of the access tokens handed to clients.
type CustomClaims struct {
	UserID domain.UserID `json:"user_id"`
	Roles  []string      `json:"roles"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and checks HS256 tokens with a shared secret.
type TokenIssuer struct {
	key      []byte
	duration time.Duration
}

func NewTokenIssuer(secret string, duration time.Duration) TokenIssuer {
	return TokenIssuer{key: []byte(secret), duration: duration}
}

func (i TokenIssuer) GenerateToken(userID domain.UserID, roles []string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	return signed, nil
}

// ValidateToken checks signature, algorithm and expiry.
func (i TokenIssuer) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(*jwt.Token) (any, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}
