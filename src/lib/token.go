package lib

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chirper/src/apperrors"
)

// SessionValidity is how long an issued session token (and its cookie) lives.
const SessionValidity = 30 * 24 * time.Hour

// Claims carries the registered claims plus the single custom claim a session
// token holds, the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenManager signs and verifies session tokens with an injected secret, so
// nothing in the codebase reaches for the environment at call time.
type TokenManager struct {
	secret   []byte
	validity time.Duration
}

func NewTokenManager(secret string, validity time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), validity: validity}
}

// Generate issues a signed token bound to the given user id.
func (tm *TokenManager) Generate(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.validity)),
		},
		UserID: userID,
	})
	return token.SignedString(tm.secret)
}

// Verify checks signature and expiry and returns the user id claim. Every
// failure mode comes back as an unauthorized error.
func (tm *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Unauthorizedf("Unauthorized: Invalid Token")
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorizedf("Unauthorized: Invalid Token")
	}

	return claims.UserID, nil
}
