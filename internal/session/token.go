package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL returns how long a token should be kept. The API signs its tokens,
// so the console only peeks at the exp claim without verifying the signature.
// Opaque tokens, or tokens without a future exp, get fallback.
func tokenTTL(token string, now time.Time, fallback time.Duration) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	if ttl := exp.Sub(now); ttl > 0 {
		return ttl
	}
	return fallback
}
