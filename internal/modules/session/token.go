package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// tokenExpiry reads the exp claim of a JWT bearer credential without
// verifying its signature; the remote API remains the verifier. Opaque
// tokens and tokens without exp get the fallback.
func tokenExpiry(token string, fallback time.Time) time.Time {
	var claims jwt.StandardClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return fallback
	}
	if claims.ExpiresAt == 0 {
		return fallback
	}
	return time.Unix(claims.ExpiresAt, 0)
}
