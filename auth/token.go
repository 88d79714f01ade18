package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of the one-shot challenge token without
// verifying the signature. The client holds no server key, so this is a
// peek only, used to know how long the solver has before the challenge
// lapses.
func TokenExpiry(tokenRaw string) (time.Time, error) {
	claims := make(jwt.MapClaims)
	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(tokenRaw, claims)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return exp.Time, nil
}
