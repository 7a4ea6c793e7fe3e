// Package token issues and verifies the short-lived HS256 tokens the
// gateway attaches to forwarded requests.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issue signs a service token for a forwarded call. callerID may be 0
// for endpoints that carry no identity header.
func Issue(secret string, callerID int64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"iss": "shareit-gateway",
		"sub": callerID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse verifies a raw or "Bearer "-prefixed token and returns its claims.
func Parse(authHeader, secret string) (jwt.MapClaims, error) {
	raw := strings.TrimSpace(authHeader)
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return nil, errors.New("missing token")
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return mc, nil
}
