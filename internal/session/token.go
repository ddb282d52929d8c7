package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token expired")

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the token payload without verifying the signature —
// the signing secret never leaves the backend. Claims are only used to
// decide whether a persisted token is still worth restoring; the backend
// re-verifies every request regardless.
func ParseClaims(raw string) (*Claims, error) {
	c := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, c); err != nil {
		return nil, err
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}
	return c, nil
}
