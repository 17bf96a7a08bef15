package utils // package utils provides helper functions for token creation and hashing

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated identity carried inside an access token.
// IsAdmin gates write operations on companies and jobs and the admin-only
// user endpoints.
type Principal struct {
	Username string
	IsAdmin  bool
}

// NewAccessToken builds and signs an HS256 JWT for a principal. The claims
// hold the username as subject, the admin flag, the expiration and the
// issued-at time.
func NewAccessToken(secret string, p Principal, ttlMin int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":     p.Username,
		"isAdmin": p.IsAdmin,
		"exp":     now.Add(time.Duration(ttlMin) * time.Minute).Unix(),
		"iat":     now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry and extracts the principal.
// Tokens signed with anything but HMAC are rejected.
func ParseAccessToken(secret, raw string) (Principal, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Principal{}, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return Principal{}, fmt.Errorf("invalid token claims")
	}
	var p Principal
	if sub, ok := claims["sub"].(string); ok {
		p.Username = sub
	}
	if p.Username == "" {
		return Principal{}, fmt.Errorf("token missing subject")
	}
	if isAdmin, ok := claims["isAdmin"].(bool); ok {
		p.IsAdmin = isAdmin
	}
	return p, nil
}
