// Package token issues and verifies the signed bearer credential carried in
// the session cookie.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the HttpOnly cookie holding the access token.
const CookieName = "access_token"

var errNoSubject = errors.New("token has no subject")

// Issue signs an HS256 token with the login as subject, expiring ttl from now.
func Issue(secret, login string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   login,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// CookieValue formats a token the way the browser stores it.
func CookieValue(tok string) string {
	return "Bearer " + tok
}

// ParseCookie resolves a raw cookie value to the login it was issued for.
// A "Bearer " prefix is stripped when present. Malformed, unsigned or
// expired tokens return an error; callers decide whether that means
// anonymous or a login redirect.
func ParseCookie(secret, raw string) (string, error) {
	scheme, rest, found := strings.Cut(raw, " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		raw = rest
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errNoSubject
	}
	return claims.Subject, nil
}
