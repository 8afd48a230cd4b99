package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is a best-effort view into the bearer credential for
// display purposes ('auth status'). The token is otherwise treated as
// opaque: nothing in session or auth correctness depends on these
// fields, and the signature is never verified client-side.
type TokenClaims struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// PeekClaims decodes the token as an unverified JWT. Returns ok=false
// for opaque (non-JWT) tokens.
func PeekClaims(token string) (*TokenClaims, bool) {
	if token == "" {
		return nil, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if iss, err := claims.GetIssuer(); err == nil {
		out.Issuer = iss
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, true
}

// Expired reports whether the claims carry an expiry in the past.
// A missing expiry reports false.
func (c *TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
