package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client can read from a bearer token without the
// signing key. Nothing here is trusted; it is only displayed.
type Claims struct {
	Subject   string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes token as an unverified JWT. Tokens that are not JWTs
// return an error and should be treated as opaque.
func ParseClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("parse token claims: %w", err)
	}

	var c Claims
	c.Subject, _ = mc.GetSubject()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	for _, key := range []string{"user_id", "userId", "UserID", "id"} {
		if v, ok := mc[key]; ok && v != nil {
			c.UserID = fmt.Sprint(v)
			break
		}
	}
	return c, nil
}
