package auth

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Record is the proof of authentication kept in the browser session.
type Record struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// NewRecord builds a Record from a login response. The role is normalized when
// recognized and kept verbatim otherwise.
func NewRecord(email, username, role, token string) Record {
	r, ok := ParseRole(role)
	if !ok {
		r = Role(role)
	}
	return Record{
		Email:     email,
		Username:  username,
		Role:      r,
		Token:     token,
		ExpiresAt: TokenExpiry(token),
	}
}

func (r Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// TokenExpiry reads the expiry of an access token without verifying its
// signature; the signing key belongs to the API. Both the registered "exp"
// claim and the API's "expires" claim are understood. Opaque tokens yield the
// zero time.
func TokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		return exp.Time
	}

	switch v := claims["expires"].(type) {
	case float64:
		sec := int64(v)
		return time.Unix(sec, int64((v-float64(sec))*float64(time.Second)))
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return time.Unix(int64(f), 0)
		}
	}
	return time.Time{}
}

func (r Record) encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeRecord(s string) (Record, error) {
	var r Record
	err := json.Unmarshal([]byte(s), &r)
	return r, err
}
