// Package token mints and validates the signed identity assertions that
// every service boundary trusts. Tokens are HS256 JWTs carrying the
// subject id, email and role; validity is signature + expiry only, there
// is no revocation list.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/estatehub/realty-platform/internal/core/domain"
)

// DefaultTTL matches the platform-wide 7-day validity window.
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the decoded, verified payload of a token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Verifier validates a bearer token. Implementations must be total:
// any input string yields (Claims, true) or (zero, false), never a panic.
type Verifier interface {
	Verify(raw string) (Claims, bool)
}

// Issuer signs and verifies tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the issuer's clock. Intended for tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue produces a signed token for the given user.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     i.now().Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify decodes raw and checks signature and expiry. Malformed input,
// a signature mismatch, an unexpected algorithm, or an expired token all
// return ok == false.
func (i *Issuer) Verify(raw string) (Claims, bool) {
	if raw == "" {
		return Claims{}, false
	}

	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !parsed.Valid {
		return Claims{}, false
	}

	claims := Claims{}
	if v, ok := mc["user_id"].(float64); ok {
		claims.UserID = int64(v)
	}
	claims.Email, _ = mc["email"].(string)
	claims.Role, _ = mc["role"].(string)
	return claims, true
}
