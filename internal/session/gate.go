package session

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

const (
	CookieName   = "admin_auth"
	CookieMaxAge = 7 * 24 * 60 * 60 // seconds

	// Fixed salt: the cookie value is a stable digest of the one shared
	// password, not a per-session secret.
	salt = "admin-secret-salt"
)

// Gate verifies the admin cookie. It is deliberately a tiny policy object:
// one shared low-value secret, no accounts, no expiry logic beyond the
// cookie max-age.
type Gate interface {
	VerifyPassword(password string) bool
	VerifyToken(token string) bool
	Token() string
}

type SharedSecretGate struct {
	token string
}

func New(password string) *SharedSecretGate {
	return &SharedSecretGate{token: digest(password)}
}

// Token is the value stored in the admin cookie on successful login.
func (g *SharedSecretGate) Token() string {
	return g.token
}

func (g *SharedSecretGate) VerifyPassword(password string) bool {
	return g.VerifyToken(digest(password))
}

func (g *SharedSecretGate) VerifyToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(g.token)) == 1
}

func digest(password string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
