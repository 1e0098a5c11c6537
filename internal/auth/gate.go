// ABOUTME: Single-credential login gate issuing signed admin session tokens
// ABOUTME: Compares against the one configured username/bcrypt-hash pair

package auth

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on any login mismatch. The error never
// reveals whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultTokenTTL is the token lifetime used when none is configured
const DefaultTokenTTL = 24 * time.Hour

// Gate validates the single configured admin credential pair and issues
// bearer tokens. There is no user table and no server-side session state.
type Gate struct {
	username     string
	passwordHash []byte
	verifier     *JWTVerifier
	tokenTTL     time.Duration
	logger       *slog.Logger
}

// NewGate creates a login gate for the configured credential pair.
// passwordHash must be a bcrypt hash of the admin password.
func NewGate(username string, passwordHash []byte, verifier *JWTVerifier, tokenTTL time.Duration) *Gate {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Gate{
		username:     username,
		passwordHash: passwordHash,
		verifier:     verifier,
		tokenTTL:     tokenTTL,
		logger:       slog.Default().With("component", "auth"),
	}
}

// Login checks the credential pair and returns a signed token on match.
// The bcrypt compare runs even when the username is wrong so both failure
// paths take comparable time.
func (g *Gate) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))

	if !userOK || passErr != nil {
		g.logger.Warn("login failed", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := g.verifier.Generate(g.username, g.tokenTTL)
	if err != nil {
		return "", err
	}

	g.logger.Info("login succeeded", "username", username)
	return token, nil
}

// Verify validates a bearer token and returns the admin identity
func (g *Gate) Verify(token string) (string, error) {
	return g.verifier.Verify(token)
}

// TokenTTL returns the configured token lifetime
func (g *Gate) TokenTTL() time.Duration {
	return g.tokenTTL
}

// HashPassword produces a bcrypt hash suitable for the gate configuration
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
