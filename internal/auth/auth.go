// Package auth classifies each request as admin or anonymous and issues
// the bearer tokens the login operation hands out. Two credential
// schemes are supported: a pre-shared static key and a signed
// short-lived token.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/mkravets/blog-api/config"
)

// ErrUnauthorized is returned for any presented-but-invalid credential.
// It intentionally carries no detail about which check failed.
var ErrUnauthorized = errors.New("unauthorized")

const RoleAdmin = "admin"

type Identity struct {
	User string
	Role string
}

// Anonymous is the identity of a request that presented no credential.
var Anonymous = Identity{}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
	User      string
}

type Authenticator struct {
	cfg     *config.Auth
	tokens  *TokenIssuer
	encoder *PBKDF2Encoder
}

func New(cfg *config.Auth) *Authenticator {
	return &Authenticator{
		cfg: cfg,
		tokens: NewTokenIssuer(
			cfg.TokenSecret,
			cfg.TokenIssuer,
			cfg.TokenAudience,
			time.Duration(cfg.TokenTTLMinutes)*time.Minute,
		),
		encoder: NewPBKDF2Encoder(cfg.PasswordSecret),
	}
}

// Authenticate resolves parsed credentials to an identity. No credential
// is not a failure: the request proceeds as anonymous. A presented
// credential either verifies fully or yields ErrUnauthorized.
func (a *Authenticator) Authenticate(cred Credentials) (Identity, error) {
	switch cred.Kind {
	case KindNone:
		return Anonymous, nil
	case KindAPIKey:
		if a.cfg.APIKey == "" {
			return Anonymous, ErrUnauthorized
		}
		if subtle.ConstantTimeCompare([]byte(cred.Value), []byte(a.cfg.APIKey)) != 1 {
			return Anonymous, ErrUnauthorized
		}
		return Identity{User: a.cfg.AdminUsername, Role: RoleAdmin}, nil
	case KindBearer:
		return a.tokens.Verify(cred.Value)
	default:
		return Anonymous, ErrUnauthorized
	}
}

// Login exchanges the configured admin username/password pair for a
// signed token. Failure is uniform: it does not reveal whether the
// username or the password was wrong.
func (a *Authenticator) Login(username, password string) (*Session, error) {
	// Both checks run unconditionally so a username mismatch takes the
	// same time as a password mismatch.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.AdminUsername)) == 1
	passOK := a.verifyPassword(password)
	if !userOK || !passOK {
		return nil, ErrUnauthorized
	}

	token, expiresAt, err := a.tokens.Issue(a.cfg.AdminUsername, RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      a.cfg.AdminUsername,
	}, nil
}

func (a *Authenticator) verifyPassword(password string) bool {
	if a.cfg.AdminPassword == "" {
		return false
	}
	if a.cfg.AdminPasswordEncoded {
		return a.encoder.IsMatching(a.cfg.AdminPassword, password)
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.AdminPassword)) == 1
}
