package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenIssuer signs and verifies short-lived HS256 bearer tokens.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenIssuer(secret, issuer, audience string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

func (t *TokenIssuer) Issue(user, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(t.ttl)
	claims := &Claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Audience:  t.audience,
			ExpiresAt: expiresAt.Unix(),
			Id:        uuid.New().String(),
			IssuedAt:  now.Unix(),
			Issuer:    t.issuer,
			Subject:   user,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks the signature, issuer, audience and the [iat, exp) time
// window. Any failure yields ErrUnauthorized without further detail.
func (t *TokenIssuer) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Anonymous, ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Anonymous, ErrUnauthorized
	}

	// VerifyExpiresAt treats exp as inclusive; the validity window here
	// is [iat, exp), so the expiry second itself is already rejected.
	now := time.Now().Unix()
	switch {
	case !claims.VerifyIssuer(t.issuer, true),
		!claims.VerifyAudience(t.audience, true),
		!claims.VerifyIssuedAt(now, true),
		now >= claims.ExpiresAt:
		return Anonymous, ErrUnauthorized
	}

	return Identity{User: claims.Subject, Role: claims.Role}, nil
}
