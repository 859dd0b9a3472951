package auth

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 210000
	pbkdf2KeyLength  = 64
)

// PBKDF2Encoder derives and compares PBKDF2-SHA512 password hashes.
type PBKDF2Encoder struct {
	Secret    string
	Iteration int
	KeyLength int
}

func NewPBKDF2Encoder(secret string) *PBKDF2Encoder {
	return &PBKDF2Encoder{
		Secret:    secret,
		Iteration: pbkdf2Iterations,
		KeyLength: pbkdf2KeyLength,
	}
}

func (p *PBKDF2Encoder) GetPasswordHash(password string) (string, error) {
	hash := pbkdf2.Key([]byte(password), []byte(p.Secret), p.Iteration, p.KeyLength, sha512.New)
	encoded := base64.StdEncoding.EncodeToString(hash)
	return encoded, nil
}

func (p *PBKDF2Encoder) IsMatching(hash, password string) bool {
	encoded, _ := p.GetPasswordHash(password)
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(hash)) == 1
}
