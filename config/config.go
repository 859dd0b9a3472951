package config

import (
	"github.com/go-pg/pg/v10"
)

// Config is built once at startup and passed by reference into the
// components that need it. Business logic never reads the environment.
type Config struct {
	Database pg.Options
	App      struct {
		Host string
		Port int
	}
	Auth    Auth
	Storage Storage
	CORS    struct {
		AllowOrigins []string
	}
}

type Auth struct {
	AdminUsername string
	// AdminPassword is either the plain secret or a base64 PBKDF2-SHA512
	// hash produced by auth.PBKDF2Encoder, depending on AdminPasswordEncoded.
	AdminPassword        string
	AdminPasswordEncoded bool
	PasswordSecret       string

	APIKey string

	TokenSecret     string
	TokenIssuer     string
	TokenAudience   string
	TokenTTLMinutes int

	// LoginAttemptsPerMinute caps POST /auth/login per caller IP.
	LoginAttemptsPerMinute int
}

type Storage struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// CDNBaseURL, when set, is preferred over the endpoint-derived URL.
	CDNBaseURL    string
	DefaultPrefix string

	MaxUploadBytes      int64
	AllowedContentTypes []string
}

const (
	DefaultTokenTTLMinutes        = 15
	DefaultLoginAttemptsPerMinute = 5
	DefaultMaxUploadBytes         = 20 << 20
	DefaultUploadPrefix           = "uploads"
)

var DefaultAllowedContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// ApplyDefaults fills the zero-valued optional knobs after TOML decoding.
func (c *Config) ApplyDefaults() {
	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = DefaultTokenTTLMinutes
	}
	if c.Auth.LoginAttemptsPerMinute == 0 {
		c.Auth.LoginAttemptsPerMinute = DefaultLoginAttemptsPerMinute
	}
	if c.Storage.MaxUploadBytes == 0 {
		c.Storage.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.Storage.DefaultPrefix == "" {
		c.Storage.DefaultPrefix = DefaultUploadPrefix
	}
	if len(c.Storage.AllowedContentTypes) == 0 {
		c.Storage.AllowedContentTypes = DefaultAllowedContentTypes
	}
}
