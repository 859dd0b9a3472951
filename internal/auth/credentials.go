package auth

import (
	"strings"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "X-API-Key"

	bearerPrefix = "Bearer "
)

type CredentialKind int

const (
	KindNone CredentialKind = iota
	KindAPIKey
	KindBearer
)

// Credentials is the tagged result of a single header-parsing step.
// Header names are inspected here and nowhere else.
type Credentials struct {
	Kind  CredentialKind
	Value string
}

// ParseCredentials classifies the presented credential. A bearer token
// takes precedence over the static key when both headers are present.
func ParseCredentials(authorization, apiKey string) Credentials {
	if strings.HasPrefix(authorization, bearerPrefix) {
		return Credentials{
			Kind:  KindBearer,
			Value: strings.TrimPrefix(authorization, bearerPrefix),
		}
	}

	if apiKey != "" {
		return Credentials{
			Kind:  KindAPIKey,
			Value: apiKey,
		}
	}

	return Credentials{Kind: KindNone}
}
