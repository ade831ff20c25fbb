package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

var ErrInvalidKey = errors.New("invalid or missing API key")

// Authenticator decides whether a request may reach a guarded route.
type Authenticator interface {
	Authenticate(r *http.Request) error
}

// StaticKey authenticates against one fixed key, accepted either in the
// X-API-Key header or as an Authorization bearer token. An empty key
// admits every request, which keeps local setups password-free.
type StaticKey struct {
	key string
}

func NewStaticKey(key string) *StaticKey {
	return &StaticKey{key: key}
}

func (s *StaticKey) Authenticate(r *http.Request) error {
	if s.key == "" {
		return nil
	}

	provided := r.Header.Get("X-API-Key")
	if provided == "" {
		provided = bearerToken(r.Header.Get("Authorization"))
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(s.key)) != 1 {
		return ErrInvalidKey
	}
	return nil
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
