package statictoken

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"pet-qr-tracker/internal/ports/auth"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrInvalidToken  = errors.New("invalid token")
	ErrNotConfigured = errors.New("admin token not configured")
)

// Verifier implementa auth.AuthVerifier comparando contra ADMIN_TOKEN.
// Alcanza para un único dueño; un IdP real se enchufa con la misma interfaz.
type Verifier struct {
	token   []byte
	subject string
}

func NewVerifier(token string) *Verifier {
	return &Verifier{
		token:   []byte(strings.TrimSpace(token)),
		subject: "admin",
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.token) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}
	if subtle.ConstantTimeCompare([]byte(token), v.token) != 1 {
		return auth.Claims{}, ErrInvalidToken
	}
	return auth.Claims{Subject: v.subject, Admin: true}, nil
}
