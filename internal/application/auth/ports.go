package auth

import (
	"context"
	"time"
)

// TokenDenylist revoca tokens JWT antes de su expiración (logout).
// La clave es el claim jti del token.
type TokenDenylist interface {
	// Add marca el jti como revocado durante ttl (el tiempo de vida restante
	// del token; pasado ese plazo el token expira solo).
	Add(ctx context.Context, jti string, ttl time.Duration) error
	// Contains indica si el jti está revocado.
	Contains(ctx context.Context, jti string) (bool, error)
}
