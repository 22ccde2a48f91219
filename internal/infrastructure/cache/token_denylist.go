// Package cache implementa el denylist de tokens revocados (logout) sobre
// Redis, con una variante en memoria para desarrollo y tests.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/invorya/inventra-api/internal/application/auth"
	"github.com/invorya/inventra-api/pkg/config"
)

const denylistKeyPrefix = "token:denylist:"

var _ auth.TokenDenylist = (*RedisTokenDenylist)(nil)

// RedisTokenDenylist implementa auth.TokenDenylist sobre Redis.
// Cada JTI revocado se guarda con TTL igual al tiempo de vida restante del token.
type RedisTokenDenylist struct {
	client *redis.Client
}

// NewRedisTokenDenylist conecta a Redis y verifica la conexión.
func NewRedisTokenDenylist(cfg config.RedisConfig) (*RedisTokenDenylist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}

	return &RedisTokenDenylist{client: client}, nil
}

// Add agrega un JTI revocado con el TTL indicado.
func (d *RedisTokenDenylist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// El token ya expiró; no hay nada que revocar.
		return nil
	}
	if err := d.client.Set(ctx, denylistKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

// Contains indica si un JTI está revocado.
func (d *RedisTokenDenylist) Contains(ctx context.Context, jti string) (bool, error) {
	exists, err := d.client.Exists(ctx, denylistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("consultar token revocado: %w", err)
	}
	return exists > 0, nil
}

// Close cierra el cliente Redis.
func (d *RedisTokenDenylist) Close() error {
	return d.client.Close()
}

var _ auth.TokenDenylist = (*InMemoryTokenDenylist)(nil)

// InMemoryTokenDenylist variante en memoria, para desarrollo sin Redis y tests.
// No sirve con múltiples instancias de la API.
type InMemoryTokenDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time // JTI -> expiración de la entrada
}

// NewInMemoryTokenDenylist construye el denylist en memoria.
func NewInMemoryTokenDenylist() *InMemoryTokenDenylist {
	return &InMemoryTokenDenylist{revoked: make(map[string]time.Time)}
}

// Add agrega un JTI revocado con el TTL indicado.
func (d *InMemoryTokenDenylist) Add(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = time.Now().Add(ttl)
	return nil
}

// Contains indica si un JTI está revocado (y la entrada no expiró).
func (d *InMemoryTokenDenylist) Contains(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	expiration, ok := d.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiration) {
		delete(d.revoked, jti)
		return false, nil
	}
	return true, nil
}
