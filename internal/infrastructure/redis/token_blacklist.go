package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/pkg/config"
)

var _ auth.TokenBlacklist = (*TokenBlacklist)(nil)

// TokenBlacklist guarda los jti revocados en Redis con TTL igual al tiempo de
// vida restante del token: la entrada expira sola cuando el token ya no sirve.
type TokenBlacklist struct {
	client *redis.Client
}

// NewClient crea el cliente Redis y verifica conectividad.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewTokenBlacklist construye la blacklist sobre un cliente existente.
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func key(jti string) string {
	return "token:revoked:" + jti
}

// Revoke marca el jti como revocado hasta que expire su TTL.
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token ya vencido, nada que revocar
	}
	if err := b.client.Set(ctx, key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti está en la blacklist.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
