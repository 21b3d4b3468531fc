package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/people360/internal/application/ports"
)

var _ ports.TokenStore = (*TokenStore)(nil)

// TokenStore lista de jti revocados (revoked:{jti}) con expiración igual a la vida restante del token.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore construye el almacén de revocaciones.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}

// Revoke marca el jti como revocado. Un ttl <= 0 no guarda nada (el token ya expiró).
func (s *TokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti fue revocado.
func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
