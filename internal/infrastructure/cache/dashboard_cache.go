package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain/entity"
)

var _ ports.DashboardCache = (*DashboardCache)(nil)

// DashboardCache guarda el dashboard serializado por empresa y rol
// (dashboard:{company_id}:{role}). Invalidar borra las claves de todos los roles.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache ttl es la vida de cada entrada.
func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

func dashboardKey(companyID, role string) string {
	return "dashboard:" + companyID + ":" + role
}

// Get devuelve false si no hay entrada para (empresa, rol).
func (c *DashboardCache) Get(ctx context.Context, companyID, role string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, dashboardKey(companyID, role)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("dashboard cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("dashboard cache decode: %w", err)
	}
	return true, nil
}

// Set guarda v para (empresa, rol).
func (c *DashboardCache) Set(ctx context.Context, companyID, role string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("dashboard cache encode: %w", err)
	}
	if err := c.client.Set(ctx, dashboardKey(companyID, role), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("dashboard cache set: %w", err)
	}
	return nil
}

// Invalidate elimina todas las entradas de la empresa.
func (c *DashboardCache) Invalidate(ctx context.Context, companyID string) error {
	roles := entity.Roles()
	keys := make([]string, 0, len(roles))
	for _, role := range roles {
		keys = append(keys, dashboardKey(companyID, role))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("dashboard cache invalidate: %w", err)
	}
	return nil
}
