package ports

import (
	"context"
	"time"
)

// DashboardCache cache read-through del dashboard, por empresa y rol.
type DashboardCache interface {
	// Get carga en dst el valor cacheado; false si no hay entrada.
	Get(ctx context.Context, companyID, role string, dst any) (bool, error)
	Set(ctx context.Context, companyID, role string, v any) error
	// Invalidate borra todas las entradas de la empresa (cualquier rol).
	Invalidate(ctx context.Context, companyID string) error
}

// TokenStore lista de tokens revocados (logout) por jti.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
