package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

type stats struct {
	Employees int `json:"employees"`
}

func TestDashboardCache_GetSetPorRol(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewDashboardCache(client, time.Minute)
	ctx := context.Background()

	var got stats
	ok, err := c.Get(ctx, "co-1", "admin", &got)
	require.NoError(t, err)
	assert.False(t, ok, "sin entrada todavía")

	require.NoError(t, c.Set(ctx, "co-1", "admin", stats{Employees: 7}))
	ok, err = c.Get(ctx, "co-1", "admin", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, got.Employees)

	ok, err = c.Get(ctx, "co-1", "hr_manager", &got)
	require.NoError(t, err)
	assert.False(t, ok, "cada rol tiene su propia entrada")
}

func TestDashboardCache_InvalidateBorraTodosLosRoles(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewDashboardCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "co-1", "admin", stats{Employees: 1}))
	require.NoError(t, c.Set(ctx, "co-1", "hr_manager", stats{Employees: 1}))
	require.NoError(t, c.Set(ctx, "co-2", "admin", stats{Employees: 2}))

	require.NoError(t, c.Invalidate(ctx, "co-1"))

	var got stats
	for _, role := range []string{"admin", "hr_manager"} {
		ok, err := c.Get(ctx, "co-1", role, &got)
		require.NoError(t, err)
		assert.False(t, ok, role)
	}
	ok, err := c.Get(ctx, "co-2", "admin", &got)
	require.NoError(t, err)
	assert.True(t, ok, "otra empresa no se toca")
}

func TestDashboardCache_Expira(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewDashboardCache(client, 60*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "co-1", "admin", stats{Employees: 1}))
	mr.FastForward(61 * time.Second)

	var got stats
	ok, err := c.Get(ctx, "co-1", "admin", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_RevokeEIsRevoked(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewTokenStore(client)
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-1", 30*time.Second))
	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(31 * time.Second)
	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "la revocación vive lo que le quedaba al token")
}

func TestTokenStore_TTLVencidoNoGuarda(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewTokenStore(client)

	require.NoError(t, s.Revoke(context.Background(), "jti-2", 0))
	assert.False(t, mr.Exists("revoked:jti-2"))
}
