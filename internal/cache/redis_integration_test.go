//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisContainer starts an ephemeral Redis server.
func setupRedisContainer(t *testing.T) (*Redis, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get redis endpoint")

	r, err := Dial(ctx, addr, "", 0, "htmlkit-test:")
	require.NoError(t, err, "failed to connect to redis")

	cleanup := func() {
		_ = r.Close()
		_ = container.Terminate(ctx)
	}
	return r, cleanup
}

func TestRedis_E2E(t *testing.T) {
	r, cleanup := setupRedisContainer(t)
	defer cleanup()
	ctx := context.Background()

	_, ok, err := r.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, "k", "<p>cached</p>", time.Minute))
	v, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>cached</p>", v)

	ttl, err := r.db.TTL(ctx, "htmlkit-test:k").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
