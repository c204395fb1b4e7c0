package container

import (
	"context"
	"testing"
	"time"

	"pelada-manager/internal/config"
	"pelada-manager/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		APIBaseURL:  "http://localhost:3000",
		HTTPTimeout: 5 * time.Second,
		Environment: "test",
	}
}

func TestNewWithoutRedis(t *testing.T) {
	c, err := New(testConfig(), logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.RedisClient, "session falls back to the in-memory store")
	assert.NotNil(t, c.API)
	assert.NotNil(t, c.Session)
}

func TestNewWithUnreachableRedis(t *testing.T) {
	cfg := testConfig()
	cfg.RedisURL = "redis://127.0.0.1:1" // nothing listens there

	c, err := New(cfg, logger.NewNop())
	require.NoError(t, err, "an unreachable Redis degrades to in-memory, it does not abort startup")
	defer c.Close()
}

func TestNewWithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := testConfig()
	cfg.RedisURL = "redis://" + mr.Addr()

	c, err := New(cfg, logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.RedisClient)
	require.NoError(t, c.Health(context.Background()))

	mr.Close()
	assert.Error(t, c.Health(context.Background()))
}

func TestHealthWithoutRedis(t *testing.T) {
	c, err := New(testConfig(), logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.NoError(t, c.Health(context.Background()))
}

func TestEngineConstructors(t *testing.T) {
	c, err := New(testConfig(), logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.RosterEngine(1))
	assert.NotNil(t, c.MatchEngine(1, func(string) bool { return true }))
	assert.NotNil(t, c.AttendanceTracker(1))
}
