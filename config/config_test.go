package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, "ctrlshirt_", cfg.KeyPrefix)
	assert.Equal(t, 500*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, 60*time.Minute, cfg.TokenExpiry)
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SessionSweepInterval)
	assert.Empty(t, cfg.AMQPURL)
	assert.Equal(t, 5, cfg.AMQPChannelPool)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("STORE_DRIVER", "REDIS")
	t.Setenv("SIMULATED_LATENCY_MS", "0")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "abc")

	cfg := LoadConfig()

	assert.Equal(t, StoreRedis, cfg.StoreDriver)
	assert.Equal(t, time.Duration(0), cfg.SimulatedLatency)
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
}
