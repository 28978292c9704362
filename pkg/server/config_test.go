package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vango-dev/htmlkit/internal/config"
)

func TestWithDefaults(t *testing.T) {
	cfg := Config{Address: ":9000", CacheTTL: 0}.withDefaults()

	assert.Equal(t, ":9000", cfg.Address)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.NotNil(t, cfg.CheckOrigin)
}

func TestConfigFrom(t *testing.T) {
	c := config.New()
	c.Server.Address = "127.0.0.1:9999"
	c.Server.ReadTimeout = "3s"
	c.Server.CacheTTL = "0s"
	c.Server.MaxBodyBytes = 512

	cfg := ConfigFrom(c)
	assert.Equal(t, "127.0.0.1:9999", cfg.Address)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, int64(512), cfg.MaxBodyBytes)

	assert.Equal(t, DefaultConfig().Address, ConfigFrom(nil).Address)
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin", "", true},
		{"same host", "http://example.com", true},
		{"other host", "http://evil.example", false},
		{"bad url", "://", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, SameOriginCheck(req))
		})
	}
}
