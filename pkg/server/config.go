package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/htmlkit/internal/config"
)

// Config holds the fragment server configuration.
type Config struct {
	// Address is the address to listen on (e.g., ":8080").
	Address string

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10 seconds.
	ReadTimeout time.Duration

	// ReadHeaderTimeout is the maximum duration for reading request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum time to wait for the next request on a
	// keep-alive connection. Default: 60 seconds.
	IdleTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 15 seconds.
	ShutdownTimeout time.Duration

	// CacheTTL is how long /v1/render results are cached when a cache is
	// configured. Zero disables caching.
	CacheTTL time.Duration

	// MaxBodyBytes limits request bodies and WebSocket messages.
	// Default: 1MB.
	MaxBodyBytes int64

	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// CheckOrigin validates the WebSocket Origin header.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:           config.DefaultAddress,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   15 * time.Second,
		CacheTTL:          5 * time.Minute,
		MaxBodyBytes:      1 << 20,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
	}
}

// ConfigFrom maps the server section of a loaded htmlkit.json onto a
// Config. The file config is expected to be validated.
func ConfigFrom(c *config.Config) Config {
	cfg := DefaultConfig()
	if c == nil {
		return cfg
	}
	cfg.Address = c.Server.Address
	cfg.ReadTimeout = c.ReadTimeout()
	cfg.WriteTimeout = c.WriteTimeout()
	cfg.ShutdownTimeout = c.ShutdownTimeout()
	cfg.CacheTTL = c.CacheTTL()
	if c.Server.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = c.Server.MaxBodyBytes
	}
	return cfg
}

// withDefaults fills unset fields from DefaultConfig. CacheTTL is left as
// given, so zero keeps caching off.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	return c
}

// SameOriginCheck accepts WebSocket upgrades whose Origin host matches the
// request host. Requests without an Origin header are accepted.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}
