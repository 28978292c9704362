package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vango-dev/htmlkit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "htmlkit.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "HTMLKIT_"

	// DefaultAddress is the default fragment server address.
	DefaultAddress = ":8080"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log encoding.
	DefaultLogFormat = "json"

	// DefaultCharset is assumed for input that is not UTF-8.
	DefaultCharset = "windows-1252"
)

// Config represents the complete htmlkit.json configuration.
type Config struct {
	// Server contains fragment server settings.
	Server ServerConfig `json:"server" envPrefix:"SERVER_"`

	// Redis configures the shared fragment cache. An empty address keeps
	// the cache in memory.
	Redis RedisConfig `json:"redis" envPrefix:"REDIS_"`

	// Log contains logging settings.
	Log LogConfig `json:"log" envPrefix:"LOG_"`

	// Publish configures where rendered documents are written.
	Publish PublishConfig `json:"publish" envPrefix:"PUBLISH_"`

	// Input contains document input settings.
	Input InputConfig `json:"input" envPrefix:"INPUT_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains fragment server settings.
type ServerConfig struct {
	// Address is the listen address (host:port).
	Address string `json:"address,omitempty" env:"ADDRESS"`

	// ReadTimeout bounds reading a request (e.g., "10s").
	ReadTimeout string `json:"readTimeout,omitempty" env:"READ_TIMEOUT"`

	// WriteTimeout bounds writing a response.
	WriteTimeout string `json:"writeTimeout,omitempty" env:"WRITE_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" env:"SHUTDOWN_TIMEOUT"`

	// CacheTTL is how long rendered documents stay cached. "0" disables
	// caching.
	CacheTTL string `json:"cacheTTL,omitempty" env:"CACHE_TTL"`

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `json:"maxBodyBytes,omitempty" env:"MAX_BODY_BYTES"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" env:"ADDR"`
	Password string `json:"password,omitempty" env:"PASSWORD"`
	DB       int    `json:"db,omitempty" env:"DB"`
	Prefix   string `json:"prefix,omitempty" env:"PREFIX"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" env:"LEVEL"`

	// Format is json or console.
	Format string `json:"format,omitempty" env:"FORMAT"`
}

// PublishConfig contains output settings.
type PublishConfig struct {
	// Target is "-" for stdout, a directory, file://dir or s3://bucket/prefix.
	Target string `json:"target,omitempty" env:"TARGET"`

	// Region overrides the AWS region for S3 targets.
	Region string `json:"region,omitempty" env:"REGION"`
}

// InputConfig contains document input settings.
type InputConfig struct {
	// Charset names the encoding of input that is not valid UTF-8.
	Charset string `json:"charset,omitempty" env:"CHARSET"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         DefaultAddress,
			ReadTimeout:     "10s",
			WriteTimeout:    "10s",
			ShutdownTimeout: "15s",
			CacheTTL:        "5m",
			MaxBodyBytes:    1 << 20,
		},
		Redis: RedisConfig{
			Prefix: "htmlkit:",
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Publish: PublishConfig{
			Target: "-",
		},
		Input: InputConfig{
			Charset: DefaultCharset,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for htmlkit.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("H020").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Create " + ConfigFileName + " or rely on HTMLKIT_* environment variables")
		}
		return nil, errors.New("H020").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("H020").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Resolve builds the effective configuration: the file at path (or
// htmlkit.json in the working directory when path is empty and the file
// exists), then .env, then HTMLKIT_* variables. The result is validated.
func Resolve(path string) (*Config, error) {
	cfg := New()
	switch {
	case path != "":
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case Exists("."):
		loaded, err := Load(".")
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// The .env file is optional.
	_ = godotenv.Load()

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from HTMLKIT_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(env.Options{Prefix: EnvPrefix})
}

func (c *Config) applyEnv(opts env.Options) error {
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.New("H020").
			WithDetail("Invalid environment override").
			Wrap(err)
	}
	c.applyDefaults()
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("H020").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("H020").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	// Server
	if c.Server.Address == "" {
		c.Server.Address = d.Server.Address
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Server.CacheTTL == "" {
		c.Server.CacheTTL = d.Server.CacheTTL
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = d.Server.MaxBodyBytes
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}

	if c.Publish.Target == "" {
		c.Publish.Target = d.Publish.Target
	}
	if c.Input.Charset == "" {
		c.Input.Charset = DefaultCharset
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, port, err := net.SplitHostPort(c.Server.Address); err != nil {
		return errors.New("H022").
			WithDetail("Server address must be host:port, got " + strconv.Quote(c.Server.Address))
	} else if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return errors.New("H022").
			WithDetail("Port must be between 0 and 65535")
	}

	for name, value := range map[string]string{
		"server.readTimeout":     c.Server.ReadTimeout,
		"server.writeTimeout":    c.Server.WriteTimeout,
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
		"server.cacheTTL":        c.Server.CacheTTL,
	} {
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return errors.New("H020").
				WithDetail(name + " must be a non-negative duration, got " + strconv.Quote(value))
		}
	}

	if c.Server.MaxBodyBytes < 0 {
		return errors.New("H020").WithDetail("server.maxBodyBytes must not be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("H020").
			WithDetail("log.level must be debug, info, warn or error").
			WithSuggestion("Set log.level to \"info\"")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.New("H020").WithDetail("log.format must be json or console")
	}

	return nil
}

// ReadTimeout returns the parsed server read timeout.
func (c *Config) ReadTimeout() time.Duration { return mustDuration(c.Server.ReadTimeout) }

// WriteTimeout returns the parsed server write timeout.
func (c *Config) WriteTimeout() time.Duration { return mustDuration(c.Server.WriteTimeout) }

// ShutdownTimeout returns the parsed shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration { return mustDuration(c.Server.ShutdownTimeout) }

// CacheTTL returns the parsed render cache TTL.
func (c *Config) CacheTTL() time.Duration { return mustDuration(c.Server.CacheTTL) }

// UseRedis reports whether a Redis cache is configured.
func (c *Config) UseRedis() bool {
	return c.Redis.Addr != ""
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// mustDuration parses a validated duration; invalid values read as zero.
func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
