package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML []byte

// Config holds application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Cache      CacheConfig      `yaml:"cache"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Auth       AuthConfig       `yaml:"auth"`
	Mail       MailConfig       `yaml:"mail"`
	Narrative  NarrativeConfig  `yaml:"narrative"`
	Projection ProjectionConfig `yaml:"projection"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" | "text"
}

// CacheConfig selects the projection cache. An empty RedisAddr keeps the
// cache in process memory.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

// RateLimitConfig sizes the per-client token bucket. Capacity tokens refill
// over Window; a projection or settlement costs one token and a sensitivity
// sweep costs SweepCost.
type RateLimitConfig struct {
	Capacity  int           `yaml:"capacity"`
	Window    time.Duration `yaml:"window"`
	SweepCost int           `yaml:"sweep_cost"`
}

// AuthConfig enables bearer-token auth on the HTTP API when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type MailConfig struct {
	SMTPHost    string `yaml:"smtp_host"`
	SMTPPort    string `yaml:"smtp_port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	SenderEmail string `yaml:"sender_email"`
}

// NarrativeConfig points at an OpenAI-compatible chat completions endpoint.
// Without an API key the narrative falls back to a fixed template.
type NarrativeConfig struct {
	APIKey  string        `yaml:"api_key"`
	APIURL  string        `yaml:"api_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type ProjectionConfig struct {
	DefaultHorizonYears int `yaml:"default_horizon_years"`
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}
	return &cfg, nil
}

// Load reads the embedded defaults, overlays the YAML file at path (if path
// is not empty) and finally applies environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Addr = getEnv("HEI_ADDR", c.Server.Addr)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Cache.RedisAddr = getEnv("REDIS_ADDR", c.Cache.RedisAddr)
	c.Cache.RedisPassword = getEnv("REDIS_PASSWORD", c.Cache.RedisPassword)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Mail.SMTPHost = getEnv("SMTP_HOST", c.Mail.SMTPHost)
	c.Mail.SMTPPort = getEnv("SMTP_PORT", c.Mail.SMTPPort)
	c.Mail.Username = getEnv("SMTP_USERNAME", c.Mail.Username)
	c.Mail.Password = getEnv("SMTP_PASSWORD", c.Mail.Password)
	c.Mail.SenderEmail = getEnv("SENDER_EMAIL", c.Mail.SenderEmail)
	c.Narrative.APIKey = getEnv("OPENAI_API_KEY", c.Narrative.APIKey)

	if v, ok := os.LookupEnv("CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL %q: %w", v, err)
		}
		c.Cache.TTL = ttl
	}
	if v, ok := os.LookupEnv("RATE_LIMIT_CAPACITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_CAPACITY %q: %w", v, err)
		}
		c.RateLimit.Capacity = n
	}
	return nil
}

// Validate checks the values the server cannot run without.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.RateLimit.Capacity <= 0 {
		return fmt.Errorf("rate_limit.capacity must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	if c.RateLimit.SweepCost <= 0 {
		return fmt.Errorf("rate_limit.sweep_cost must be positive")
	}
	if c.Projection.DefaultHorizonYears < 0 {
		return fmt.Errorf("projection.default_horizon_years must not be negative")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
