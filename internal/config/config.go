package config

import (
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	App       AppConfig
	RateLimit RateLimitConfig
	Health    HealthConfig
}

type ServerConfig struct {
	Port            string `mapstructure:"SERVER_PORT"`
	Host            string `mapstructure:"SERVER_HOST"`
	Env             string `mapstructure:"ENV"`
	ReadTimeout     string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout    string `mapstructure:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout string `mapstructure:"SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string `mapstructure:"DATABASE_URL"`
	Host            string `mapstructure:"DATABASE_HOST"`
	Port            string `mapstructure:"DATABASE_PORT"`
	Name            string `mapstructure:"DATABASE_NAME"`
	User            string `mapstructure:"DATABASE_USER"`
	Password        string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode         string `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns    int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime string `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
	AutoMigrate     bool   `mapstructure:"AUTO_MIGRATE"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	CacheTTL string `mapstructure:"CACHE_TTL"`
}

type SchedulerConfig struct {
	Timezone     string `mapstructure:"SCHEDULER_TIMEZONE"`
	OverdueSpec  string `mapstructure:"SCHEDULER_OVERDUE_SPEC"`
	ReminderSpec string `mapstructure:"SCHEDULER_REMINDER_SPEC"`
	ReminderDays int    `mapstructure:"REMINDER_DAYS"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type AppConfig struct {
	Timezone string `mapstructure:"APP_TIMEZONE"`
}

type RateLimitConfig struct {
	RequestsPerMinute int    `mapstructure:"RATE_LIMIT_RPM"`
	Burst             int    `mapstructure:"RATE_LIMIT_BURST"`
	TrustedProxies    string `mapstructure:"RATE_LIMIT_TRUSTED_PROXIES"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var defaults = map[string]interface{}{
	"SERVER_PORT":                "8080",
	"SERVER_HOST":                "0.0.0.0",
	"ENV":                        "development",
	"SERVER_READ_TIMEOUT":        "15s",
	"SERVER_WRITE_TIMEOUT":       "15s",
	"SERVER_SHUTDOWN_TIMEOUT":    "30s",
	"DATABASE_URL":               "",
	"DATABASE_HOST":              "localhost",
	"DATABASE_PORT":              "5432",
	"DATABASE_NAME":              "finance_tracker",
	"DATABASE_USER":              "postgres",
	"DATABASE_PASSWORD":          "",
	"DATABASE_SSLMODE":           "disable",
	"DATABASE_MAX_OPEN_CONNS":    25,
	"DATABASE_MAX_IDLE_CONNS":    5,
	"DATABASE_CONN_MAX_LIFETIME": "5m",
	"AUTO_MIGRATE":               true,
	"REDIS_HOST":                 "localhost",
	"REDIS_PORT":                 "6379",
	"REDIS_PASSWORD":             "",
	"REDIS_DB":                   0,
	"CACHE_TTL":                  "10m",
	"SCHEDULER_TIMEZONE":         "America/Sao_Paulo",
	"SCHEDULER_OVERDUE_SPEC":     "5 0 * * *",
	"SCHEDULER_REMINDER_SPEC":    "0 8 * * *",
	"REMINDER_DAYS":              7,
	"LOG_LEVEL":                  "info",
	"LOG_FORMAT":                 "json",
	"APP_TIMEZONE":               "America/Sao_Paulo",
	"RATE_LIMIT_RPM":             120,
	"RATE_LIMIT_BURST":           20,
	"RATE_LIMIT_TRUSTED_PROXIES": "",
	"HEALTH_CHECK_TIMEOUT":       "5s",
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Don't fail if .env file doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Read from environment variables
	v.AutomaticEnv()

	var config Config
	sections := []interface{}{
		&config.Server,
		&config.Database,
		&config.Redis,
		&config.Scheduler,
		&config.Logging,
		&config.App,
		&config.RateLimit,
		&config.Health,
	}
	for _, section := range sections {
		if err := v.Unmarshal(section); err != nil {
			return nil, fmt.Errorf("unable to decode config: %w", err)
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST and DATABASE_NAME are required")
	}

	durations := map[string]string{
		"SERVER_READ_TIMEOUT":        c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":       c.Server.WriteTimeout,
		"SERVER_SHUTDOWN_TIMEOUT":    c.Server.ShutdownTimeout,
		"DATABASE_CONN_MAX_LIFETIME": c.Database.ConnMaxLifetime,
		"CACHE_TTL":                  c.Redis.CacheTTL,
		"HEALTH_CHECK_TIMEOUT":       c.Health.Timeout,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", key, err)
		}
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE must be a valid IANA timezone: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA timezone: %w", err)
	}

	if c.Scheduler.ReminderDays < 0 {
		return fmt.Errorf("REMINDER_DAYS must not be negative")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL is not a valid level: %w", err)
	}

	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPM and RATE_LIMIT_BURST must not be negative")
	}

	if _, err := c.TrustedProxies(); err != nil {
		return err
	}

	return nil
}

// TrustedProxies parses RATE_LIMIT_TRUSTED_PROXIES, a comma separated list of
// CIDRs or bare addresses allowed to set X-Forwarded-For
func (c *Config) TrustedProxies() ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, entry := range strings.Split(c.RateLimit.TrustedProxies, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("RATE_LIMIT_TRUSTED_PROXIES has an invalid CIDR %q: %w", entry, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT_TRUSTED_PROXIES has an invalid address %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// DSN returns the PostgreSQL connection string. DATABASE_URL wins over the
// individual connection settings.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": []string{c.Database.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// RedisAddr returns host:port of the Redis server
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.Redis.Host, c.Redis.Port)
}

// ServerAddr returns the address the HTTP server listens on
func (c *Config) ServerAddr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	return mustDuration(c.Server.ReadTimeout)
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	return mustDuration(c.Server.WriteTimeout)
}

// GetShutdownTimeout returns the graceful shutdown timeout as duration
func (c *Config) GetShutdownTimeout() time.Duration {
	return mustDuration(c.Server.ShutdownTimeout)
}

// GetConnMaxLifetime returns the pool connection lifetime as duration
func (c *Config) GetConnMaxLifetime() time.Duration {
	return mustDuration(c.Database.ConnMaxLifetime)
}

// GetCacheTTL returns the plan cache TTL as duration
func (c *Config) GetCacheTTL() time.Duration {
	return mustDuration(c.Redis.CacheTTL)
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	return mustDuration(c.Health.Timeout)
}

// Location returns the timezone calendar dates are interpreted in
func (c *Config) Location() *time.Location {
	return mustLocation(c.App.Timezone)
}

// SchedulerLocation returns the timezone cron specs are evaluated in
func (c *Config) SchedulerLocation() *time.Location {
	return mustLocation(c.Scheduler.Timezone)
}

func mustDuration(value string) time.Duration {
	duration, _ := time.ParseDuration(value)
	return duration
}

func mustLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}
