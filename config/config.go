package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Identity  IdentityConfig  `mapstructure:"identity"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Relay     RelayConfig     `mapstructure:"relay"`
	AMQP      AMQPConfig      `mapstructure:"amqp"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	LockTimeout     time.Duration `mapstructure:"lock_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// MigrateDSN returns the connection string in the form the pgx/v5 migrate driver expects.
func (d DatabaseConfig) MigrateDSN() string {
	return "pgx5" + strings.TrimPrefix(d.DSN(), "postgres")
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type IdentityConfig struct {
	Key            string `mapstructure:"key"`             // 32-byte hex-encoded key for AES-256
	FingerprintKey string `mapstructure:"fingerprint_key"` // hex-encoded blake2b key
}

type WalletConfig struct {
	IdentityPolicy     string `mapstructure:"identity_policy"` // lenient, strict
	DefaultCurrency    string `mapstructure:"default_currency"`
	DefaultAccountType string `mapstructure:"default_account_type"`
}

type RelayConfig struct {
	URLTemplate    string          `mapstructure:"url_template"`
	EventName      string          `mapstructure:"event_name"`
	Timeout        time.Duration   `mapstructure:"timeout"`
	RetrySchedule  string          `mapstructure:"retry_schedule"`
	RetryBatch     int             `mapstructure:"retry_batch"`
	RetryIntervals []time.Duration `mapstructure:"retry_intervals"`
	DedupeTTL      time.Duration   `mapstructure:"dedupe_ttl"`
}

type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type RateLimitConfig struct {
	WebhookLimit  int           `mapstructure:"webhook_limit"`
	WebhookWindow time.Duration `mapstructure:"webhook_window"`
	AdminLimit    int           `mapstructure:"admin_limit"`
	AdminWindow   time.Duration `mapstructure:"admin_window"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CWS_ (Client Wallet Service).
// Nested keys use underscore: CWS_DATABASE_HOST, CWS_RELAY_URL_TEMPLATE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "client_wallets")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.lock_timeout", "5s")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "client-wallet-service")
	v.SetDefault("identity.key", "")
	v.SetDefault("identity.fingerprint_key", "")
	v.SetDefault("wallet.identity_policy", "lenient")
	v.SetDefault("wallet.default_currency", "NGN")
	v.SetDefault("wallet.default_account_type", "Wallet")
	v.SetDefault("relay.url_template", "https://{site_name}/api/method/virtual_payment.virtual_payment.utils.wallet_log")
	v.SetDefault("relay.event_name", "wallet_created")
	v.SetDefault("relay.timeout", "10s")
	v.SetDefault("relay.retry_schedule", "@every 1m")
	v.SetDefault("relay.retry_batch", 50)
	v.SetDefault("relay.retry_intervals", []string{"1m", "5m", "15m", "1h", "6h"})
	v.SetDefault("relay.dedupe_ttl", "72h")
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "wallet.events")
	v.SetDefault("ratelimit.webhook_limit", 120)
	v.SetDefault("ratelimit.webhook_window", "1m")
	v.SetDefault("ratelimit.admin_limit", 300)
	v.SetDefault("ratelimit.admin_window", "1m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CWS_DATABASE_HOST -> database.host
	v.SetEnvPrefix("CWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("storage.driver must be postgres or memory, got %q", c.Storage.Driver)
	}
	switch c.Wallet.IdentityPolicy {
	case "lenient", "strict":
	default:
		return fmt.Errorf("wallet.identity_policy must be lenient or strict, got %q", c.Wallet.IdentityPolicy)
	}
	if !strings.Contains(c.Relay.URLTemplate, "{site_name}") {
		return fmt.Errorf("relay.url_template must contain {site_name}")
	}
	return nil
}
