package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig
	Gin      *GinConfig
	Postgres *PostgresConfig
	Session  *SessionConfig
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	TrustedProxies     []string      `mapstructure:"trusted_proxies"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
	PasswordPattern    string        `mapstructure:"password_pattern"`
	SeedDemoUsers      bool          `mapstructure:"seed_demo_users"`
	LoginRatePerSecond float64       `mapstructure:"login_rate_per_second"`
	LoginRateBurst     int           `mapstructure:"login_rate_burst"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a key/value connection string understood by pgx.
func (c *PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, sslMode)
}

type SessionConfig struct {
	Driver        string        `mapstructure:"driver"`
	TTL           time.Duration `mapstructure:"ttl"`
	DraftTTL      time.Duration `mapstructure:"draft_ttl"`
	PurgeSchedule string        `mapstructure:"purge_schedule"`
	Redis         *RedisConfig  `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

const (
	SessionDriverMemory = "memory"
	SessionDriverRedis  = "redis"
)

var mu sync.RWMutex

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.token_ttl", 24*time.Hour)
	v.SetDefault("api.password_pattern", `^.{6,}$`)
	v.SetDefault("api.seed_demo_users", true)
	v.SetDefault("api.login_rate_per_second", 1)
	v.SetDefault("api.login_rate_burst", 5)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("session.driver", SessionDriverMemory)
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.draft_ttl", 7*24*time.Hour)
	v.SetDefault("session.purge_schedule", "@every 10m")
	v.SetDefault("session.redis.addr", "localhost:6379")
}

// Load reads the yaml file at path, lets environment variables override any
// key (api.port -> API_PORT) and watches the file for changes.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		reload(v, conf, e)
	})
	v.WatchConfig()

	return conf, nil
}

// reload only applies keys that are safe to change on a running server.
func reload(v *viper.Viper, conf *AppConfig, e fsnotify.Event) {
	if !e.Has(fsnotify.Write) {
		return
	}

	fresh := &AppConfig{}
	if err := v.Unmarshal(fresh); err != nil {
		zap.L().Error("config reload failed", zap.String("file", e.Name), zap.Error(err))
		return
	}
	if err := fresh.validate(); err != nil {
		zap.L().Error("config reload rejected, keeping the running config", zap.String("file", e.Name), zap.Error(err))
		return
	}

	mu.Lock()
	conf.API.AllowedCORSDomains = fresh.API.AllowedCORSDomains
	mu.Unlock()

	zap.L().Info("config reloaded, only allowed_cors_domains is applied without a restart",
		zap.String("file", e.Name))
}

// CORSDomains returns the allowed origins, which may change on reload.
func (c *APIConfig) CORSDomains() []string {
	mu.RLock()
	defer mu.RUnlock()

	return c.AllowedCORSDomains
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.Gin == nil || c.Postgres == nil || c.Session == nil {
		return fmt.Errorf("config: api, gin, postgres and session sections are required")
	}
	if c.API.JWTSigningKey == "" {
		return fmt.Errorf("config: api.jwt_signing_key is required")
	}

	switch c.Session.Driver {
	case SessionDriverMemory:
	case SessionDriverRedis:
		if c.Session.Redis == nil || c.Session.Redis.Addr == "" {
			return fmt.Errorf("config: session.redis.addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("config: unknown session driver %q", c.Session.Driver)
	}

	return nil
}
