package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pricecart/pricecart/pkg/cache/inmemory"
	"github.com/pricecart/pricecart/pkg/cache/redis"
	"github.com/pricecart/pricecart/pkg/request/httpclient"
)

const envPrefix = "PRICECART"

type AppConfig struct {
	App           AppSettings         `mapstructure:"app"`
	APIServer     APIServerConfig     `mapstructure:"apiServer"`
	Cache         CacheConfig         `mapstructure:"cache"`
	SearchBackend SearchBackendConfig `mapstructure:"searchBackend"`
	Telemetry     TelemetryConfig     `mapstructure:"telemetry"`
}

type AppSettings struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"logLevel"`
}

type APIServerConfig struct {
	Host string     `mapstructure:"host"`
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
	Auth AuthConfig `mapstructure:"auth"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	AllowedMethods []string `mapstructure:"allowedMethods"`
	AllowedHeaders []string `mapstructure:"allowedHeaders"`
}

type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	APIKeys []string `mapstructure:"apiKeys"`
}

// CacheConfig selects the durable storage provider. "redis" is the
// durable default; "inmemory" is for local runs and tests.
type CacheConfig struct {
	Provider string          `mapstructure:"provider"`
	Redis    redis.Config    `mapstructure:"redis"`
	InMemory inmemory.Config `mapstructure:"inmemory"`
}

type SearchBackendConfig struct {
	URL            string                             `mapstructure:"url"`
	ConnectionPool httpclient.ConnectionPoolConfig    `mapstructure:"connectionPool"`
	Hystrix        httpclient.HystrixResiliencyConfig `mapstructure:"hystrix"`
}

type TelemetryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlpEndpoint"`
	Insecure     bool   `mapstructure:"insecure"`
}

// Load reads configuration from the given file (optional) layered with
// PRICECART_* environment variables over built-in defaults.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Cache.Provider != "redis" && cfg.Cache.Provider != "inmemory" {
		return nil, fmt.Errorf("unknown cache provider %q", cfg.Cache.Provider)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pricecart")
	v.SetDefault("app.environment", "local")
	v.SetDefault("app.logLevel", "info")

	v.SetDefault("apiServer.host", "0.0.0.0")
	v.SetDefault("apiServer.port", 8080)
	v.SetDefault("apiServer.cors.allowedOrigins", []string{"http://localhost:4200"})
	v.SetDefault("apiServer.cors.allowedMethods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("apiServer.cors.allowedHeaders", []string{"Origin", "Content-Type", "X-API-Key"})
	v.SetDefault("apiServer.auth.enabled", false)

	v.SetDefault("cache.provider", "inmemory")
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.inmemory.defaultExpiration", 0)
	v.SetDefault("cache.inmemory.cleanupInterval", 0)

	v.SetDefault("searchBackend.url", "http://localhost:8000")
	v.SetDefault("searchBackend.connectionPool.maxIdleConns", 10)
	v.SetDefault("searchBackend.connectionPool.maxIdleConnsPerHost", 10)
	v.SetDefault("searchBackend.connectionPool.idleConnTimeout", 90)
	v.SetDefault("searchBackend.connectionPool.timeout", 10000)
	v.SetDefault("searchBackend.hystrix.timeout", 15000)
	v.SetDefault("searchBackend.hystrix.maxConcurrentRequests", 50)
	v.SetDefault("searchBackend.hystrix.errorPercentThreshold", 25)
	v.SetDefault("searchBackend.hystrix.requestVolumeThreshold", 10)
	v.SetDefault("searchBackend.hystrix.sleepWindow", 5000)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlpEndpoint", "")
	v.SetDefault("telemetry.insecure", false)
}
