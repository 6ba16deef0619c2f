// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every variable, e.g. MOVEHISTORY_ADDR.
const envPrefix = "MOVEHISTORY"

// Config is the full service configuration.
type Config struct {
	Addr          string `envconfig:"ADDR" default:":8080"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	JWTSigningKey string `envconfig:"JWT_SIGNING_KEY"`
	JWTIssuer     string `envconfig:"JWT_ISSUER" default:"movehistory"`

	Redis RedisConfig
	Kafka KafkaConfig
	Log   LogConfig

	// CacheTTL bounds how long a rendered history page is served from cache.
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"30s"`
}

// RedisConfig configures the rendered-page cache. An empty URL disables it.
type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// KafkaConfig configures the audit-record ingest consumer. Disabled unless
// brokers are set.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"audit-history"`
	Group   string   `envconfig:"KAFKA_GROUP" default:"movehistory"`
}

// Enabled reports whether the ingest consumer should run.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// LogConfig configures log level and output format.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`  // debug, info, warn, error
	Format string `envconfig:"LOG_FORMAT" default:"json"` // json, console
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}
