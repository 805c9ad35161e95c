package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "regnet/pkg/platform/strings"
)

// Ledger backends selectable with REGNET_LEDGER_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

// Server captures process level configuration.
type Server struct {
	Addr     string
	LogLevel string
	Ledger   LedgerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
}

// LedgerConfig selects and tunes the world state backend.
type LedgerConfig struct {
	Backend    string
	MaxRetries int
	TxTimeout  time.Duration
}

// DatabaseConfig is used by the postgres and sqlite backends.
type DatabaseConfig struct {
	URL          string
	Driver       string // postgres (lib/pq) or pgx
	SQLitePath   string
	MaxOpenConns int
}

// RedisConfig is used by the redis backend.
type RedisConfig struct {
	URL          string
	KeyPrefix    string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig enables ledger event publication when Brokers is non-empty.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
	// DeliveryTimeout bounds one event publish, including broker retries.
	DeliveryTimeout time.Duration
}

// AuthConfig configures bearer token validation and MSP to role mapping.
type AuthConfig struct {
	JWTSigningKey string
	JWTIssuer     string
	RegistrarMSP  string
	UserMSP       string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:     getEnv("REGNET_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Ledger: LedgerConfig{
			Backend:    strings.ToLower(getEnv("REGNET_LEDGER_BACKEND", BackendMemory)),
			MaxRetries: getEnvInt("REGNET_LEDGER_MAX_RETRIES", 2),
			TxTimeout:  getEnvDuration("REGNET_LEDGER_TX_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			Driver:       getEnv("DATABASE_DRIVER", "postgres"),
			SQLitePath:   getEnv("SQLITE_PATH", "data/regnet.db"),
			MaxOpenConns: getEnvInt("DATABASE_MAX_OPEN_CONNS", 10),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "regnet:state:"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:  pstrings.SplitList(os.Getenv("KAFKA_BROKERS"), ","),
			Topic:    getEnv("REGNET_EVENTS_TOPIC", "regnet.ledger.events"),
			ClientID: getEnv("KAFKA_CLIENT_ID", "regnet"),

			DeliveryTimeout: getEnvDuration("KAFKA_DELIVERY_TIMEOUT", 5*time.Second),
		},
		Auth: AuthConfig{
			// Use a default for development - should be overridden in production
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     getEnv("JWT_ISSUER", "regnet"),
			RegistrarMSP:  getEnv("REGNET_REGISTRAR_MSP", "registrarMSP"),
			UserMSP:       getEnv("REGNET_USER_MSP", "usersMSP"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}
