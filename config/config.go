package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Observ   ObservabilityConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig selects the Postgres backing store. An empty URL keeps
// the in-memory stores.
type DatabaseConfig struct {
	URL string
}

// RedisConfig is optional; an empty Addr disables the identity cache and
// consumer-side event dedup.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig is optional; empty Brokers disable event publishing and
// the notification worker.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

// AuthConfig points at the external token-verification service. An empty
// VerifyURL leaves all routes open (dev mode).
type AuthConfig struct {
	VerifyURL string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       brokers,
			Topic:         getEnv("KAFKA_TOPIC_MARKETPLACE_EVENTS", "marketplace-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "booknook-notifications"),
		},
		Auth: AuthConfig{
			VerifyURL: getEnv("AUTH_VERIFY_URL", ""),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
