package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Notifier backends.
const (
	NotifierLog   = "log"
	NotifierKafka = "kafka"
	NotifierRedis = "redis"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	// DatabaseURL, when set, seeds accounts from Postgres at startup.
	DatabaseURL string

	Notifier           string
	KafkaBrokers       []string
	KafkaTopic         string
	RedisAddr          string
	RedisChannelPrefix string
	NotifyWorkers      int
	NotifyQueueSize    int

	CurrencyLabel string
}

// Load reads an optional .env file and then the process environment.
// It reports whether a .env file was found.
func Load() (*Config, bool) {
	loaded := godotenv.Load() == nil

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "production"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Notifier:           strings.ToLower(getEnv("NOTIFIER", NotifierLog)),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "transfer_notifications"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisChannelPrefix: getEnv("REDIS_CHANNEL_PREFIX", "notifications"),
		NotifyWorkers:      getIntEnv("NOTIFY_WORKERS", 4),
		NotifyQueueSize:    getIntEnv("NOTIFY_QUEUE_SIZE", 1024),
		CurrencyLabel:      getEnv("CURRENCY_LABEL", "Rs"),
	}, loaded
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
