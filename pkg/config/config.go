package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	GoogleProjectID     string
	FirebaseCredentials string
	// Pub/Sub ingress is disabled when PubSubTopic is empty
	PubSubTopic          string
	PubSubSubscription   string
	PubSubMaxOutstanding int
	IngressJWTSecret     string
	LogLevel             string
	LogEncoding          string
	LogOutputs           []string
	ShutdownTimeout      time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	topic := getEnv("PUBSUB_TOPIC", "")
	subscription := getEnv("PUBSUB_SUBSCRIPTION", "")
	if subscription == "" && topic != "" {
		subscription = topic + "-sub" // Convention: topic-sub
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		GoogleProjectID:      getEnv("GOOGLE_PROJECT_ID", ""),
		FirebaseCredentials:  getEnv("FIREBASE_CREDENTIALS", ""),
		PubSubTopic:          topic,
		PubSubSubscription:   subscription,
		PubSubMaxOutstanding: getEnvInt("PUBSUB_MAX_OUTSTANDING", 10),
		IngressJWTSecret:     getEnv("INGRESS_JWT_SECRET", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogEncoding:          getEnv("LOG_ENCODING", "json"),
		LogOutputs:           getEnvList("LOG_OUTPUT", []string{"stdout"}),
		ShutdownTimeout:      getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
