// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	JWTExpiry       time.Duration
	RedisAddr       string // empty means refresh tokens live in memory
	RefreshTokenTTL time.Duration
	MQTTBroker      string // empty disables the odometer feed
	MQTTTopic       string
	LogLevel        string
	LogJSON         bool
}

// Load reads the environment into a Config. A .env file is applied first if
// one exists; a missing file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "8080"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "garagelog"),
		JWTSecret:       getenv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:       getduration("JWT_EXPIRY", 24*time.Hour),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RefreshTokenTTL: getduration("REFRESH_TOKEN_TTL", 720*time.Hour),
		MQTTBroker:      os.Getenv("MQTT_BROKER"),
		MQTTTopic:       getenv("MQTT_TOPIC", "garagelog/odometer/#"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogJSON:         os.Getenv("LOG_JSON") == "true",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
