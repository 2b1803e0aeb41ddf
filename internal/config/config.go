package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all runtime settings, loaded once at startup.
type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	JWTSecret     string
	TokenExpiry   time.Duration
	ChatAPIKey    string
	ChatAPISecret string
	CORSOrigin    string
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on environment variables")
	}

	expiry := 7 * 24 * time.Hour
	if v := os.Getenv("TOKEN_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			expiry = d
		} else {
			log.WithField("TOKEN_EXPIRY", v).Warn("Invalid token expiry, using default")
		}
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "lingualink"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenExpiry:   expiry,
		ChatAPIKey:    getEnv("CHAT_API_KEY", ""),
		ChatAPISecret: getEnv("CHAT_API_SECRET", ""),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:5173"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
