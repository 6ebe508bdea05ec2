package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Database
	DBDSN string

	// Server
	Port       string
	CORSOrigin string

	// Auth
	JWTSecret     string
	TokenTTLHours int
}

func Load() *Config {
	cfg := &Config{
		DBDSN: getEnv("DB_DSN", "root:password@tcp(127.0.0.1:3306)/carelink?parseTime=true"),

		Port:       getEnv("PORT", "8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 72),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
