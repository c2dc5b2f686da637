package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	DataDir       string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		// PORT is what hosting platforms inject; SERVER_PORT is the local override.
		ServerPort:    getEnv("PORT", getEnv("SERVER_PORT", "5000")),
		DataDir:       getEnv("DATA_DIR", "data"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
