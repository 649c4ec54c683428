package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendURL  string
	StatePath   string
	ServerPort  int
	DatabaseURL string
	LogLevel    string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not loaded: %v. Using system environment variables", err)
	}

	return &Config{
		BackendURL:  envDefault("BACKEND_URL", "http://localhost:8080"),
		StatePath:   envDefault("STATE_PATH", "elivraria.db"),
		ServerPort:  envIntDefault("SERVER_PORT", 8080),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
