package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// StoreURL points at the remote document store. When empty the embedded
	// store is started on StorePort and used instead.
	StoreURL  string
	StorePort string
	StoreDSN  string // postgres DSN for the embedded store; sqlite otherwise
	StorePath string // sqlite file for the embedded store

	RabbitURL string // empty disables event publishing

	SchedulePageSize int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		StoreURL:         getEnv("STORE_URL", ""),
		StorePort:        getEnv("STORE_PORT", "3000"),
		StoreDSN:         getEnv("STORE_DSN", ""),
		StorePath:        getEnv("STORE_PATH", "gym_store.db"),
		RabbitURL:        getEnv("RABBIT_URL", ""),
		SchedulePageSize: 6,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
