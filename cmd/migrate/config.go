package main

import (
	"os"

	"github.com/joho/godotenv"
)

const defaultMigrationsDir = "db/migrations"

// loadEnvFiles reads .env files for local runs; environment already set by
// the runtime (e.g. Docker) wins over file values.
func loadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func migrationsDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return defaultMigrationsDir
}
