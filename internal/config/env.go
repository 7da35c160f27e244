package config

import (
	"log/slog"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the first readable .env file. Existing process
// environment variables are never overwritten.
func loadEnvFiles() {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded environment variables", logfields.Path(path))
			return
		}
	}
}
