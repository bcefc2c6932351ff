package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dejavas-ai/arena/utils"
)

func init() {
	// Load .env file when one is present.
	if utils.FileExists(".env") {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: failed to load .env file: %v", err)
		}
	}

	// Verify required environment variables
	required := []string{
		"OPENAI_API_KEY",
	}

	for _, env := range required {
		if os.Getenv(env) == "" {
			log.Printf("Warning: %s environment variable not set\n", env)
		}
	}
}

// OpenAIKey returns the configured OpenAI API key, if any.
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// SerpAPIKey returns the configured SerpApi key, if any.
func SerpAPIKey() string {
	return os.Getenv("SERP_API_KEY")
}

// NATSURL returns the event broker URL, if configured.
func NATSURL() string {
	return os.Getenv("NATS_URL")
}

// DataDir returns the session archive directory. Empty disables
// persistence.
func DataDir() string {
	return os.Getenv("ARENA_DATA_DIR")
}
