package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	DatabasePath     string
	UploadDir        string // Where uploaded image files are written
	LedgerPath       string // Append-only CSV record of registrations
	SessionSecret    string
	MaxImagesPerUser int
	MaxUploadBytes   int64 // Cap on a single request body
	AdminMobile      string
	AdminPassword    string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file is honored when present but is not required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	quota, err := strconv.Atoi(getEnv("MAX_IMAGES_PER_USER", "100"))
	if err != nil {
		return nil, err
	}

	bodyLimit, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", strconv.Itoa(16*1024*1024)), 10, 64)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./kycboard.db"),
		UploadDir:        getEnv("UPLOAD_DIR", "./static/uploads"),
		LedgerPath:       getEnv("LEDGER_PATH", "./users.csv"),
		SessionSecret:    getEnv("SESSION_SECRET", "kycboard-dev-secret"),
		MaxImagesPerUser: quota,
		MaxUploadBytes:   bodyLimit,
		AdminMobile:      getEnv("ADMIN_MOBILE", "9999999999"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
