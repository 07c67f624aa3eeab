package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Mock REST backends. The user-side collections (users, userCategories,
	// transactions) and the admin-side collections (admin, category) are
	// served by separate instances.
	UserAPIBaseURL  string
	AdminAPIBaseURL string

	// Transaction history
	HistoryPageSize int

	// Sign-up: additionally require an '@' character in passwords.
	StrictPasswords bool

	// Image host
	Storage StorageConfig
}

// StorageConfig selects and configures the image host backend.
type StorageConfig struct {
	// Provider is "cloudinary" or "s3".
	Provider   string
	Cloudinary CloudinaryConfig
	S3         S3Config
}

// CloudinaryConfig holds unsigned-upload settings for the Cloudinary image host.
type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	pageSize, err := strconv.Atoi(getEnv("HISTORY_PAGE_SIZE", "5"))
	if err != nil || pageSize < 1 {
		return nil, fmt.Errorf("HISTORY_PAGE_SIZE must be a positive integer")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),
		Env:             getEnv("ENV", "development"),
		UserAPIBaseURL:  getEnv("USER_API_BASE_URL", "http://localhost:3001"),
		AdminAPIBaseURL: getEnv("ADMIN_API_BASE_URL", "http://localhost:3000"),
		HistoryPageSize: pageSize,
		StrictPasswords: getEnv("SIGNUP_REQUIRE_PASSWORD_SYMBOL", "false") == "true",
		Storage: StorageConfig{
			Provider: getEnv("STORAGE_PROVIDER", "cloudinary"),
			Cloudinary: CloudinaryConfig{
				CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
				UploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),
			},
			S3: S3Config{
				Region:          getEnv("S3_REGION", "us-east-1"),
				Bucket:          getEnv("S3_BUCKET", "finman-images"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.UserAPIBaseURL == "" {
		return fmt.Errorf("USER_API_BASE_URL is required")
	}
	if c.AdminAPIBaseURL == "" {
		return fmt.Errorf("ADMIN_API_BASE_URL is required")
	}
	switch c.Storage.Provider {
	case "cloudinary", "s3":
	default:
		return fmt.Errorf("STORAGE_PROVIDER must be cloudinary or s3, got %q", c.Storage.Provider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
