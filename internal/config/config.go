package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	// CoverStorage selects the cover backend: "cloudinary", "s3" or "" (uploads disabled).
	CoverStorage string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	AWSS3Bucket        string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	JWTSecret string
	JWTTTL    time.Duration

	RateLimitComment time.Duration
	IPRateLimitRPS   float64
	IPRateLimitBurst int

	SearchReindexSchedule string

	AdminEmail    string
	AdminPassword string
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "bookcommunity"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CoverStorage: os.Getenv("COVER_STORAGE"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "book_community"),

		AWSS3Bucket:        os.Getenv("AWS_S3_BUCKET"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SearchReindexSchedule: getEnv("SEARCH_REINDEX_SCHEDULE", "0 3 * * *"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.RateLimitComment, err = parseDuration(getEnv("RATE_LIMIT_COMMENT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_COMMENT: %w", err)
	}
	cfg.IPRateLimitRPS, err = strconv.ParseFloat(getEnv("IP_RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid IP_RATE_LIMIT_RPS: %w", err)
	}
	cfg.IPRateLimitBurst, err = strconv.Atoi(getEnv("IP_RATE_LIMIT_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid IP_RATE_LIMIT_BURST: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "change-me"
	}

	switch cfg.CoverStorage {
	case "", "cloudinary", "s3":
	default:
		return nil, fmt.Errorf("invalid COVER_STORAGE %q", cfg.CoverStorage)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
