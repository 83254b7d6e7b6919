package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for exported documents.
// An empty Endpoint disables exports.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LogConfig controls the global zerolog logger.
type LogConfig struct {
	Level  string
	Format string // json or console
}

// RevalidateConfig points at the storefront endpoint that drops cached admin pages.
// An empty URL turns the signal into a no-op.
type RevalidateConfig struct {
	URL        string
	Token      string
	TimeoutSec int
}

// DocumentsConfig tunes document issuance.
type DocumentsConfig struct {
	// ReferenceStrategy is "count" (derive the sequence from a yearly row count)
	// or "counter" (atomic per-year counter row).
	ReferenceStrategy string
	// StatusPolicy is "free" (any status to any status) or "strict".
	StatusPolicy string
	// ExportURLExpirySec is the lifetime of presigned export links.
	ExportURLExpirySec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost    string
	Port       string
	Timezone   string
	Database   DatabaseConfig
	MinIO      MinIOConfig
	Log        LogConfig
	Revalidate RevalidateConfig
	Documents  DocumentsConfig
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Revalidate: RevalidateConfig{
			URL:        getEnv("REVALIDATE_URL", ""),
			Token:      getEnv("REVALIDATE_TOKEN", ""),
			TimeoutSec: getEnvInt("REVALIDATE_TIMEOUT_SEC", 5),
		},
		Documents: DocumentsConfig{
			ReferenceStrategy:  getEnv("DOC_REFERENCE_STRATEGY", "count"),
			StatusPolicy:       getEnv("DOC_STATUS_POLICY", "free"),
			ExportURLExpirySec: getEnvInt("DOC_EXPORT_URL_EXPIRY_SEC", 900),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
