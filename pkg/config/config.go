package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	EmailHost     string
	EmailUsername string
	EmailPassword string

	AttachmentsDir string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Prepended to every table name, e.g. "dev" gives "dev_emails".
	TableNamePrefix string

	// Message dates are normalized into this zone before being compared
	// against the requested date window.
	ReferenceTimezone string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		EmailHost:         getEnv("EMAIL_HOST", "imap.yandex.com"),
		EmailUsername:     os.Getenv("EMAIL_USERNAME"),
		EmailPassword:     os.Getenv("EMAIL_PASSWORD"),
		AttachmentsDir:    getEnv("PATH_TO_DOWNLOAD_ATTACHMENTS", defaultAttachmentsDir()),
		DBHost:            getEnv("DEFAULT_HOST", "localhost"),
		DBPort:            getEnv("DEFAULT_PORT", "5432"),
		DBUser:            getEnv("DEFAULT_USER", "postgres"),
		DBPassword:        os.Getenv("DEFAULT_PASSWORD"),
		DBName:            getEnv("DEFAULT_DB", "umailer"),
		TableNamePrefix:   tablePrefix(),
		ReferenceTimezone: getEnv("REFERENCE_TIMEZONE", "Asia/Almaty"),
	}
}

func tablePrefix() string {
	if prefix := os.Getenv("TABLE_NAME_PREFIX"); prefix != "" {
		return prefix + "_"
	}
	return ""
}

func defaultAttachmentsDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "attachments"
	}
	return filepath.Join(wd, "attachments")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
