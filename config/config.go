package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ProposalsSource string
	MetadataSource  string
	CategoriesFile  string

	FetchTimeout   time.Duration
	SearchDebounce time.Duration
	BaseURL        string

	CSVOutputPath string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	ChromeBin      string
	BackupDir      string

	LogLevel string
	LogFile  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		ProposalsSource: getEnv("PROPOSALS_SOURCE", "./data/proposals_data.json"),
		MetadataSource:  getEnv("METADATA_SOURCE", "./data/proposals_metadata.json"),
		CategoriesFile:  getEnv("CATEGORIES_FILE", ""),

		FetchTimeout:   time.Duration(getEnvInt("FETCH_TIMEOUT_MS", 15000)) * time.Millisecond,
		SearchDebounce: time.Duration(getEnvInt("SEARCH_DEBOUNCE_MS", 300)) * time.Millisecond,
		BaseURL:        getEnv("BASE_URL", "https://presupuestos.example.org/"),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/proposals.csv"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		BackupDir:      getEnv("BACKUP_DIR", "./data/backups"),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}
