package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config carries everything the service reads from the environment.
type Config struct {
	ListenAddr     string
	DataDir        string
	DBPath         string
	TemplateDir    string
	GarminAPIURL   string
	SyncSchedule   string // cron expression for the scheduled refresh
	SyncPageSize   int
	DownloadFormat string // fit or gpx
}

// Load reads .env (if present) and the environment, filling in defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8888"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		TemplateDir:    getEnv("TEMPLATE_DIR", "./internal/web/templates"),
		GarminAPIURL:   getEnv("GARMIN_API_URL", "http://garmin-api:8081"),
		SyncSchedule:   getEnv("SYNC_SCHEDULE", "@hourly"),
		DownloadFormat: getEnv("DOWNLOAD_FORMAT", "fit"),
	}

	cfg.DBPath = os.Getenv("DB_PATH")
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "garmin.db")
	}

	pageSize := getEnv("SYNC_PAGE_SIZE", "100")
	n, err := strconv.Atoi(pageSize)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("invalid SYNC_PAGE_SIZE %q", pageSize)
	}
	cfg.SyncPageSize = n

	if cfg.DownloadFormat != "fit" && cfg.DownloadFormat != "gpx" {
		return nil, fmt.Errorf("invalid DOWNLOAD_FORMAT %q (want fit or gpx)", cfg.DownloadFormat)
	}

	if _, err := cron.ParseStandard(cfg.SyncSchedule); err != nil {
		return nil, fmt.Errorf("invalid SYNC_SCHEDULE %q: %w", cfg.SyncSchedule, err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
