package config

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/temperature-trend/internal/climate/meteostat"
)

type AppConfig struct {
	APIKey    string `validate:"required"`
	BaseURL   string `validate:"required,url"`
	StationID int    `validate:"gt=0"`

	// Year range, end exclusive.
	StartYear int `validate:"gte=0"`
	EndYear   int `validate:"gtfield=StartYear"`

	Workers   int `validate:"gte=1"`
	ChunkSize int `validate:"gte=0"` // 1 = one year per task, 0 = balanced chunks

	HTTPTimeout time.Duration `validate:"gt=0"`
	RateLimit   meteostat.BackoffConfig

	PredictYear int    `validate:"gt=0"`
	PlotPath    string `validate:"required"`

	// RefreshInterval controls how often the server refetches the whole range.
	RefreshInterval time.Duration `validate:"gt=0"`
	RunTimeout      time.Duration `validate:"gt=0"`

	// In-memory store retention.
	StoreMaxHistory int           // max number of runs kept (0 = unlimited)
	StoreMaxAge     time.Duration // max age of runs (0 = unlimited)

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}
	var err error

	cfg.APIKey = os.Getenv("METEOSTAT_API_KEY")
	cfg.BaseURL = getenvDefault("METEOSTAT_BASE_URL", meteostat.DefaultBaseURL)

	// Station near New York with a long record.
	if cfg.StationID, err = getenvInt("STATION_ID", 72502); err != nil {
		return nil, err
	}
	if cfg.StartYear, err = getenvInt("START_YEAR", 1920); err != nil {
		return nil, err
	}
	if cfg.EndYear, err = getenvInt("END_YEAR", 2020); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getenvInt("WORKERS", runtime.NumCPU()); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = getenvInt("CHUNK_SIZE", 1); err != nil {
		return nil, err
	}

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	if cfg.RateLimit.MaxRetries, err = getenvInt("RATE_LIMIT_MAX_RETRIES", 8); err != nil {
		return nil, err
	}
	if cfg.RateLimit.InitialInterval, err = getenvDuration("RATE_LIMIT_INITIAL_DELAY", "1s"); err != nil {
		return nil, err
	}
	if cfg.RateLimit.MaxInterval, err = getenvDuration("RATE_LIMIT_MAX_DELAY", "30s"); err != nil {
		return nil, err
	}

	if cfg.PredictYear, err = getenvInt("PREDICT_YEAR", 2020); err != nil {
		return nil, err
	}
	cfg.PlotPath = getenvDefault("PLOT_PATH", "temp_data.png")

	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "24h"); err != nil {
		return nil, err
	}
	if cfg.RunTimeout, err = getenvDuration("RUN_TIMEOUT", "30m"); err != nil {
		return nil, err
	}

	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 30); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "0s"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.RateLimit.MaxRetries < 0 || cfg.RateLimit.InitialInterval <= 0 {
		return nil, fmt.Errorf("invalid config: rate limit retries must be >= 0 and initial delay > 0")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
