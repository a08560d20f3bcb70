package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name    string `envconfig:"APP_NAME" default:"GL Stream Service"`
		Version string `envconfig:"APP_VERSION" default:"1.0.0"`
		Port    int    `envconfig:"PORT" default:"8080"`
	}

	Generator struct {
		Seed           int64         `envconfig:"RANDOM_SEED" default:"42"`
		HistoricalDays int           `envconfig:"HISTORICAL_DAYS" default:"365"`
		Epoch          string        `envconfig:"FIXED_START_DATE" default:"2025-11-10"`
		StreamInterval time.Duration `envconfig:"STREAMING_INTERVAL" default:"30s"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"glstream"`
	}

	Ingest struct {
		APIBaseURL string        `envconfig:"INGEST_API_URL" default:"http://localhost:8080"`
		Schedule   string        `envconfig:"INGEST_SCHEDULE" default:"0 6 * * *"`
		BatchLimit int           `envconfig:"INGEST_BATCH_LIMIT" default:"5000"`
		Timeout    time.Duration `envconfig:"INGEST_TIMEOUT" default:"60s"`
	}
}

// EpochDate parses the fixed start date the generator anchors to.
func (c *Config) EpochDate() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, c.Generator.Epoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing FIXED_START_DATE %q: %w", c.Generator.Epoch, err)
	}

	return t, nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Generator.HistoricalDays < 1 {
		return nil, fmt.Errorf("HISTORICAL_DAYS must be positive, got %d", cfg.Generator.HistoricalDays)
	}

	if _, err := cfg.EpochDate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
