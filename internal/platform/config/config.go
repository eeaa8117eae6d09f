package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders; verification
// and redistribution code never reads the environment directly.
type Config struct {
	ServiceName string
	HTTPPort    string
	PublicURL   string

	PostgresDSN string

	ChainNodeURL     string
	ChainTimeout     time.Duration
	NotifyWebhookURL string

	SnapshotHeight int64
	ClaimDeadline  time.Time

	// TotalSupply is in whole coins; CapRatioNum/CapRatioDen selects the
	// fraction of it that forms the redistribution pool.
	TotalSupply     int64
	CapRatioNum     int64
	CapRatioDen     int64
	UnitScaleDigits int
}

func Load() (Config, error) {
	// Dotenv is a convenience for local runs; absence is not an error.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "claimer-api"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := Config{
		ServiceName:      service,
		HTTPPort:         port,
		PublicURL:        strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		PostgresDSN:      os.Getenv("POSTGRES_DSN"),
		ChainNodeURL:     strings.TrimRight(os.Getenv("CHAIN_NODE_URL"), "/"),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
	}

	var err error
	if cfg.SnapshotHeight, err = envInt64("SNAPSHOT_HEIGHT", 0); err != nil {
		return Config{}, err
	}
	if cfg.TotalSupply, err = envInt64("TOTAL_SUPPLY", 0); err != nil {
		return Config{}, err
	}
	if cfg.CapRatioNum, err = envInt64("CAP_RATIO_NUM", 1); err != nil {
		return Config{}, err
	}
	if cfg.CapRatioDen, err = envInt64("CAP_RATIO_DEN", 2); err != nil {
		return Config{}, err
	}

	scaleDigits, err := envInt64("UNIT_SCALE_DIGITS", 8)
	if err != nil {
		return Config{}, err
	}
	cfg.UnitScaleDigits = int(scaleDigits)

	timeoutSeconds, err := envInt64("CHAIN_TIMEOUT_SECONDS", 15)
	if err != nil {
		return Config{}, err
	}
	cfg.ChainTimeout = time.Duration(timeoutSeconds) * time.Second

	if raw := strings.TrimSpace(os.Getenv("CLAIM_DEADLINE")); raw != "" {
		deadline, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse CLAIM_DEADLINE: %w", err)
		}
		cfg.ClaimDeadline = deadline.UTC()
	}

	return cfg, nil
}

func envInt64(name string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return value, nil
}
