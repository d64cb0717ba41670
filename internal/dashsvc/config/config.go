package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	StoreDriver    string // "postgres" (default) or "memory"
	HistoryEnabled bool
	HistoryTTL     time.Duration
}

func Load() Config {
	cfg := Config{
		StoreDriver: os.Getenv("STORE_DRIVER"),
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = "postgres"
	}

	cfg.HistoryEnabled = os.Getenv("HISTORY_ENABLED") == "true"
	if days, err := strconv.Atoi(os.Getenv("HISTORY_TTL_DAYS")); err == nil && days > 0 {
		cfg.HistoryTTL = time.Duration(days) * 24 * time.Hour
	}

	return cfg
}
