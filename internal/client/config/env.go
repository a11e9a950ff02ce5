package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/firflight/firflight/internal/flagx"
	"github.com/joho/godotenv"
)

func parseEnv(cfg *Config, args []string) error {
	file := flagx.EnvFile(args)
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", file, err)
	}

	lookup(&cfg.ServerURL, "FIRFLIGHT_SERVER_URL")
	lookup(&cfg.HealthAddr, "FIRFLIGHT_HEALTH_ADDR")
	lookup(&cfg.DatabasePath, "FIRFLIGHT_DB")
	lookup(&cfg.Language, "FIRFLIGHT_LANG")
	lookup(&cfg.LogLevel, "FIRFLIGHT_LOG_LEVEL")
	lookup(&cfg.TicketDir, "FIRFLIGHT_TICKET_DIR")

	if v, ok := os.LookupEnv("FIRFLIGHT_CHECK_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FIRFLIGHT_CHECK_INTERVAL: %w", err)
		}
		cfg.OnlineCheckInterval = d
	}
	return nil
}

func lookup(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
