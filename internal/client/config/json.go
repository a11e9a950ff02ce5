package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/firflight/firflight/internal/flagx"
	"github.com/firflight/firflight/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Only fields
// present in the file override the current values.
type JSONConfig struct {
	ServerURL           *string         `json:"server_url"`
	HealthAddr          *string         `json:"health_addr"`
	DatabasePath        *string         `json:"database_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	Language            *string         `json:"language"`
	LogLevel            *string         `json:"log_level"`
	TicketDir           *string         `json:"ticket_dir"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.HealthAddr, jc.HealthAddr)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.Language, jc.Language)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.TicketDir, jc.TicketDir)
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
