package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/firflight/firflight/internal/flagx"
	"github.com/firflight/firflight/internal/timex"
)

// JSONConfig is the on-disk form of Config. Pointer fields distinguish
// "absent" from zero values, so a file may set only some options.
type JSONConfig struct {
	HTTPAddr                    *string         `json:"http_addr"`
	HealthAddr                  *string         `json:"health_addr"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	SignInRateLimit             *int            `json:"sign_in_rate_limit"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJSON loads the file named by -c/-config, if any.
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

	set(&cfg.HTTPAddr, jc.HTTPAddr)
	set(&cfg.HealthAddr, jc.HealthAddr)
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.SecretKey, jc.SecretKey)
	set(&cfg.S3RootUser, jc.S3RootUser)
	set(&cfg.S3RootPassword, jc.S3RootPassword)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	set(&cfg.SignInRateLimit, jc.SignInRateLimit)
	set(&cfg.LogLevel, jc.LogLevel)
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
