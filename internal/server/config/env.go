package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/firflight/firflight/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv reads FIRFLIGHT_* variables after loading the dotenv file
// (-env, default ".env"). Variables already set in the process win over
// the file.
func parseEnv(cfg *Config, args []string) error {
	file := flagx.EnvFile(args)
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", file, err)
	}

	lookup(&cfg.HTTPAddr, "FIRFLIGHT_HTTP_ADDR")
	lookup(&cfg.HealthAddr, "FIRFLIGHT_HEALTH_ADDR")
	lookup(&cfg.DatabaseDSN, "FIRFLIGHT_DATABASE_DSN")
	lookup(&cfg.SecretKey, "FIRFLIGHT_SECRET_KEY")
	lookup(&cfg.S3RootUser, "FIRFLIGHT_S3_USER")
	lookup(&cfg.S3RootPassword, "FIRFLIGHT_S3_PASSWORD")
	lookup(&cfg.S3Bucket, "FIRFLIGHT_S3_BUCKET")
	lookup(&cfg.S3Region, "FIRFLIGHT_S3_REGION")
	lookup(&cfg.S3BaseEndpoint, "FIRFLIGHT_S3_ENDPOINT")
	lookup(&cfg.LogLevel, "FIRFLIGHT_LOG_LEVEL")

	if v, ok := os.LookupEnv("FIRFLIGHT_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FIRFLIGHT_TOKEN_TTL: %w", err)
		}
		cfg.AccessTokenValidityDuration = d
	}
	if v, ok := os.LookupEnv("FIRFLIGHT_SIGN_IN_RATE_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FIRFLIGHT_SIGN_IN_RATE_LIMIT: %w", err)
		}
		cfg.SignInRateLimit = n
	}
	return nil
}

func lookup(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
