package config

import "time"

// Config holds runtime settings for the firflight client.
type Config struct {
	ServerURL           string
	HealthAddr          string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	Language            string
	LogLevel            string
	TicketDir           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.DatabasePath = "firflight.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.Language = "en"
	c.LogLevel = "warn"
	c.TicketDir = "tickets"
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and flags found in args (os.Args[1:]). Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
