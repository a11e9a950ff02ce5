package config

import (
	"flag"
	"io"
	"time"

	"github.com/firflight/firflight/internal/flagx"
)

// parseFlags populates Config from the flags it owns; other flags in args
// are ignored (see flagx.FilterArgs).
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-h", "-d", "-i", "-l", "-v", "-t"})

	fs := flag.NewFlagSet("firflight", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API server")
	fs.StringVar(&cfg.HealthAddr, "h", cfg.HealthAddr, "address of the gRPC health endpoint")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.Language, "l", cfg.Language, "UI language")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.TicketDir, "t", cfg.TicketDir, "directory for downloaded tickets")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
	return nil
}
