// Package config loads runtime configuration for the firflight client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables, after loading a dotenv file (-env, default
//     ".env") if one exists. Variables already set are not overridden by
//     the file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the API server
//	-h string   address of the gRPC health endpoint ("" disables it)
//	-d string   path of the local database
//	-i int      online status check interval (seconds)
//	-l string   UI language (en, zh)
//	-v string   log level (debug, info, warn, error)
//	-t string   directory for downloaded tickets
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "health_addr": "127.0.0.1:50051",
//	  "database_path": "firflight.db",
//	  "online_check_interval": "3s",
//	  "language": "en",
//	  "log_level": "info",
//	  "ticket_dir": "tickets"
//	}
//
// # Environment
//
//	FIRFLIGHT_SERVER_URL, FIRFLIGHT_HEALTH_ADDR, FIRFLIGHT_DB,
//	FIRFLIGHT_CHECK_INTERVAL, FIRFLIGHT_LANG, FIRFLIGHT_LOG_LEVEL,
//	FIRFLIGHT_TICKET_DIR
package config
