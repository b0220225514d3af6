// Package config loads runtime configuration for the booking client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the booking API
//	-d string   path of the local session database
//	-i int      online status check interval (seconds)
//	-l string   log file ("" disables logging)
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://spa.example.com/api",
//	  "database_path": "session.db",
//	  "log_file": "spabook.log",
//	  "online_check_interval": "5s",
//	  "request_timeout": "10s",
//	  "max_retries": 2,
//	  "catalog_ttl": "5m"
//	}
//
// Keys missing from the file keep their previous value.
package config
