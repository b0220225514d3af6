package config

import "time"

// Config holds runtime settings for the booking client.
type Config struct {
	APIBaseURL          string
	DatabasePath        string
	LogFile             string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	MaxRetries          uint64
	CatalogTTL          time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.DatabasePath = "session.db"
	c.LogFile = "spabook.log"
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.MaxRetries = 2
	c.CatalogTTL = 5 * time.Minute
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
