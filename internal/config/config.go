package config

import (
	"os"
	"strings"
)

const (
	defaultHTTPAddr = ":8080"
	defaultDSN      = "leadflow.db"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	// Extra CORS origins on top of the local-development defaults,
	// comma separated.
	CORSOrigins []string
}

func Load() *Config {
	cfg := &Config{
		HTTPAddr:    defaultHTTPAddr,
		DatabaseURL: defaultDSN,
	}

	if addr := strings.TrimSpace(os.Getenv("HTTP_ADDR")); addr != "" {
		cfg.HTTPAddr = addr
	}
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg
}
