package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	DBPath         string
	LogLevel       string
	LogFormat      string
	ImportSheet    string
	MetricsEnabled bool
}

// Load reads .env (when present) and the process environment. The returned
// error only reports a missing or unreadable .env file; defaults still apply.
func Load() (AppConfig, error) {
	envErr := godotenv.Load()

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		DBPath:         get("DB_PATH", "cropmaster.db"),
		LogLevel:       get("LOG_LEVEL", "info"),
		LogFormat:      get("LOG_FORMAT", "json"),
		ImportSheet:    get("IMPORT_SHEET", "Sheet1"),
		MetricsEnabled: getBool("METRICS_ENABLED", true),
	}
	return cfg, envErr
}

// getBool accepts anything strconv.ParseBool does; unset or unparsable values fall back to def.
func getBool(k string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}
