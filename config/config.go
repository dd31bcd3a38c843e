// Package config loads settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/warp/hours-validator/hours"
)

type Config struct {
	// HTTP Server
	Port           int
	AllowedOrigins []string

	// Lease database
	DBPath   string
	LeaseTTL time.Duration

	// Files
	InputDir          string // uploaded workbooks
	FormattedInputDir string // converted CSV exports
	Paths             hours.PathTemplates

	// Output
	Language string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func Load() *Config {
	return &Config{
		Port:           getEnvInt("PORT", 8080),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),

		DBPath:   getEnv("DB_PATH", "hours.db"),
		LeaseTTL: getEnvDuration("LEASE_TTL", hours.DefaultLeaseTTL),

		InputDir:          getEnv("INPUT_DIR", "input"),
		FormattedInputDir: getEnv("FORMATTED_INPUT_DIR", "formatted_input"),
		Paths: hours.PathTemplates{
			Factuur:    getEnv("FACTUUR_TEMPLATE", hours.DefaultPathTemplates.Factuur),
			Kloklijst:  getEnv("KLOKLIJST_TEMPLATE", hours.DefaultPathTemplates.Kloklijst),
			OutputWeek: getEnv("OUTPUT_WEEK_TEMPLATE", hours.DefaultPathTemplates.OutputWeek),
			OutputDay:  getEnv("OUTPUT_DAY_TEMPLATE", hours.DefaultPathTemplates.OutputDay),
		},

		Language: getEnv("REPORT_LANGUAGE", string(hours.LanguageDutch)),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.Port < 1 || c.Port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if c.LeaseTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid lease TTL %v: must be positive", c.LeaseTTL))
	}

	templates := map[string]string{
		"FACTUUR_TEMPLATE":     c.Paths.Factuur,
		"KLOKLIJST_TEMPLATE":   c.Paths.Kloklijst,
		"OUTPUT_WEEK_TEMPLATE": c.Paths.OutputWeek,
		"OUTPUT_DAY_TEMPLATE":  c.Paths.OutputDay,
	}
	for _, key := range []string{"FACTUUR_TEMPLATE", "KLOKLIJST_TEMPLATE", "OUTPUT_WEEK_TEMPLATE", "OUTPUT_DAY_TEMPLATE"} {
		if !strings.Contains(templates[key], hours.WeekPlaceholder) {
			errors = append(errors, fmt.Sprintf("%s must contain %s", key, hours.WeekPlaceholder))
		}
	}
	if c.Paths.OutputWeek == c.Paths.OutputDay {
		errors = append(errors, "weekly and daily output templates must differ")
	}

	if _, err := hours.ParseLanguage(c.Language); err != nil {
		errors = append(errors, err.Error())
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be console or json", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
