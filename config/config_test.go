package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/hours-validator/hours"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "LEASE_TTL", "REPORT_LANGUAGE", "FACTUUR_TEMPLATE", "ALLOWED_ORIGINS", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "hours.db", cfg.DBPath)
	assert.Equal(t, hours.DefaultLeaseTTL, cfg.LeaseTTL)
	assert.Equal(t, hours.DefaultPathTemplates, cfg.Paths)
	assert.Equal(t, "nl", cfg.Language)
	assert.Len(t, cfg.AllowedOrigins, 2)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LEASE_TTL", "90s")
	t.Setenv("REPORT_LANGUAGE", "en")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("OUTPUT_DAY_TEMPLATE", "out/{week}-day.csv")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.LeaseTTL)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "out/{week}-day.csv", cfg.Paths.OutputDay)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := Load()
	cfg.Port = 0
	cfg.LeaseTTL = 0
	cfg.Paths.Factuur = "factuur.csv"
	cfg.Paths.OutputDay = cfg.Paths.OutputWeek
	cfg.Language = "de"
	cfg.LogFormat = "xml"

	err := cfg.Validate()

	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"invalid port", "lease TTL", "FACTUUR_TEMPLATE", "must differ", "unsupported language", "log format"} {
		assert.True(t, strings.Contains(msg, want), "missing %q in %s", want, msg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HOURS_TEST_KEY=from-file\n"), 0o644))
	t.Setenv("HOURS_TEST_KEY", "")
	os.Unsetenv("HOURS_TEST_KEY")

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "from-file", os.Getenv("HOURS_TEST_KEY"))

	// Missing files are ignored
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
