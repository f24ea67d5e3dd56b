package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Defaults()
	cfg.DatabaseURL = "postgres://localhost:5432/campbuddy"
	return &cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := Defaults()
	err := Validate(&cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero location candidates", mutate: func(c *Config) { c.Planner.LocationCandidates = 0 }},
		{name: "too much concurrency", mutate: func(c *Config) { c.Planner.LocationConcurrency = 64 }},
		{name: "zero fallback sessions", mutate: func(c *Config) { c.Planner.FallbackSessionCount = 0 }},
		{name: "zero suggestions", mutate: func(c *Config) { c.Planner.SuggestionCount = 0 }},
		{name: "bad geocoder url", mutate: func(c *Config) { c.Geocoder.BaseURL = "not a url" }},
		{name: "zero rate", mutate: func(c *Config) { c.Geocoder.RequestsPerSecond = 0 }},
		{name: "bad sender", mutate: func(c *Config) { c.GmailSender = "nobody" }},
		{name: "missing camps tab", mutate: func(c *Config) { c.Catalog.CampsTab = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestValidate_WeeksRule(t *testing.T) {
	cfg := validConfig()
	cfg.Planner.WeeksRule = "NOT_A_RULE"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")

	cfg.Planner.WeeksRule = "DTSTART=20250603T000000Z;FREQ=DAILY;COUNT=8"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekly")

	cfg.Planner.WeeksRule = "DTSTART=20250603T000000Z;FREQ=WEEKLY"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bounded")
}

func TestLoadFromPath_AppliesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "campbuddy_config.yaml", `
databaseURL: postgres://localhost/campbuddy
planner:
  locationConcurrency: 4
  priorityOption: true
geocoder:
  cachePath: /tmp/geocache.db
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/campbuddy", cfg.DatabaseURL)
	assert.Equal(t, 4, cfg.Planner.LocationConcurrency)
	assert.True(t, cfg.Planner.PriorityOption)
	assert.Equal(t, 10, cfg.Planner.LocationCandidates)
	assert.Equal(t, 6, cfg.Planner.SuggestionCount)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoder.BaseURL)
	assert.Equal(t, "/tmp/geocache.db", cfg.Geocoder.CachePath)
	assert.Equal(t, "Sessions", cfg.Catalog.SessionsTab)

	opts := cfg.PlannerOptions()
	assert.Equal(t, 4, opts.LocationConcurrency)
	assert.Equal(t, 3, opts.FallbackSessionCount)
	assert.Equal(t, 5, opts.AlternativesLimit)
	assert.True(t, opts.PriorityOption)

	weeks, err := cfg.Weeks()
	require.NoError(t, err)
	assert.Len(t, weeks, 8)
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "campbuddy_config.yaml", `
databaseURL: postgres://localhost/campbuddy
planner:
  locationCandidates: 5
`)

	t.Setenv("CAMPBUDDY_DATABASE_URL", "postgres://db.internal/campbuddy")
	t.Setenv("CAMPBUDDY_PLANNER_LOCATION_CANDIDATES", "20")
	t.Setenv("CAMPBUDDY_PLANNER_STRICT_SESSIONS", "true")
	t.Setenv("CAMPBUDDY_GEOCODER_RPS", "2.5")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://db.internal/campbuddy", cfg.DatabaseURL)
	assert.Equal(t, 20, cfg.Planner.LocationCandidates)
	assert.True(t, cfg.Planner.StrictSessions)
	assert.Equal(t, 2.5, cfg.Geocoder.RequestsPerSecond)
}

func TestLoadFromPath_InvalidEnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "campbuddy_config.yaml", "databaseURL: postgres://localhost/campbuddy\n")
	t.Setenv("CAMPBUDDY_PLANNER_LOCATION_CONCURRENCY", "many")

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromPath(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "databaseURL: [unterminated")
	_, err = LoadFromPath(bad)
	assert.Error(t, err)

	invalid := writeFile(t, dir, "invalid.yaml", "planner:\n  weeksRule: FREQ=WEEKLY;COUNT=2\n")
	_, err = LoadFromPath(invalid)
	assert.Error(t, err)
}

func TestLoadWithEnv_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "campbuddy_config.test.yaml", "databaseURL: postgres://localhost/campbuddy_test\n")
	t.Chdir(dir)

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/campbuddy_test", cfg.DatabaseURL)
}

func TestLoadWithEnv_NotFound(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := LoadWithEnv("nowhere")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "campbuddy_config.nowhere.yaml")
}
