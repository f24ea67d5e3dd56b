package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "CAMPBUDDY_"

// PlannerConfig tunes schedule generation
type PlannerConfig struct {
	WeeksRule            string `yaml:"weeksRule" env:"WEEKS_RULE" validate:"required"`
	LocationCandidates   int    `yaml:"locationCandidates" env:"LOCATION_CANDIDATES" validate:"min=1,max=100"`
	LocationConcurrency  int    `yaml:"locationConcurrency" env:"LOCATION_CONCURRENCY" validate:"min=1,max=16"`
	FallbackSessionCount int    `yaml:"fallbackSessionCount" env:"FALLBACK_SESSION_COUNT" validate:"min=1,max=16"`
	SuggestionCount      int    `yaml:"suggestionCount" env:"SUGGESTION_COUNT" validate:"min=1"`
	AlternativesLimit    int    `yaml:"alternativesLimit" env:"ALTERNATIVES_LIMIT" validate:"min=1"`
	StrictSessions       bool   `yaml:"strictSessions" env:"STRICT_SESSIONS"`
	PriorityOption       bool   `yaml:"priorityOption" env:"PRIORITY_OPTION"`
}

// GeocoderConfig configures location lookups
type GeocoderConfig struct {
	BaseURL           string  `yaml:"baseURL" env:"BASE_URL" validate:"required,url"`
	UserAgent         string  `yaml:"userAgent" env:"USER_AGENT" validate:"required"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond" env:"RPS" validate:"gt=0"`
	Burst             int     `yaml:"burst" env:"BURST" validate:"min=1"`

	// CachePath is the SQLite file resolved coordinates persist to; empty keeps them in memory only
	CachePath string `yaml:"cachePath,omitempty" env:"CACHE_PATH"`
}

// CatalogConfig locates the spreadsheet camps are imported from
type CatalogConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID,omitempty" env:"SPREADSHEET_ID"`
	CampsTab      string `yaml:"campsTab" env:"CAMPS_TAB" validate:"required"`
	LocationsTab  string `yaml:"locationsTab" env:"LOCATIONS_TAB" validate:"required"`
	SessionsTab   string `yaml:"sessionsTab" env:"SESSIONS_TAB" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string         `yaml:"databaseURL" env:"DATABASE_URL" validate:"required"`
	Planner     PlannerConfig  `yaml:"planner" envPrefix:"PLANNER_"`
	Geocoder    GeocoderConfig `yaml:"geocoder" envPrefix:"GEOCODER_"`
	Catalog     CatalogConfig  `yaml:"catalog" envPrefix:"CATALOG_"`
	GmailUserID string         `yaml:"gmailUserID,omitempty" env:"GMAIL_USER_ID"`
	GmailSender string         `yaml:"gmailSender,omitempty" env:"GMAIL_SENDER" validate:"omitempty,email"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Defaults returns the configuration used for any key the file and environment leave unset
func Defaults() Config {
	opts := planner.DefaultOptions()
	return Config{
		Planner: PlannerConfig{
			WeeksRule:            planner.DefaultWeeksRule,
			LocationCandidates:   opts.LocationCandidates,
			LocationConcurrency:  opts.LocationConcurrency,
			FallbackSessionCount: opts.FallbackSessionCount,
			SuggestionCount:      planner.DefaultSuggestionCount,
			AlternativesLimit:    opts.AlternativesLimit,
		},
		Geocoder: GeocoderConfig{
			BaseURL:           "https://nominatim.openstreetmap.org",
			UserAgent:         "CampBuddy/1.0",
			RequestsPerSecond: 1,
			Burst:             1,
		},
		Catalog: CatalogConfig{
			CampsTab:     "Camps",
			LocationsTab: "Locations",
			SessionsTab:  "Sessions",
		},
	}
}

// LoadWithEnv loads the configuration for an environment.
// env="test" looks for "campbuddy_config.test.yaml"; an empty env uses "campbuddy_config.yaml".
func LoadWithEnv(environment string) (*Config, error) {
	name := "campbuddy_config.yaml"
	if environment != "" {
		name = "campbuddy_config." + environment + ".yaml"
	}

	configPath, err := findFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads the configuration from a specific path, applies CAMPBUDDY_* environment
// overrides and validates the result
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	r, err := rrule.StrToRRule(cfg.Planner.WeeksRule)
	if err != nil {
		return fmt.Errorf("invalid rrule in planner.weeksRule: %w", err)
	}
	if r.OrigOptions.Freq != rrule.WEEKLY {
		return fmt.Errorf("planner.weeksRule must be weekly, got %v", r.OrigOptions.Freq)
	}
	if r.OrigOptions.Count <= 0 && r.OrigOptions.Until.IsZero() {
		return fmt.Errorf("planner.weeksRule must be bounded by COUNT or UNTIL")
	}

	return nil
}

// Weeks expands the configured week calendar
func (c *Config) Weeks() ([]model.Week, error) {
	return planner.BuildWeeks(c.Planner.WeeksRule)
}

// PlannerOptions converts the planner section into optimizer options
func (c *Config) PlannerOptions() planner.Options {
	return planner.Options{
		LocationCandidates:   c.Planner.LocationCandidates,
		LocationConcurrency:  c.Planner.LocationConcurrency,
		FallbackSessionCount: c.Planner.FallbackSessionCount,
		StrictSessions:       c.Planner.StrictSessions,
		PriorityOption:       c.Planner.PriorityOption,
		AlternativesLimit:    c.Planner.AlternativesLimit,
	}
}

// findFile searches for a file in the current directory and then the home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
