package formfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/core/planner"
)

// Format is a planner form file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// rawChild mirrors model.Child with interests left undecoded so every accepted shape survives
type rawChild struct {
	Name      string `yaml:"name" toml:"name"`
	Grade     string `yaml:"grade" toml:"grade"`
	Interests []any  `yaml:"interests" toml:"interests"`
}

type rawForm struct {
	Children           []rawChild `yaml:"children" toml:"children"`
	Weeks              []bool     `yaml:"weeks" toml:"weeks"`
	TimePreference     string     `yaml:"timePreference" toml:"timePreference"`
	Location           string     `yaml:"location" toml:"location"`
	Distance           string     `yaml:"distance" toml:"distance"`
	Budget             string     `yaml:"budget" toml:"budget"`
	WeeklyBudget       string     `yaml:"weeklyBudget" toml:"weeklyBudget"`
	Transportation     string     `yaml:"transportation" toml:"transportation"`
	Priorities         []string   `yaml:"priorities" toml:"priorities"`
	RequiredActivities []string   `yaml:"requiredActivities" toml:"requiredActivities"`
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported form file extension %q (expected .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Load reads a planner form from a YAML or TOML file
func Load(path string) (model.FormData, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return model.FormData{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormData{}, fmt.Errorf("failed to read form file: %w", err)
	}

	form, err := Parse(data, format)
	if err != nil {
		return model.FormData{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return form, nil
}

// Parse decodes a planner form
func Parse(data []byte, format Format) (model.FormData, error) {
	var raw rawForm
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return model.FormData{}, fmt.Errorf("failed to decode yaml form: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return model.FormData{}, fmt.Errorf("failed to decode toml form: %w", err)
		}
	default:
		return model.FormData{}, fmt.Errorf("unsupported form format %q", format)
	}

	form := model.FormData{
		Weeks:              raw.Weeks,
		TimePreference:     raw.TimePreference,
		Location:           raw.Location,
		Distance:           raw.Distance,
		Budget:             raw.Budget,
		WeeklyBudget:       raw.WeeklyBudget,
		Transportation:     raw.Transportation,
		Priorities:         raw.Priorities,
		RequiredActivities: raw.RequiredActivities,
		Children:           make([]model.Child, 0, len(raw.Children)),
	}
	for _, child := range raw.Children {
		form.Children = append(form.Children, model.Child{
			Name:      child.Name,
			Grade:     child.Grade,
			Interests: planner.ParseInterests(child.Interests),
		})
	}

	return form, nil
}
