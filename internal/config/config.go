package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
)

// Config represents the application configuration
type Config struct {
	// Preference input: a local YAML file, a Google Sheet tab, or both (file wins)
	PreferencesFile    string `yaml:"preferencesFile,omitempty" validate:"required_without=PreferencesSheetID"`
	PreferencesSheetID string `yaml:"preferencesSheetID,omitempty" validate:"required_without=PreferencesFile"`
	PreferencesTab     string `yaml:"preferencesTab,omitempty" validate:"required_with=PreferencesSheetID"`

	// Allocation limits, zero means the allocator default
	ShiftCapacity int    `yaml:"shiftCapacity,omitempty" validate:"omitempty,min=1"`
	MaxWorkdays   int    `yaml:"maxWorkdays,omitempty" validate:"omitempty,min=1,max=7"`
	WeekRule      string `yaml:"weekRule,omitempty"`

	// Output sinks
	RosterSheetID   string   `yaml:"rosterSheetID,omitempty"`
	PostgresURL     string   `yaml:"postgresURL,omitempty" validate:"omitempty,url"`
	EmailRecipients []string `yaml:"emailRecipients,omitempty" validate:"dive,email"`
	GmailUserID     string   `yaml:"gmailUserID,omitempty" validate:"required_with=EmailRecipients"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from roster_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment
// For example, env="test" will look for "roster_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.WeekRule != "" {
		if _, err := rrule.StrToRRule(cfg.WeekRule); err != nil {
			return fmt.Errorf("invalid rrule in weekRule: %w", err)
		}
	}

	return nil
}

// Allocation returns the allocation limits from the config
func (c *Config) Allocation() allocator.AllocationConfig {
	return allocator.AllocationConfig{
		ShiftCapacity: c.ShiftCapacity,
		MaxWorkdays:   c.MaxWorkdays,
	}
}

// findConfigFile searches for roster_config.yaml in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := "roster_config.yaml"
	if env != "" {
		configFileName = "roster_config." + env + ".yaml"
	}

	path, err := findFile(configFileName)
	if err != nil {
		return "", fmt.Errorf("config file %s not found: %w", configFileName, err)
	}
	return path, nil
}

// findFile returns the file from the current directory, falling back to the
// user's home directory
func findFile(fileName string) (string, error) {
	// Check current directory
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("not in current directory or home directory")
}
