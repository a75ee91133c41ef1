package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the wizagent project configuration.
type Config struct {
	ProjectName string       `mapstructure:"project_name"`
	Schema      SchemaConfig `mapstructure:"schema"`
	Output      OutputConfig `mapstructure:"output"`
}

// SchemaConfig controls where schema documents are looked up and which
// extra type names the project declares. Types maps an alias to the name
// of a built-in, so a project can write `money: float` once and use money
// in every schema.
type SchemaConfig struct {
	Dir   string            `mapstructure:"dir"`
	Types map[string]string `mapstructure:"types"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Load loads the configuration from wizagent.yml or wizagent.yaml in the
// current directory, falling back to defaults when no file exists.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("schema.dir", "schemas")
	v.SetDefault("output.format", "text")
	v.SetDefault("output.color", true)

	// Set config name and paths
	v.SetConfigName("wizagent")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InProject checks if the current directory belongs to a wizagent project.
func InProject() bool {
	if _, err := os.Stat("wizagent.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("wizagent.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot walks upward from the working directory looking for a
// wizagent.yml.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "wizagent.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "wizagent.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a wizagent project (no wizagent.yml found)")
		}
		dir = parent
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("output.format must be 'text' or 'json', got: %s", cfg.Output.Format)
	}
	return nil
}
