package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the bot configuration.
type Config struct {
	GitLab    GitLabConfig    `yaml:"gitlab"`
	Logging   LoggingConfig   `yaml:"logging"`
	Approvals ApprovalsConfig `yaml:"approvals"`
}

// GitLabConfig holds instance connection settings.
type GitLabConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ApprovalsConfig holds the server-wide owner-file policy defaults for the
// emulated approvals path.
type ApprovalsConfig struct {
	OwnersFile string `yaml:"owners_file"`
	Branch     string `yaml:"branch"`
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		GitLab: GitLabConfig{
			URL: "https://gitlab.com",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Approvals: ApprovalsConfig{
			OwnersFile: "CODEOWNERS",
			Branch:     "master",
		},
	}
}

// Load reads and parses the config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Substitute environment variables
	data = envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(varName)))
	})

	// Start with defaults
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
