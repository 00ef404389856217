package config

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ProjectConfig represents project-level configuration kept in the
// project's own repository.
type ProjectConfig struct {
	Approvals ApprovalsConfig `yaml:"approvals"`
}

// FileReader reads raw files from a project's repository. A missing file
// is reported as (nil, nil).
type FileReader interface {
	RawFile(ctx context.Context, projectID int, path, ref string) ([]byte, error)
}

// projectConfigFile is where projects keep their overrides.
const projectConfigFile = ".marge-bot.yml"

// LoadProjectConfig loads the project config from .marge-bot.yml on the
// given ref. A project without one gets an empty config.
func LoadProjectConfig(ctx context.Context, reader FileReader, projectID int, ref string) (*ProjectConfig, error) {
	data, err := reader.RawFile(ctx, projectID, projectConfigFile, ref)
	if err != nil {
		return nil, fmt.Errorf("reading project config: %w", err)
	}
	if data == nil {
		return &ProjectConfig{}, nil
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing project config: %w", err)
	}

	return &cfg, nil
}
