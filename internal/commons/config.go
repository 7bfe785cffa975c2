package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"brewline/internal/config"
)

// LoadConfig reads configuration from a yaml file. Environment-based
// configuration lives in config.Load; deployments that ship a config file
// set CONFIG_FILE and go through this path instead.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}
