package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file on top of DefaultConfig. A .env file in the
// working directory is loaded first and ${VAR} references in the YAML are
// expanded. An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("contentgraph config: read %s: %w", path, err)
	}
	return Parse(data, cfg)
}

// Parse expands environment references in data and decodes it over base.
func Parse(data []byte, base Config) (Config, error) {
	expanded := os.ExpandEnv(string(data))
	cfg := base
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return base, fmt.Errorf("contentgraph config: decode yaml: %w", err)
	}
	return cfg, nil
}
