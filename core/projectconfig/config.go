package projectconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config holds optional defaults for the convert command. It is only read
// when a path is passed explicitly.
type Config struct {
	Output  OutputDefaults  `yaml:"output"`
	Logging LoggingDefaults `yaml:"logging"`
}

type OutputDefaults struct {
	Dir  string `yaml:"dir"`
	JSON bool   `yaml:"json"`
}

type LoggingDefaults struct {
	Verbose bool `yaml:"verbose"`
}

func Load(path string, allowMissing bool) (Config, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return Config{}, fmt.Errorf("config path is required")
	}

	// #nosec G304 -- config path is explicit local user input.
	content, err := os.ReadFile(trimmedPath)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return Config{}, nil
	}

	var configuration Config
	if err := yaml.UnmarshalWithOptions(content, &configuration, yaml.DisallowUnknownField()); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	configuration.normalize()
	return configuration, nil
}

func (configuration *Config) normalize() {
	configuration.Output.Dir = strings.TrimSpace(configuration.Output.Dir)
}
