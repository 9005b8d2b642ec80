package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/vm/instruction"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultEnvironment is the environment used when none is configured.
	DefaultEnvironment = "bls12381"
	// DefaultPrompt is the default console prompt.
	DefaultPrompt = "fvm> "
)

// Version is the version of the tool, set at build time.
var Version string

// Config top level struct representing the config.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
}

// Default returns configuration with all defaults set.
func Default() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			Environment:     DefaultEnvironment,
			LogLevel:        "info",
			MaxInstructions: instruction.DefaultMaxInstructions,
			Console: Console{
				Prompt: DefaultPrompt,
			},
		},
	}
}

// LoadFile loads config from the provided path. Unknown fields are rejected,
// missing ones are taken from Default.
func LoadFile(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config '%s' doesn't exist", configPath)
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}

	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	err = decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.ApplicationConfiguration.Validate()
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks ApplicationConfiguration for internal consistency.
func (a *ApplicationConfiguration) Validate() error {
	if _, err := field.ByName(a.Environment); err != nil {
		return fmt.Errorf("invalid Environment: %w", err)
	}
	if a.MaxInstructions <= 0 {
		return fmt.Errorf("invalid MaxInstructions: %d", a.MaxInstructions)
	}
	return nil
}
