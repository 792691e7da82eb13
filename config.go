package qlog

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config bundles the configuration of all components.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Recorder RecorderConfig `yaml:"recorder"`
}

// WithDefaults returns a copy of the config with missing fields set to their
// default values.
func (c Config) WithDefaults() Config {
	cpy := c
	cpy.Archive = cpy.Archive.WithDefaults()
	cpy.Recorder = cpy.Recorder.WithDefaults()
	return cpy
}

// ParseConfig will decode a YAML encoded config and apply the defaults.
func ParseConfig(data []byte) (*Config, error) {
	// decode config
	var config Config
	err := yaml.UnmarshalStrict(data, &config)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	// apply defaults
	config = config.WithDefaults()

	return &config, nil
}

// LoadConfig will read and parse the config file at the specified path.
func LoadConfig(path string) (*Config, error) {
	// read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	return ParseConfig(data)
}
