// Package config loads cliutil settings from the environment and an optional
// YAML file. Environment values take precedence over the file.
package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	defaultQueueBatch = 5
	maxQueueBatch     = 10
)

// Config holds the settings shared by the CLI commands. Each field reads the
// environment variable in its envconfig tag or the YAML key in its yaml tag.
type Config struct {
	// LogLevel is empty when logging is disabled.
	LogLevel   string `yaml:"log_level" envconfig:"DCOS_LOG_LEVEL"`
	SearchPath string `yaml:"search_path" envconfig:"PATH"`
	AppsURL    string `yaml:"apps_url" envconfig:"CLIUTIL_APPS_URL"`
	QueueURL   string `yaml:"queue_url" envconfig:"CLIUTIL_QUEUE_URL"`
	QueueBatch int32  `yaml:"queue_batch" envconfig:"CLIUTIL_QUEUE_BATCH"`
}

// Load reads the environment, then configurationFile when it is not empty,
// and returns the merged result with defaults applied.
func Load(configurationFile string) (Config, error) {
	var fromEnvironment Config
	if err := envconfig.Process("", &fromEnvironment); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	var fromYaml Config
	if configurationFile != "" {
		f, err := os.Open(configurationFile)
		if err != nil {
			return Config{}, fmt.Errorf("open configuration file: %w", err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&fromYaml); err != nil {
			return Config{}, fmt.Errorf("decode configuration file %s: %w", configurationFile, err)
		}
	}

	if err := mergo.Merge(&fromYaml, fromEnvironment, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("merge configuration: %w", err)
	}
	fromYaml.applyDefaults()
	return fromYaml, nil
}

func (c *Config) applyDefaults() {
	if c.QueueBatch <= 0 {
		c.QueueBatch = defaultQueueBatch
	}
	if c.QueueBatch > maxQueueBatch {
		c.QueueBatch = maxQueueBatch
	}
}
