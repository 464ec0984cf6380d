// Package yaml provides parsing of the action configuration blob.
package yaml

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// ConfigParser parses the action configuration. JSON is accepted as a subset of YAML.
type ConfigParser struct{}

// NewConfigParser creates a new configuration parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a configuration file into an ActionConfig entity
func (p *ConfigParser) ParseFile(filePath string) (*entities.ActionConfig, error) {
	//nolint:gosec // G304: filePath is the configuration path given on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses configuration bytes into an ActionConfig entity.
// Unknown keys are ignored and the bucket falls back to entities.DefaultBucket.
func (p *ConfigParser) Parse(data []byte) (*entities.ActionConfig, error) {
	config := &entities.ActionConfig{}

	if strings.TrimSpace(string(data)) != "" {
		raw := map[string]interface{}{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse configuration: %w", err)
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           config,
			WeaklyTypedInput: true,
			TagName:          "mapstructure",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create configuration decoder: %w", err)
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("failed to decode configuration: %w", err)
		}
	}

	if config.Bucket == "" {
		config.Bucket = entities.DefaultBucket
	}

	return config, nil
}
