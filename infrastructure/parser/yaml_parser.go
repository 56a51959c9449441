// Package parser decodes plugin configuration files.
package parser

import (
	"bytes"
	"fmt"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
	"gopkg.in/yaml.v3"
)

// YAMLConfigParser implements ConfigParser for YAML.
type YAMLConfigParser struct{}

// NewYAMLConfigParser creates a new YAMLConfigParser.
func NewYAMLConfigParser() ports.ConfigParser {
	return &YAMLConfigParser{}
}

// Parse unmarshals YAML bytes into a config map. An empty document yields
// an empty map so defaults apply.
func (p *YAMLConfigParser) Parse(data []byte) (map[string]any, error) {
	cfg := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	return cfg, nil
}
