package supereasy

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
	"github.com/supereasy-dev/super-easy-in-app-purchase/infrastructure/parser"
)

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Config configures the registration of the plugin channel.
type Config struct {
	// Channel is the name the reporter is bound to.
	Channel string `json:"channel" validate:"required,max=128" jsonschema:"description=Channel name the reporter is bound to,default=super_easy_in_app_purchase"`

	// PlatformLabel replaces the label derived from the OS (e.g. "iOS").
	PlatformLabel string `json:"platform_label,omitempty" validate:"omitempty,max=32" jsonschema:"description=Overrides the platform label,maxLength=32"`

	// VersionOverride reports a fixed version instead of probing the OS.
	VersionOverride string `json:"version_override,omitempty" validate:"omitempty,max=64" jsonschema:"description=Reports a fixed OS version instead of probing,maxLength=64"`

	// LogLevel is the minimum level of the plugin logger.
	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`

	// StrictDispatch answers only getPlatformVersion; other methods get NOT_IMPLEMENTED.
	StrictDispatch bool `json:"strict_dispatch,omitempty" jsonschema:"description=Answer only getPlatformVersion"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Channel:  ChannelName,
		LogLevel: "info",
	}
}

// Validate checks the config against its validation tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return toConfigError(err)
	}
	return nil
}

// ValidateConfig validates a raw config map against a struct with validation tags.
// It first marshals the map to JSON, then unmarshals it into the target struct,
// and finally runs the validator on the struct. Unknown keys are rejected.
func ValidateConfig(raw map[string]any, targetStruct any) error {
	// 1. Convert map[string]any to JSON bytes
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return &errors.ConfigError{Err: fmt.Errorf("failed to marshal config map: %w", err)}
	}

	// 2. Unmarshal JSON bytes into the target struct
	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(targetStruct); err != nil {
		return &errors.ConfigError{Err: fmt.Errorf("failed to unmarshal config into struct: %w", err)}
	}

	// 3. Validate the struct using go-playground/validator
	if err := validate.Struct(targetStruct); err != nil {
		return toConfigError(err)
	}

	return nil
}

// ParseConfig decodes a YAML document over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	raw, err := parser.NewYAMLConfigParser().Parse(data)
	if err != nil {
		return Config{}, &errors.ConfigError{Err: err}
	}

	cfg := DefaultConfig()
	if err := ValidateConfig(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &errors.ConfigError{Err: fmt.Errorf("read config: %w", err)}
	}
	return ParseConfig(data)
}

// toConfigError converts validator output to a ConfigError naming the first failing field.
func toConfigError(err error) error {
	var verrs validator.ValidationErrors
	if stdErrors.As(err, &verrs) && len(verrs) > 0 {
		return &errors.ConfigError{Field: verrs[0].Field(), Err: err}
	}
	return &errors.ConfigError{Err: err}
}
