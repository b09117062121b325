package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits config input to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

// YAML decoding errors.
var (
	ErrEmptyInput    = errors.New("empty config data")
	ErrInputTooLarge = errors.New("config exceeds maximum size")
)

// decodeStrict decodes YAML into v, rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// Marshal renders the configuration as YAML with the token redacted.
// Used by "doctor" to show the effective configuration.
func (c *Config) Marshal() ([]byte, error) {
	redacted := *c
	if redacted.API.Token != "" {
		redacted.API.Token = "***"
	}
	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
