package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration written as a Go duration string ("500ms") in config files.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Format is a supported config file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFor picks the encoding from a file extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the encoding for the extension
//   - error: if the extension is not .yaml, .yml or .toml
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

// Load reads a config file over Default and validates the result. Fields missing from the file keep
// their default values; unknown fields are rejected.
//
// Parameters:
//   - path: a .yaml, .yml or .toml file
//
// Returns:
//   - Config: the loaded configuration
//   - error: if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data over Default without validating it.
//
// Parameters:
//   - data: the encoded configuration
//   - format: the encoding of data
//
// Returns:
//   - Config: the decoded configuration
//   - error: if data does not parse
func Decode(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %d", format)
	}
	return cfg, nil
}

// Encode writes cfg in the given format.
//
// Parameters:
//   - cfg: the configuration to encode
//   - format: the target encoding
//
// Returns:
//   - []byte: the encoded configuration
//   - error: if encoding fails
func Encode(cfg Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatTOML:
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unknown config format %d", format)
	}
}

// Save encodes cfg by the extension of path and writes it.
//
// Parameters:
//   - cfg: the configuration to save
//   - path: a .yaml, .yml or .toml file
//
// Returns:
//   - error: if encoding or writing fails
func Save(cfg Config, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(cfg, format)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
