package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a config file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// LoadFile reads a settings map from path. A missing file is not an
// error and yields a nil map.
func LoadFile(path string) (map[string]any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Parse(path, format, data)
}

// Parse decodes data in the given format. source names the data in
// errors.
func Parse(source string, format Format, data []byte) (map[string]any, error) {
	var settings map[string]any

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &settings); err != nil {
			perr := &ParseError{Path: source, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return nil, perr
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}

	if settings == nil {
		settings = make(map[string]any)
	}
	return settings, nil
}

// Load builds the configuration from defaults, the file at path (if any)
// and the environment.
func Load(path string) (Config, error) {
	var file map[string]any
	if path != "" {
		var err error
		if file, err = LoadFile(path); err != nil {
			return Config{}, err
		}
	}

	env, err := NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return Config{}, err
	}

	cfg, err := Build(file, env)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
