package config

import (
	"fmt"
	"time"
)

// Build merges layers over the defaults and decodes the result.
func Build(layers ...map[string]any) (Config, error) {
	all := append([]map[string]any{Defaults()}, layers...)
	return Decode(Merge(all...))
}

// Decode converts a complete settings map into a Config. Missing keys
// keep their zero values, so callers normally decode a map merged over
// Defaults.
func Decode(settings map[string]any) (Config, error) {
	var cfg Config
	var err error

	if cfg.Math, err = decodeMath(settings); err != nil {
		return Config{}, err
	}
	if v, ok := GetByPath(settings, "logging.level"); ok {
		if cfg.Logging.Level, err = asString("logging.level", v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := GetByPath(settings, "history.maxEntries"); ok {
		if cfg.History.MaxEntries, err = asInt("history.maxEntries", v); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func decodeMath(settings map[string]any) (MathOptions, error) {
	var opts MathOptions

	if v, ok := GetByPath(settings, "math.outputType"); ok {
		s, err := asString("math.outputType", v)
		if err != nil {
			return opts, err
		}
		if opts.OutputType, err = ParseOutputType(s); err != nil {
			return opts, &SettingError{Path: "math.outputType", Value: v, Err: err}
		}
	}

	if v, ok := GetByPath(settings, "math.delay"); ok {
		d, err := asDuration("math.delay", v)
		if err != nil {
			return opts, err
		}
		opts.Delay = d
	}

	if v, ok := GetByPath(settings, "math.delimiters"); ok {
		delims, err := asDelimiters("math.delimiters", v)
		if err != nil {
			return opts, err
		}
		opts.Delimiters = delims
	}

	return opts, nil
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &SettingError{Path: path, Value: v, Err: ErrTypeMismatch}
	}
	return s, nil
}

func asBool(path string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, &SettingError{Path: path, Value: v, Err: ErrTypeMismatch}
	}
	return b, nil
}

func asInt(path string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, &SettingError{Path: path, Value: v, Err: ErrInvalidValue}
		}
		return int(n), nil
	default:
		return 0, &SettingError{Path: path, Value: v, Err: ErrTypeMismatch}
	}
}

// asDuration accepts a Go duration string ("150ms"), a time.Duration or a
// number of milliseconds.
func asDuration(path string, v any) (time.Duration, error) {
	var d time.Duration
	switch x := v.(type) {
	case time.Duration:
		d = x
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return 0, &SettingError{Path: path, Value: v, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
		}
		d = parsed
	default:
		ms, err := asInt(path, v)
		if err != nil {
			return 0, err
		}
		d = time.Duration(ms) * time.Millisecond
	}
	if d < 0 {
		return 0, &SettingError{Path: path, Value: v, Err: ErrInvalidValue}
	}
	return d, nil
}

func asDelimiters(path string, v any) ([]Delimiter, error) {
	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case []map[string]any:
		for _, m := range x {
			items = append(items, m)
		}
	default:
		return nil, &SettingError{Path: path, Value: v, Err: ErrTypeMismatch}
	}

	delims := make([]Delimiter, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &SettingError{Path: itemPath, Value: item, Err: ErrTypeMismatch}
		}

		var d Delimiter
		var err error
		if d.Open, err = asString(itemPath+".open", m["open"]); err != nil {
			return nil, err
		}
		if d.Close, err = asString(itemPath+".close", m["close"]); err != nil {
			return nil, err
		}
		if raw, ok := m["display"]; ok {
			if d.Display, err = asBool(itemPath+".display", raw); err != nil {
				return nil, err
			}
		}
		if d.Open == "" || d.Close == "" {
			return nil, &SettingError{Path: itemPath, Value: item, Err: ErrInvalidValue}
		}
		delims = append(delims, d)
	}
	return delims, nil
}
