package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/yarnspin/log"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The file is a flat mapping from flag name to value. Hyphenated flag names
// may be written with underscores:
//
//	log_level: debug
//	log_format: text
//	path: [./scripts, ./shared]
//
// Command-line flags override config file values. A file that is empty or
// fails to decode contributes nothing.
func resolve(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring configuration", slog.Any("error", err))
		}

		return config{}, nil
	}

	cfg := make(config, len(raw))
	for key, val := range raw {
		cfg[key] = scalar(val)
	}

	return cfg, nil
}

// config implements [kong.Resolver] over a decoded YAML mapping.
type config map[string]any

func (config) Validate(*kong.Application) error { return nil }

func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// scalar converts decoded YAML numbers to strings, which kong requires for
// flag parsing. Sequences are converted element-wise.
func scalar(v any) any {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = scalar(e)
		}

		return out
	default:
		return v
	}
}
