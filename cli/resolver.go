package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/cssfn/lang"
)

// ErrConfig reports a configuration file that is not a YAML mapping.
var ErrConfig = lang.NewError("load configuration")

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// The file is a flat mapping from flag name to value. Keys may spell the
// flag with hyphens or underscores, and sequences feed repeatable flags:
//
//	log-level: debug
//	log_pretty: false
//	context: ~/site/palette.yaml
//	plugin:
//	  - ~/site/brand.yaml
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(readahead.NewReader(r))
	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	c := make(config, len(raw))
	for k, v := range raw {
		c[strings.ReplaceAll(k, "_", "-")] = flagText(v)
	}

	return c, nil
}

// config implements [kong.Resolver] over a decoded configuration file.
// Keys are normalized to hyphenated flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}

// flagText converts a decoded YAML value to the form kong parses flag
// values from: numbers as text, sequences element-wise.
func flagText(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flagText(e)
		}

		return out
	default:
		return v
	}
}
