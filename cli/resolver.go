package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/rulex/log"
)

// resolveYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Nested mappings are flattened by joining keys with "-", so
//
//	log:
//	  level: debug
//	  pretty: false
//	parse:
//	  lazy: 32
//
// sets --log-level, --log-pretty and --lazy. Keys may use underscores in
// place of hyphens. A file that does not parse is ignored.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err != io.EOF {
			log.Warn("configuration ignored", slog.Any("error", err))
		}

		return config{}, nil
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over flattened configuration keys.
type config map[string]any

func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := strings.ReplaceAll(k, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := v.(type) {
		case map[string]any:
			c.flatten(key, v)

			// Command sections also match their flags unprefixed.
			for ck, cv := range v {
				if _, nested := cv.(map[string]any); !nested {
					c.setDefault(strings.ReplaceAll(ck, "_", "-"), cv)
				}
			}

		case int:
			c[key] = strconv.Itoa(v)
		case int64:
			c[key] = strconv.FormatInt(v, 10)
		case uint64:
			c[key] = strconv.FormatUint(v, 10)
		case float64:
			c[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			c[key] = v
		}
	}
}

func (c config) setDefault(key string, v any) {
	if _, ok := c[key]; !ok {
		c.flatten("", map[string]any{key: v})
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
