package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "ONION_"

type Config struct {
	LogLevel string        `koanf:"log_level"`
	Timeout  time.Duration `koanf:"timeout"`
	Tracing  bool          `koanf:"tracing"`
	Workers  int           `koanf:"workers"`
}

var defaults = map[string]any{
	"log_level": "info",
	"timeout":   "2s",
	"tracing":   false,
	"workers":   4,
}

// Load reads defaults, then the yaml file at path when path is not empty,
// then ONION_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return nil, err
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
