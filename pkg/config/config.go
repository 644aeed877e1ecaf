// Package config loads transitcat settings from TOML or YAML files.
//
// The file format is chosen by extension: ".toml" is decoded with
// BurntSushi/toml, ".yaml" and ".yml" with yaml.v3. Values missing from the
// file keep their [Default]. The result is validated before it is returned.
//
// An example TOML file:
//
//	[routing]
//	wait_time = 6
//	velocity = 40
//	span_cap = 100
//
//	[server]
//	addr = ":8080"
//	read_timeout = "5s"
//
//	[log]
//	level = "debug"
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/routing"
)

// EnvPath is the environment variable naming a config file to use when no
// path is given explicitly.
const EnvPath = "TRANSITCAT_CONFIG"

// Config is the complete application configuration.
type Config struct {
	Routing RoutingConfig `toml:"routing" yaml:"routing"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// RoutingConfig holds the routing graph defaults. Wait time and velocity
// from a request document take precedence over these.
type RoutingConfig struct {
	WaitTime float64 `toml:"wait_time" yaml:"wait_time" validate:"gte=0"`
	Velocity float64 `toml:"velocity" yaml:"velocity" validate:"gt=0"`
	SpanCap  int     `toml:"span_cap" yaml:"span_cap" validate:"gte=1"`
}

// Settings converts the config into routing settings.
func (r RoutingConfig) Settings() routing.Settings {
	return routing.Settings{WaitTime: r.WaitTime, Velocity: r.Velocity, SpanCap: r.SpanCap}
}

// ServerConfig configures the HTTP query server.
type ServerConfig struct {
	Addr         string   `toml:"addr" yaml:"addr" validate:"required"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

// Duration is a time.Duration written as a string such as "5s" or "1m30s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	s := routing.DefaultSettings()
	return Config{
		Routing: RoutingConfig{WaitTime: s.WaitTime, Velocity: s.Velocity, SpanCap: s.SpanCap},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{5 * time.Second},
			WriteTimeout: Duration{10 * time.Second},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the config file at path on top of [Default].
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data, Format(path))
}

// Resolve loads the config from path, or from $TRANSITCAT_CONFIG when path
// is empty. With neither set it returns [Default].
func Resolve(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Format returns "toml" or "yaml" for a file name, or "" when the extension
// is not recognised.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// Parse decodes data in the given format on top of [Default] and validates
// the result.
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml config")
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml config")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section of the config.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	return nil
}
