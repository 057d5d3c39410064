// Package config handles configuration management for convoy.
// It layers embedded defaults, the user's config file, an explicit config
// file and CONVOY_ environment variables, in that order.
package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	convoyerrors "github.com/ismawno/convoy/pkg/errors"
	"github.com/ismawno/convoy/pkg/split"
	"github.com/ismawno/convoy/pkg/ui"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

const (
	envPrefix = "CONVOY_"
	appDir    = "convoy"
	fileName  = "convoy.toml"
)

// Config is the effective convoy configuration
type Config struct {
	Output OutputConfig `koanf:"output" toml:"output"`
	Split  SplitConfig  `koanf:"split" toml:"split"`
}

// OutputConfig controls how messages are presented
type OutputConfig struct {
	Color        string `koanf:"color" toml:"color"`
	ProgramLabel string `koanf:"program_label" toml:"program_label"`
	Verbose      bool   `koanf:"verbose" toml:"verbose"`
}

// SplitConfig holds the default splitter settings
type SplitConfig struct {
	Delimiter string   `koanf:"delimiter" toml:"delimiter"`
	Openers   []string `koanf:"openers" toml:"openers"`
	Closers   []string `koanf:"closers" toml:"closers"`
	MaxSplits int      `koanf:"max_splits" toml:"max_splits"`
}

// LoadOptions tunes Load
type LoadOptions struct {
	// ConfigFile is an explicit file loaded after the user config. It must exist.
	ConfigFile string
	// SkipUserConfig ignores $XDG_CONFIG_HOME/convoy/convoy.toml
	SkipUserConfig bool
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// UserConfigPath returns where the per-user config file is looked up
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDir, fileName)
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, convoyerrors.Wrap(err, convoyerrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config if it exists
	if !opts.SkipUserConfig {
		userPath := UserConfigPath()
		if _, err := os.Stat(userPath); err == nil {
			if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
				return nil, convoyerrors.Wrapf(err, convoyerrors.ErrConfigParse,
					"failed to load user config from %s", userPath)
			}
		}
	}

	// 3. Explicit config file
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, convoyerrors.Wrapf(err, convoyerrors.ErrConfigLoad,
				"config file %s not found", opts.ConfigFile)
		}
		if err := k.Load(file.Provider(opts.ConfigFile), toml.Parser()); err != nil {
			return nil, convoyerrors.Wrapf(err, convoyerrors.ErrConfigParse,
				"failed to load config from %s", opts.ConfigFile)
		}
	}

	// 4. Environment: CONVOY_OUTPUT_PROGRAM_LABEL -> output.program_label
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, convoyerrors.Wrap(err, convoyerrors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			// lists from the environment are space separated: "( [" / ") ]"
			DecodeHook: mapstructure.StringToSliceHookFunc(" "),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, convoyerrors.Wrap(err, convoyerrors.ErrConfigParse, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be checked by decoding alone
func (c *Config) Validate() error {
	if _, err := c.ColorMode(); err != nil {
		return convoyerrors.Wrap(err, convoyerrors.ErrConfigValid, "invalid output.color")
	}
	if _, err := c.Splitter(); err != nil {
		return convoyerrors.Wrap(err, convoyerrors.ErrConfigValid, "invalid split settings")
	}
	return nil
}

// ColorMode parses output.color
func (c *Config) ColorMode() (ui.ColorMode, error) {
	return ui.ParseColorMode(c.Output.Color)
}

// Splitter builds a splitter from the split section
func (c *Config) Splitter() (*split.Splitter, error) {
	return split.New(c.Split.Delimiter, c.Split.Openers, c.Split.Closers)
}

// Dump serializes the configuration as TOML
func (c *Config) Dump() ([]byte, error) {
	data, err := gotoml.Marshal(c)
	if err != nil {
		return nil, convoyerrors.Wrap(err, convoyerrors.ErrInternal, "failed to encode config")
	}
	return data, nil
}
