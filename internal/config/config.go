// SPDX-License-Identifier: EPL-2.0

// Package config loads the sampleprep configuration from a YAML file, the
// environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/ik5/sampleprep/internal/logging"
	"github.com/ik5/sampleprep/metadata"
	"github.com/ik5/sampleprep/naming"
	"github.com/ik5/sampleprep/profile"
)

const (
	// FileName is the config file looked up without an extension.
	FileName = "sampleprep"
	// EnvPrefix prefixes environment overrides: SAMPLEPREP_PROFILE,
	// SAMPLEPREP_TARGET_MAX_BIT_DEPTH, ...
	EnvPrefix = "SAMPLEPREP"
)

var ErrNoFormatter = errors.New("naming: title_case is off and no rule is configured")

// Config is the complete application configuration.
type Config struct {
	Profile         string         `yaml:"profile" mapstructure:"profile"`
	TargetOverrides TargetConfig   `yaml:"target" mapstructure:"target"`
	Naming          NamingConfig   `yaml:"naming" mapstructure:"naming"`
	Metadata        MetadataConfig `yaml:"metadata" mapstructure:"metadata"`

	Color    string `yaml:"color" mapstructure:"color"`
	LogFile  string `yaml:"log_file" mapstructure:"log_file"`
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
	Progress bool   `yaml:"progress" mapstructure:"progress"`
}

// TargetConfig overrides fields of the selected profile. Zero values keep
// the profile value.
type TargetConfig struct {
	Format        string `yaml:"format,omitempty" mapstructure:"format"`
	MaxSampleRate int    `yaml:"max_sample_rate,omitempty" mapstructure:"max_sample_rate"`
	MaxBitDepth   int    `yaml:"max_bit_depth,omitempty" mapstructure:"max_bit_depth"`
	MaxChannels   int    `yaml:"max_channels,omitempty" mapstructure:"max_channels"`
}

// NamingConfig selects the file name formatters. Rules run first, in
// order, then title casing when enabled.
type NamingConfig struct {
	TitleCase bool         `yaml:"title_case" mapstructure:"title_case"`
	Rules     []RuleConfig `yaml:"rules,omitempty" mapstructure:"rules"`
}

// RuleConfig is one regex rename rule.
type RuleConfig struct {
	Pattern     string `yaml:"pattern" mapstructure:"pattern"`
	Replacement string `yaml:"replacement" mapstructure:"replacement"`
}

// MetadataConfig tunes the metadata stripper.
type MetadataConfig struct {
	// Keep lists the WAV chunk ids that survive stripping.
	Keep []string `yaml:"keep" mapstructure:"keep"`
	// Format selects the files to strip; empty means the target format.
	Format string `yaml:"format,omitempty" mapstructure:"format"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Profile:  profile.Default.Name,
		Naming:   NamingConfig{TitleCase: true},
		Metadata: MetadataConfig{Keep: []string{"fmt", "data", "fact"}},
		Color:    string(logging.ColorAuto),
		Progress: true,
	}
}

// SearchPaths are the directories searched for sampleprep.yaml.
func SearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", FileName))
	}
	return paths
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("profile", d.Profile)
	v.SetDefault("target.format", "")
	v.SetDefault("target.max_sample_rate", 0)
	v.SetDefault("target.max_bit_depth", 0)
	v.SetDefault("target.max_channels", 0)
	v.SetDefault("naming.title_case", d.Naming.TitleCase)
	v.SetDefault("metadata.keep", d.Metadata.Keep)
	v.SetDefault("metadata.format", "")
	v.SetDefault("color", d.Color)
	v.SetDefault("log_file", "")
	v.SetDefault("verbose", false)
	v.SetDefault("progress", d.Progress)
}

// Load fills v from defaults, the environment and a config file, and
// decodes the result. With file empty, sampleprep.yaml is looked up in
// searchPaths and may be missing. It returns the config file used, if any.
func Load(v *viper.Viper, file string, searchPaths ...string) (*Config, string, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("reading config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, used, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, used, nil
}

// Save writes cfg to path as YAML, creating the parent directory.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode writes cfg to w as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return enc.Close()
}

// Validate checks every setting that can be checked without touching
// sample files.
func (c *Config) Validate() error {
	if _, err := c.Target(); err != nil {
		return err
	}
	if _, err := c.Formatters(); err != nil {
		return err
	}
	if _, err := logging.ParseColorMode(c.Color); err != nil {
		return err
	}
	if c.Metadata.Format != "" {
		if _, err := metadata.ForFormat(c.Metadata.Format, nil); err != nil {
			return err
		}
	}
	return nil
}

// Target resolves the profile and applies the overrides.
func (c *Config) Target() (profile.Target, error) {
	name := c.Profile
	if name == "" {
		name = profile.Default.Name
	}

	t, err := profile.Lookup(name)
	if err != nil {
		return profile.Target{}, err
	}

	if c.TargetOverrides.Format != "" {
		t.Format = c.TargetOverrides.Format
	}
	if c.TargetOverrides.MaxSampleRate != 0 {
		t.MaxSampleRate = c.TargetOverrides.MaxSampleRate
	}
	if c.TargetOverrides.MaxBitDepth != 0 {
		t.MaxBitDepth = c.TargetOverrides.MaxBitDepth
	}
	if c.TargetOverrides.MaxChannels != 0 {
		t.MaxChannels = c.TargetOverrides.MaxChannels
	}

	if err := t.Validate(); err != nil {
		return profile.Target{}, fmt.Errorf("profile %s: %w", t.Name, err)
	}
	return t, nil
}

// Formatters builds the naming chain.
func (c *Config) Formatters() ([]naming.Formatter, error) {
	var formatters []naming.Formatter

	if len(c.Naming.Rules) > 0 {
		rules := make([]naming.Rule, 0, len(c.Naming.Rules))
		for i, rc := range c.Naming.Rules {
			r, err := naming.NewRule(rc.Pattern, rc.Replacement)
			if err != nil {
				return nil, fmt.Errorf("naming rule %d: %w", i+1, err)
			}
			rules = append(rules, r)
		}
		formatters = append(formatters, naming.RegexReplace{Rules: rules})
	}

	if c.Naming.TitleCase {
		formatters = append(formatters, naming.TitleCase{})
	}

	if len(formatters) == 0 {
		return nil, ErrNoFormatter
	}
	return formatters, nil
}
