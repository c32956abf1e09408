// Package config loads greenleaf settings from a YAML file and GREENLEAF_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidCacheSize is returned for a negative node cache size.
var ErrInvalidCacheSize = errors.New("node cache size must not be negative")

// Default configuration values.
const (
	DefaultNodeCacheSize = 4096
	DefaultVerbosity     = 0
)

// Config holds all greenleaf configuration.
type Config struct {
	Tree    TreeConfig    `mapstructure:"tree"`
	Reparse ReparseConfig `mapstructure:"reparse"`
	Log     LogConfig     `mapstructure:"log"`
	LSP     LSPConfig     `mapstructure:"lsp"`
}

// TreeConfig controls green tree construction.
type TreeConfig struct {
	// NodeCacheSize bounds the node cache; 0 disables it.
	NodeCacheSize int `mapstructure:"node_cache_size"`
}

type ReparseConfig struct {
	// Validate checks every incremental reparse against a full parse.
	Validate bool `mapstructure:"validate"`
}

type LogConfig struct {
	Verbosity int    `mapstructure:"verbosity"`
	File      string `mapstructure:"file"`
}

type LSPConfig struct {
	// MetricsAddr is where the language server serves /metrics. Empty
	// disables the endpoint.
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Load reads configuration from configPath, or from greenleaf.yaml in the
// working directory when configPath is empty. A missing default file is not
// an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("greenleaf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GREENLEAF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Tree: TreeConfig{NodeCacheSize: DefaultNodeCacheSize},
		Log:  LogConfig{Verbosity: DefaultVerbosity},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("tree.node_cache_size", d.Tree.NodeCacheSize)
	v.SetDefault("reparse.validate", d.Reparse.Validate)
	v.SetDefault("log.verbosity", d.Log.Verbosity)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("lsp.metrics_addr", d.LSP.MetricsAddr)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Tree.NodeCacheSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheSize, c.Tree.NodeCacheSize)
	}
	return nil
}
