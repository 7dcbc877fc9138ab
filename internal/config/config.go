// Package config wraps spf13/viper into the thin, dynamic-key accessor
// shape the rest of the tree expects (options.C.GetBool("debug")),
// layering defaults, an optional config file, and environment overrides.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Options controls how New locates and names the config file.
type Options struct {
	// ConfigName is the base file name (without extension) viper
	// searches for. Defaults to "synthesis".
	ConfigName string
	// ConfigPaths are extra directories to search, searched before the
	// current working directory.
	ConfigPaths []string
	// EnvPrefix namespaces environment variable overrides, e.g.
	// SYNTHESIS_DEBUG for the "debug" key. Defaults to "SYNTHESIS".
	EnvPrefix string
}

// Config is a read-only view over layered defaults, an optional YAML
// file, and environment variables, in increasing priority order.
type Config struct {
	v *viper.Viper
}

// New builds a Config, reading a config file if one is found. A missing
// config file is not an error — defaults and the environment still
// apply.
func New(opts Options) (*Config, error) {
	if opts.ConfigName == "" {
		opts.ConfigName = "synthesis"
	}
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = "SYNTHESIS"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(opts.ConfigName)
	v.SetConfigType("yaml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(opts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	return &Config{v: v}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("port", 8080)
	v.SetDefault("local_only", false)
	v.SetDefault("store.root_path", "")
	v.SetDefault("store.allocated_bytes", int64(20*1024*1024*1024))
	v.SetDefault("store.max_qubits", 18)
}

func (c *Config) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *Config) GetString(key string) string { return c.v.GetString(key) }
func (c *Config) GetInt(key string) int       { return c.v.GetInt(key) }
func (c *Config) GetInt64(key string) int64   { return c.v.GetInt64(key) }
