// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the settings for a rest.Client from a YAML file,
// a .env file, the environment and command-line flags.
//
// Later sources override earlier ones: defaults, then the config file,
// then environment variables, then flags which were set explicitly.
// Environment variables are named after the setting key, upper-cased,
// with dots replaced by underscores and the prefix REST_, for example
// REST_BASE_URL or REST_TRANSPORT_DIAL_TIMEOUT.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogama/rest"
	"github.com/gogama/rest/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "REST"

// Config holds everything needed to build a client.
//
// Viper lower-cases map keys, so the names in Transport.Header arrive
// lower-cased. This is harmless since header names are
// case-insensitive.
type Config struct {
	BaseURL   string               `yaml:"base_url" mapstructure:"base_url"`
	Log       logging.Config       `yaml:"log" mapstructure:"log"`
	Transport rest.TransportConfig `yaml:"transport" mapstructure:"transport"`
}

// Validate checks that the configuration is complete and valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("rest/config: base_url is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return c.Transport.Validate()
}

// NewClient builds a client from the configuration. The handler group
// may be nil.
func (c *Config) NewClient(g *rest.HandlerGroup) (*rest.Client, error) {
	return rest.New(c.BaseURL, rest.WithConfig(c.Transport), rest.WithHandlers(g))
}

type loader struct {
	configFile string
	envFile    string
	flags      *pflag.FlagSet
	flagKeys   map[string]string
}

// Option configures Load.
type Option func(*loader)

// WithConfigFile makes Load read the YAML (or any format viper
// understands) file at path. The file must exist.
func WithConfigFile(path string) Option {
	return func(l *loader) { l.configFile = path }
}

// WithEnvFile makes Load read environment variables from the .env file
// at path. The file must exist. Without this option Load reads ./.env
// if it exists, and fails if it exists but cannot be parsed. Variables already set in the environment win.
func WithEnvFile(path string) Option {
	return func(l *loader) { l.envFile = path }
}

// WithFlags binds flags from set to setting keys. The flagKeys map goes
// from flag name to setting key, for example "base-url" to "base_url".
// Flags missing from set are ignored.
func WithFlags(set *pflag.FlagSet, flagKeys map[string]string) Option {
	return func(l *loader) {
		l.flags = set
		l.flagKeys = flagKeys
	}
}

// Load reads and validates the configuration.
func Load(opts ...Option) (*Config, error) {
	var l loader
	for _, opt := range opts {
		opt(&l)
	}

	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil {
			return nil, fmt.Errorf("rest/config: load env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("rest/config: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("rest/config: read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.flags != nil {
		for name, key := range l.flagKeys {
			f := l.flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("rest/config: bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("rest/config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key, so that AutomaticEnv can find them
// all when unmarshalling.
func setDefaults(v *viper.Viper) {
	d := rest.DefaultTransportConfig()
	v.SetDefault("base_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("transport.timeout", d.Timeout)
	v.SetDefault("transport.dial_timeout", d.DialTimeout)
	v.SetDefault("transport.keep_alive", d.KeepAlive)
	v.SetDefault("transport.tls_handshake_timeout", d.TLSHandshakeTimeout)
	v.SetDefault("transport.response_header_timeout", d.ResponseHeaderTimeout)
	v.SetDefault("transport.idle_conn_timeout", d.IdleConnTimeout)
	v.SetDefault("transport.max_idle_conns", d.MaxIdleConns)
	v.SetDefault("transport.max_idle_conns_per_host", d.MaxIdleConnsPerHost)
	v.SetDefault("transport.max_conns_per_host", d.MaxConnsPerHost)
	v.SetDefault("transport.disable_keep_alives", d.DisableKeepAlives)
	v.SetDefault("transport.disable_compression", d.DisableCompression)
	v.SetDefault("transport.insecure_skip_verify", d.InsecureSkipVerify)
	v.SetDefault("transport.proxy", d.Proxy)
	v.SetDefault("transport.http2", d.HTTP2)
	v.SetDefault("transport.cookies", d.Cookies)
}
