package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const Name = "config"

var Paths []string = []string{
	"/etc/graylog-manage",
	"$HOME/.graylog-manage",
	".",
}

var (
	ErrBindEnv         = errors.New("failed to bind env")
	ErrReadConfig      = errors.New("failed to read config")
	ErrUnmarshalConfig = errors.New("failed to unmarshal config")
	ErrInvalidConfig   = errors.New("invalid config")
)

const (
	SchemeHTTPS = "https"
	SchemeHTTP  = "http"

	OutputJSON = "json"
	OutputYAML = "yaml"
)

var envs = map[string][]string{
	"endpoint":       {"GRAYLOG_ENDPOINT"},
	"username":       {"GRAYLOG_USER", "GRAYLOG_USERNAME"},
	"password":       {"GRAYLOG_PASSWORD"},
	"scheme":         {"GRAYLOG_SCHEME"},
	"validate_certs": {"GRAYLOG_VALIDATE_CERTS"},
	"timeout":        {"GRAYLOG_TIMEOUT"},
	"apply_defaults": {"GRAYLOG_APPLY_DEFAULTS"},
	"output":         {"GRAYLOG_OUTPUT"},
	"log.level":      {"GRAYLOG_LOG_LEVEL", "LOG_LEVEL"},
}

type Config struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Username      string        `mapstructure:"username"`
	Password      string        `mapstructure:"password"`
	Scheme        string        `mapstructure:"scheme"`
	ValidateCerts bool          `mapstructure:"validate_certs"`
	Timeout       time.Duration `mapstructure:"timeout"`
	ApplyDefaults bool          `mapstructure:"apply_defaults"`
	Output        string        `mapstructure:"output"`
	Log           struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "********"
	}
	return c
}

func (c *Config) Validate() error {
	switch c.Scheme {
	case SchemeHTTPS, SchemeHTTP:
	default:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("unsupported scheme %q", c.Scheme))
	}

	switch c.Output {
	case OutputJSON, OutputYAML:
	default:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("unsupported output %q", c.Output))
	}

	if c.Timeout < 0 {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("scheme", SchemeHTTPS)
	viper.SetDefault("validate_certs", true)
	viper.SetDefault("timeout", time.Duration(0))
	viper.SetDefault("apply_defaults", true)
	viper.SetDefault("output", OutputJSON)
	viper.SetDefault("log.level", "info")
}

func Load() (*Config, error) {
	viper.SetConfigName(Name)
	for _, path := range Paths {
		viper.AddConfigPath(path)
	}
	viper.AutomaticEnv()
	setDefaults()

	for envName, keys := range envs {
		binding := []string{envName}
		binding = append(binding, keys...)

		if err := viper.BindEnv(binding...); err != nil {
			return nil, errors.Join(ErrBindEnv, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Join(ErrReadConfig, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Join(ErrUnmarshalConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
