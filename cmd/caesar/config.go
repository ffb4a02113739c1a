package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/paraglidehq/caesar"
)

type Config struct {
	Offset   string `mapstructure:"offset"`
	LogLevel string `mapstructure:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
	}
}

// LoadConfig reads caesar.yaml and CAESAR_* environment variables.
// An explicit path must exist; the default search path may come up empty.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetDefault("offset", cfg.Offset)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetEnvPrefix("CAESAR") // CAESAR_OFFSET, CAESAR_LOG_LEVEL
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("caesar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.caesar")
		v.AddConfigPath("/etc/caesar")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// env is what every command needs, built once in setup.
type env struct {
	cfg *Config
	log zerolog.Logger
}

const envKey = "env"

func setup(c *cli.Context) error {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	logger := newLogger(c.App.ErrWriter, cfg.LogLevel)
	logger.Debug().Str("log_level", cfg.LogLevel).Bool("offset_configured", cfg.Offset != "").Msg("config loaded")

	// A malformed configured offset is reported by the command that needs it.
	if o, err := caesar.ParseOffset(cfg.Offset); err == nil {
		caesar.SetCipher(o.Int())
	} else {
		caesar.DefaultCipher = nil
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]interface{})
	}
	c.App.Metadata[envKey] = &env{cfg: cfg, log: logger}
	return nil
}

func envFrom(c *cli.Context) *env {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		return e
	}
	return &env{cfg: DefaultConfig(), log: zerolog.Nop()}
}
