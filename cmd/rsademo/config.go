package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/taurusgroup/textbook-rsa/internal/params"
)

// Config holds the demo settings, read from flags, RSADEMO_* variables and an optional file.
type Config struct {
	P, Q     *big.Int
	Message  *big.Int
	Text     string
	Workers  int
	Seed     []byte
	LogLevel zerolog.Level
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("rsademo", pflag.ContinueOnError)
	fs.String("p", fmt.Sprint(params.DemoP), "first prime factor")
	fs.String("q", fmt.Sprint(params.DemoQ), "second prime factor")
	fs.String("message", "100", "integer to encrypt, smaller than p⋅q")
	fs.String("text", "Hello, World!", "text to encrypt character by character")
	fs.Int("workers", 0, "workers used for text, 0 for one per CPU")
	fs.String("seed", "", "hex seed for a reproducible key, instead of crypto/rand")
	fs.String("log-level", "info", "log level")
	fs.String("config", "", "optional config file")
	return fs
}

// LoadConfig parses args, and merges them with the environment and the config file.
func LoadConfig(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("RSADEMO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	cfg := &Config{
		Text:    v.GetString("text"),
		Workers: v.GetInt("workers"),
	}
	var err error
	if cfg.P, err = parseInt("p", v.GetString("p")); err != nil {
		return nil, err
	}
	if cfg.Q, err = parseInt("q", v.GetString("q")); err != nil {
		return nil, err
	}
	if cfg.Message, err = parseInt("message", v.GetString("message")); err != nil {
		return nil, err
	}
	if seed := v.GetString("seed"); seed != "" {
		if cfg.Seed, err = hex.DecodeString(seed); err != nil {
			return nil, fmt.Errorf("config: seed: %w", err)
		}
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(v.GetString("log-level")); err != nil {
		return nil, fmt.Errorf("config: log-level: %w", err)
	}
	return cfg, nil
}

func parseInt(name, s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("config: %s: invalid integer %q", name, s)
	}
	return x, nil
}
