package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SPIRIT"

// config is the resolved configuration of one run.
type config struct {
	Threshold     int
	IssuersTotal  int
	Issuers       int
	Users         int
	Epochs        int
	Contacts      int
	Diagnosed     int
	ExposureLimit int
	Seed          uint64
	DataDir       string
	LogLevel      string
	Workers       int
	Metrics       bool
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "configuration file (yaml, toml or json)")
	flags.Int("threshold", 3, "number t of issuers needed to issue a credential")
	flags.Int("issuers-total", 5, "maximum number n of issuers")
	flags.Int("issuers", 5, "number of issuers created at setup")
	flags.Int("users", 4, "number of simulated users")
	flags.Int("epochs", 10, "number of broadcast epochs")
	flags.Int("contacts", 3, "epochs during which each user meets the next one")
	flags.Int("diagnosed", 1, "number of users diagnosed at the end of the run")
	flags.Int("exposure-limit", 2, "matches needed to raise an alarm")
	flags.Uint64("seed", 0, "seed of a deterministic random source, 0 uses crypto/rand")
	flags.String("data-dir", "", "directory persisting the registry and confirmed pseudonyms")
	flags.String("log-level", "info", "log level")
	flags.Int("workers", 0, "worker pool size, 0 uses all CPUs")
	flags.Bool("metrics", false, "log the collected metrics at the end of the run")

	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

func loadConfig(v *viper.Viper) (*config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}
	cfg := &config{
		Threshold:     v.GetInt("threshold"),
		IssuersTotal:  v.GetInt("issuers-total"),
		Issuers:       v.GetInt("issuers"),
		Users:         v.GetInt("users"),
		Epochs:        v.GetInt("epochs"),
		Contacts:      v.GetInt("contacts"),
		Diagnosed:     v.GetInt("diagnosed"),
		ExposureLimit: v.GetInt("exposure-limit"),
		Seed:          v.GetUint64("seed"),
		DataDir:       v.GetString("data-dir"),
		LogLevel:      v.GetString("log-level"),
		Workers:       v.GetInt("workers"),
		Metrics:       v.GetBool("metrics"),
	}
	switch {
	case cfg.Users < 1:
		return nil, fmt.Errorf("need at least one user, got %d", cfg.Users)
	case cfg.Epochs < 1:
		return nil, fmt.Errorf("need at least one epoch, got %d", cfg.Epochs)
	case cfg.Contacts > cfg.Epochs:
		return nil, fmt.Errorf("%d contact epochs exceed the %d epochs", cfg.Contacts, cfg.Epochs)
	case cfg.Diagnosed > cfg.Users:
		return nil, fmt.Errorf("%d diagnosed users exceed the %d users", cfg.Diagnosed, cfg.Users)
	}
	return cfg, nil
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
