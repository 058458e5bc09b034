package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := newViper()
	root := &cobra.Command{
		Use:          "spirit",
		Short:        "Privacy preserving, Sybil resistant contact tracing",
		SilenceUsage: true,
	}
	bindFlags(root, v)
	root.AddCommand(newSimulateCmd(v))
	root.AddCommand(newSetupCmd(v))
	return root
}

func newSimulateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Register users, broadcast, diagnose, verify and trace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			_, err = simulate(cfg, log)
			return err
		},
	}
}

func newSetupCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Check the threshold parameters by running setup only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			_, err = newRuntime(cfg, log, nil).Setup(cfg.Threshold, cfg.IssuersTotal, cfg.Issuers)
			return err
		},
	}
}
