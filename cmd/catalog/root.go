package main

import (
	"catalog/internal/config"
	"catalog/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Inventory catalog of categories and items",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./catalog.yaml, env vars use the CATALOG_ prefix)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, seedCmd, configCmd)
}

// loadConfig resolves the configuration for cmd, letting flags override
// file and environment values.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New(cfgFile)
	if f := cmd.Flag("log-level"); f != nil && f.Changed {
		v.Set("log.level", f.Value.String())
	}
	if f := cmd.Flag("port"); f != nil && f.Changed {
		v.Set("server.port", f.Value.String())
	}
	if f := cmd.Flag("store"); f != nil && f.Changed {
		v.Set("store.driver", f.Value.String())
	}
	return config.Load(v)
}

func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
