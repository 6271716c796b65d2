package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/gridsim/config"
	"github.com/kilianp07/gridsim/infra/logger"
)

// DefaultConfigPath is read when --config is not given. It may be absent.
const DefaultConfigPath = "gridsim.yaml"

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "gridsim",
		Short:         "Smart grid storage simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", DefaultConfigPath, "configuration file")

	load := func() (*config.Config, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		return cfg, nil
	}
	root.AddCommand(newSimulateCmd(load), newServeCmd(load))
	return root
}

type configLoader func() (*config.Config, error)

// Execute runs the CLI.
func Execute() error { return newRootCmd().Execute() }
