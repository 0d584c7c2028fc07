// Package cmd defines the kestrel command-line interface.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kestrelweb/kestrel/internal/config"
	"github.com/kestrelweb/kestrel/internal/observability"
)

var (
	cfgFile string
	appCfg  config.Config
)

var rootCmd = &cobra.Command{
	Use:     "kestrel",
	Short:   "Kestrel renders web pages into styled and laid-out box trees.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			observability.InitializeLogger(config.Default().Logger)
			return err
		}
		appCfg = cfg
		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Debug("configuration loaded",
			zap.Int("viewport_width", cfg.Viewport.Width),
			zap.Int("viewport_height", cfg.Viewport.Height))
		return nil
	},
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
