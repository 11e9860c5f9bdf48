package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"stockorder.GO/config"
	"stockorder.GO/core/logger"
)

var rootCmd = &cobra.Command{
	Use:           "stockorder",
	Short:         "Inventory and order services",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute applies registered commands and runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, sets up logging and opens the component database.
func bootstrap(component string) (*config.Config, *gorm.DB, error) {
	if err := config.LoadAppConfig(); err != nil {
		return nil, nil, err
	}
	cfg := config.AppConfig
	if _, err := logger.Init(cfg.LogLevel, cfg.Env, component+"-service"); err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	db, err := config.NewDB(component)
	if err != nil {
		return nil, nil, fmt.Errorf("connect %s db: %w", component, err)
	}
	return cfg, db, nil
}
