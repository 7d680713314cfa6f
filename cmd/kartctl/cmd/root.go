// Package cmd implements the kartctl CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/campuskart/campuskart/internal/app"
	"github.com/campuskart/campuskart/internal/config"
	"github.com/campuskart/campuskart/internal/notify"
	"github.com/campuskart/campuskart/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "kartctl",
		Short: "CLI client for the CampusKart marketplace",
		Long: "kartctl is a command-line client for the CampusKart marketplace API.\n" +
			"It lets you browse listings, create your own, mark them sold,\n" +
			"and message sellers from the terminal.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.kartctl.yaml)")
	rootCmd.PersistentFlags().
		String("server", "", "API server URL (overrides config)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(sellCmd())
	rootCmd.AddCommand(markSoldCmd())
	rootCmd.AddCommand(contactCmd())
	rootCmd.AddCommand(messagesCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	viper.SetEnvPrefix("KART")
	viper.AutomaticEnv()
}

// loadConfig resolves the config file: the --config flag wins, then
// $HOME/.kartctl.yaml, then compiled-in defaults.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home + "/.kartctl.yaml"
		}
	}

	var cfg *config.Config
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if errors.Is(err, fs.ErrNotExist) && cfgFile == "" {
			// No default config file; run on defaults.
			cfg = config.Default()
		} else if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if server := viper.GetString("server"); server != "" {
		cfg.API.BaseURL = server
	}
	if userID := viper.GetString("user_id"); userID != "" {
		cfg.Auth.UserID = userID
	}
	if token := viper.GetString("access_token"); token != "" {
		cfg.Auth.AccessToken = token
	}

	return cfg, nil
}

// newApp builds the assembled client. A missing session is terminal:
// the user is told to authenticate and the command fails.
func newApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	var notifier notify.Notifier = notify.NewTerminalNotifier(os.Stdout)
	if cfg.Notifications.Webhook.Enabled {
		notifier = notify.NewWebhookNotifier(cfg.Notifications.Webhook.URL)
	}

	a, err := app.New(ctx, cfg, notifier, log)
	if err != nil {
		return nil, fmt.Errorf("starting kartctl (are you logged in?): %w", err)
	}
	return a, nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
