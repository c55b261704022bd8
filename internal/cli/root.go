// Package cli implements the storectl command tree on top of the
// storefront SDK.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	storefront "github.com/shopkit/storefront-go"
)

var (
	cfgFile      string
	jsonOut      bool
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "Command-line client for the storefront API",
	Long: `storectl browses products, manages the cart, and places orders
against a storefront API deployment.

Configuration is read from ` + "`$HOME/.config/storectl/config.yaml`" + `,
overridable with STORECTL_* environment variables. The only required
setting is the API origin:

  api_base: https://shop.example.com/api

Examples:
  storectl login alice
  storectl products list --search mug --ordering -price
  storectl cart add 3 --quantity 2
  storectl orders create --shipping-address "1 Main St"`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/storectl/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output JSON instead of tables")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "storectl"))
		}
	}

	viper.SetEnvPrefix("STORECTL")
	viper.AutomaticEnv()

	// Missing config file is fine when STORECTL_API_BASE is set.
	_ = viper.ReadInConfig()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// tokenStorePath returns where the auth token is persisted.
func tokenStorePath() (string, error) {
	if path := viper.GetString("token_file"); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "storectl", "token.json"), nil
}

// getClient builds an SDK client from the resolved configuration.
// Without a usable config directory the token store degrades to noop:
// calls still work, the login just won't survive the process.
func getClient() (*storefront.Client, error) {
	apiBase := viper.GetString("api_base")
	if apiBase == "" {
		return nil, fmt.Errorf("api_base is not configured (set it in the config file or STORECTL_API_BASE)")
	}

	var store storefront.TokenStore = storefront.NoopTokenStore{}
	if path, err := tokenStorePath(); err == nil {
		if fileStore, err := storefront.NewFileTokenStore(path); err == nil {
			store = fileStore
		} else {
			slog.Warn("token store unavailable, session will not persist", "error", err)
		}
	}

	return storefront.NewClient(apiBase,
		storefront.WithTokenStore(store),
		storefront.WithLogger(slog.Default()),
	), nil
}
