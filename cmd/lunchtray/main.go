// Package main provides the entry point for the lunchtray CLI, which
// shows and watches today's menus of the known campus restaurants.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/lunch-tray/internal/httpget"
	"github.com/jonathan/lunch-tray/internal/logging"
	"github.com/jonathan/lunch-tray/internal/payloadcache"
	"github.com/jonathan/lunch-tray/internal/refresh"
	"github.com/jonathan/lunch-tray/internal/settings"
)

var rootCmd = &cobra.Command{
	Use:   "lunchtray",
	Short: "Today's lunch menus for the Kuopio campus restaurants",
	Long:  "lunchtray fetches, caches and prints today's lunch menu of the selected campus restaurant, with allergen and price-class display controls.",
}

var (
	flagSettingsPath string
	flagCacheDir     string
	flagLogLevel     string
	flagLogFormat    string
	flagTimeout      time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSettingsPath, "settings", "", "Settings file path (default: per-user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "Payload cache directory (default: per-user cache dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "console", "Log format (console, json)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", httpget.DefaultTimeout, "HTTP fetch timeout")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return logging.New(flagLogLevel, flagLogFormat)
}

// newController assembles the refresh controller from the persistent
// flags, falling back to the per-user default locations.
func newController(logger zerolog.Logger) (*refresh.Controller, error) {
	settingsPath := flagSettingsPath
	if settingsPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return nil, err
		}
		settingsPath = p
	}

	cacheDir := flagCacheDir
	if cacheDir == "" {
		d, err := payloadcache.DefaultDir()
		if err != nil {
			return nil, err
		}
		cacheDir = d
	}

	getter := httpget.NewClient(flagTimeout)
	store := payloadcache.New(cacheDir)
	return refresh.New(getter, store, settingsPath, logger), nil
}
