package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/lunch-tray/internal/refresh"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep today's menu up to date and reprint it on every change",
	Long:  "Runs the refresh loop in the foreground: fetches on start, retries failures with backoff, prefetches the other restaurants and re-fetches on day rollover and on the configured interval. Stop with Ctrl-C.",
	RunE:  runWatch,
}

var (
	watchRestaurant string
	watchLanguage   string
)

func init() {
	watchCmd.Flags().StringVarP(&watchRestaurant, "restaurant", "r", "", "Restaurant code (default: last selected)")
	watchCmd.Flags().StringVarP(&watchLanguage, "language", "l", "", "Menu language, fi or en (default: last selected)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	c, err := newController(logger)
	if err != nil {
		return err
	}
	c.OverrideSelection(watchRestaurant, watchLanguage)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.Run(ctx, func(state refresh.DisplayState) {
			printState(os.Stdout, state, c.Settings())
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
