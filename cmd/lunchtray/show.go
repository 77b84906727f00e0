package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/refresh"
	"github.com/jonathan/lunch-tray/internal/render"
	"github.com/jonathan/lunch-tray/internal/settings"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print today's menu once",
	Long:  "Fetches today's menu of the selected restaurant and prints it. The last good payload is kept cached and shown when the fetch fails.",
	RunE:  runShow,
}

var (
	showRestaurant string
	showLanguage   string
	showCachedOnly bool
)

func init() {
	showCmd.Flags().StringVarP(&showRestaurant, "restaurant", "r", "", "Restaurant code (default: last selected)")
	showCmd.Flags().StringVarP(&showLanguage, "language", "l", "", "Menu language, fi or en (default: last selected)")
	showCmd.Flags().BoolVar(&showCachedOnly, "cached", false, "Print the cached payload without fetching")

	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, _ []string) error {
	logger := newLogger()
	c, err := newController(logger)
	if err != nil {
		return err
	}
	if showLanguage != "" && showLanguage != "fi" && showLanguage != "en" {
		return fmt.Errorf("unsupported language %q (want fi or en)", showLanguage)
	}
	c.OverrideSelection(showRestaurant, showLanguage)

	c.LoadCacheForCurrent()
	if !showCachedOnly && c.StartRefreshRetry() {
		c.Apply(<-c.Results())
	}

	state := c.Snapshot()
	if state.Status == refresh.StatusIdle {
		return fmt.Errorf("no cached menu for restaurant %q", c.Settings().RestaurantCode)
	}
	printState(os.Stdout, state, c.Settings())
	return nil
}

// printState writes one display snapshot: the menu when there is one,
// plus the stale and error notices the state calls for.
func printState(out io.Writer, state refresh.DisplayState, s settings.Settings) {
	p := render.NewPrinter(out)

	name := state.RestaurantName
	if name == "" {
		name = catalog.Lookup(s.RestaurantCode, s.IncludeAntell).Name
	}

	switch state.Status {
	case refresh.StatusLoading:
		p.PrintNotice(render.UIText(s.Language, "loading"))
	case refresh.StatusError:
		p.PrintNotice(render.UIText(s.Language, "fetchError") + ": " + state.ErrorMessage)
	case refresh.StatusOK, refresh.StatusStale:
		p.PrintMenu(name, state.TodayMenu, s)
		if state.Status == refresh.StatusStale {
			if state.NetworkError {
				p.PrintNotice(render.UIText(s.Language, "stale"))
			}
			if state.StaleDateISO != "" {
				p.PrintNotice(render.UIText(s.Language, "staleDate") + ": " + render.FormatDisplayDate(state.StaleDateISO, s.Language))
			}
		}
	}
}
