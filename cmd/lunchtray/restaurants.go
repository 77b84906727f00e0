package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/settings"
)

var restaurantsCmd = &cobra.Command{
	Use:   "restaurants",
	Short: "List the known restaurants",
	RunE:  runRestaurants,
}

var restaurantsAll bool

func init() {
	restaurantsCmd.Flags().BoolVar(&restaurantsAll, "all", false, "Include the optional Antell restaurants")

	rootCmd.AddCommand(restaurantsCmd)
}

func runRestaurants(_ *cobra.Command, _ []string) error {
	settingsPath := flagSettingsPath
	if settingsPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return err
		}
		settingsPath = p
	}
	s := settings.Load(settingsPath)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range catalog.List(restaurantsAll || s.IncludeAntell) {
		marker := ""
		if r.Code == s.RestaurantCode {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", marker, r.Code, r.Name)
	}
	return w.Flush()
}
