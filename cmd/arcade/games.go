package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NicolaLanata/math-arcade/internal/catalog"
	"github.com/NicolaLanata/math-arcade/internal/ui"
)

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List the game catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, g := range catalog.Games() {
				fmt.Fprintf(out, "%s %s %s\n", g.Badge, g.Icon, ui.H2.Render(g.Title))
				fmt.Fprintf(out, "   %s %s\n", ui.Muted.Render(g.ID), g.Desc)
			}
			return nil
		},
	}
}

func newPrecacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "precache",
		Short:  "Print the offline precache URL list",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, u := range catalog.PrecacheURLs() {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}
}
