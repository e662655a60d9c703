package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NicolaLanata/math-arcade/internal/catalog"
	"github.com/NicolaLanata/math-arcade/internal/progress"
	"github.com/NicolaLanata/math-arcade/internal/ui"
)

func newRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Show the active player's record book",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			user := a.profiles.ActiveUser()
			gameIDs := catalog.OrderedIDs()
			stats := progress.Summarize(user, gameIDs)

			if user == nil {
				fmt.Fprintln(out, ui.Muted.Render("No players yet. Create one with: arcade player create <name>"))
				return nil
			}

			fmt.Fprintf(out, "%s %s %s\n", ui.IconArcade, ui.Title.Render(user.Name), user.Avatar)
			fmt.Fprintln(out, ui.Muted.Render("Adventure Record Book"))
			fmt.Fprintf(out, "Games %d/%d  %s %d/%d  Score %s  Launches %d\n",
				stats.Explored, stats.TotalGames,
				ui.IconStar, stats.Stars, stats.MaxStars,
				ui.Gold.Render(progressScore(stats)),
				user.Adventure.TotalLaunches)
			fmt.Fprintf(out, "%d%% explored\n\n", stats.CompletionPct)

			for _, id := range gameIDs {
				meta, ok := catalog.ByID(id)
				title := id
				if ok {
					title = meta.Title
				}
				g := progress.GameState(user, id)

				starsLabel := "No stars"
				if catalog.IsMissionStarGame(id) {
					starsLabel = ui.Gold.Render(ui.Stars(g.Stars))
				}
				fmt.Fprintf(out, "%s  %s  Score %s\n", ui.H2.Render(title), starsLabel, progress.ScoreLine(g))
				fmt.Fprintf(out, "  Plays: %d\n", g.Plays)
				fmt.Fprintf(out, "  %s\n", progress.RecordLine(g))
			}
			return nil
		},
	}
}

func progressScore(stats progress.Stats) string {
	return fmt.Sprintf("%s (%d)", strconv.FormatFloat(stats.TotalScore, 'f', -1, 64), stats.ScoredGames)
}
