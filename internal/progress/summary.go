package progress

import (
	"fmt"

	"github.com/NicolaLanata/math-arcade/internal/catalog"
	"github.com/NicolaLanata/math-arcade/internal/models"
)

// Stats aggregates one player's progress across a set of games.
type Stats struct {
	Explored      int
	Stars         int
	TotalGames    int
	MaxStars      int
	CompletionPct int
	TotalScore    float64
	ScoredGames   int
}

// GameState returns the user's progress for gameID without creating a
// record, substituting an empty one for never-played games. A nil user
// gets an empty record too.
func GameState(user *models.User, gameID string) *models.GameProgress {
	if user == nil || user.Adventure.Games == nil {
		return models.EmptyGameProgress()
	}
	g, ok := user.Adventure.Games[gameID]
	if !ok {
		return models.EmptyGameProgress()
	}
	return g
}

// Summarize computes aggregate stats for user over gameIDs. A nil user
// yields the all-zero baseline with the correct denominators.
func Summarize(user *models.User, gameIDs []string) Stats {
	stats := Stats{
		TotalGames: len(gameIDs),
		MaxStars:   catalog.MissionStarGameCount() * 3,
	}

	if user == nil {
		return stats
	}

	starGames := 0
	for _, id := range gameIDs {
		g := GameState(user, id)
		if g.Plays > 0 {
			stats.Explored++
		}
		if catalog.IsMissionStarGame(id) {
			starGames++
			stats.Stars += g.Stars
		}
		if g.ScoreValue != nil {
			stats.TotalScore += *g.ScoreValue
			stats.ScoredGames++
		}
	}

	stats.MaxStars = starGames * 3
	if stats.TotalGames > 0 {
		stats.CompletionPct = int(float64(stats.Explored)/float64(stats.TotalGames)*100 + 0.5)
	}
	return stats
}

// RecordLine renders the human-readable best-record line for a game.
func RecordLine(g *models.GameProgress) string {
	if g == nil {
		return "Not started"
	}
	if g.RecordText != "" {
		return g.RecordText
	}
	if g.BestCorrect != nil && g.BestTotal != nil {
		if g.BestTimeMs != nil {
			return fmt.Sprintf("Best %d/%d in %s", *g.BestCorrect, *g.BestTotal, models.FormatDuration(*g.BestTimeMs))
		}
		return fmt.Sprintf("Best %d/%d", *g.BestCorrect, *g.BestTotal)
	}
	if g.Plays > 0 {
		return fmt.Sprintf("Played %d %s", g.Plays, pluralTimes(g.Plays))
	}
	return "Not started"
}

// ScoreLine renders the score label for a game, or a dash placeholder.
func ScoreLine(g *models.GameProgress) string {
	if g == nil {
		return "—"
	}
	if g.ScoreLabel != "" {
		return g.ScoreLabel
	}
	if g.ScoreValue != nil {
		return formatScore(*g.ScoreValue)
	}
	return "—"
}

func pluralTimes(n int) string {
	if n == 1 {
		return "time"
	}
	return "times"
}
