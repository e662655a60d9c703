package progress

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/NicolaLanata/math-arcade/internal/catalog"
	"github.com/NicolaLanata/math-arcade/internal/models"
	"github.com/NicolaLanata/math-arcade/internal/profile"
)

// Tracker observes scoped storage activity and maintains the active
// player's per-game progress. It also exposes the push-style API game
// modules call directly instead of relying on key sniffing.
type Tracker struct {
	profiles *profile.Store
	log      *zap.Logger
}

// NewTracker creates a progress tracker over the profile store.
func NewTracker(profiles *profile.Store, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{profiles: profiles, log: log}
}

// KeyWritten implements scope.Observer: a recognized record write is
// parsed and folded into the mapped game's progress.
func (t *Tracker) KeyWritten(key, value string) {
	gameID := GameIDForRecordKey(key)
	if gameID == "" {
		return
	}
	patch := PatchForKey(key, value)
	if patch == nil {
		return
	}
	t.Apply(gameID, patch)
}

// KeyRemoved implements scope.Observer: a recognized record removal
// resets the mapped game's best-record fields. Plays and lastPlayedAt
// survive a removal.
func (t *Tracker) KeyRemoved(key string) {
	gameID := GameIDForRecordKey(key)
	if gameID == "" {
		return
	}
	t.ClearRecord(gameID)
}

// Apply folds a parsed record patch into the active player's progress
// for gameID, under the monotonic improvement rules: stars never drop,
// a best only moves on higher correct or equal correct with lower time,
// a score only moves upward.
func (t *Tracker) Apply(gameID string, patch *Patch) {
	if gameID == "" || patch == nil {
		return
	}
	user := t.profiles.ActiveUser()
	if user == nil {
		return
	}
	game := user.Game(gameID)

	if patch.Stars != nil && catalog.IsMissionStarGame(gameID) {
		stars := models.ClampStars(*patch.Stars)
		if stars > game.Stars {
			game.Stars = stars
		}
	}

	if text := strings.TrimSpace(patch.RecordText); text != "" {
		game.RecordText = text
	}

	if patch.ScoreValue != nil {
		if game.ScoreValue == nil || *patch.ScoreValue > *game.ScoreValue {
			v := *patch.ScoreValue
			game.ScoreValue = &v
			if label := strings.TrimSpace(patch.ScoreLabel); label != "" {
				game.ScoreLabel = label
			} else {
				game.ScoreLabel = formatScore(v)
			}
		}
	}

	if patch.BestCorrect != nil && patch.BestTotal != nil {
		betterByScore := game.BestCorrect == nil || *patch.BestCorrect > *game.BestCorrect
		tiedScore := game.BestCorrect != nil && *patch.BestCorrect == *game.BestCorrect
		betterByTime := patch.BestTimeMs != nil &&
			(game.BestTimeMs == nil || *patch.BestTimeMs < *game.BestTimeMs)

		if betterByScore || (tiedScore && betterByTime) {
			c, tot := *patch.BestCorrect, *patch.BestTotal
			game.BestCorrect = &c
			game.BestTotal = &tot
			if patch.BestTimeMs != nil {
				ms := *patch.BestTimeMs
				game.BestTimeMs = &ms
			}
		}
	}

	game.LastPlayedAt = models.NowISO()
	user.Adventure.LastPlayedID = gameID

	user.Touch()
	t.profiles.Save()
	t.log.Debug("progress patched", zap.String("gameId", gameID), zap.String("userId", user.ID))
}

// ClearRecord resets a game's best-record fields to their empty state.
func (t *Tracker) ClearRecord(gameID string) {
	if gameID == "" {
		return
	}
	user := t.profiles.ActiveUser()
	if user == nil {
		return
	}
	game := user.Game(gameID)

	game.RecordText = ""
	game.BestCorrect = nil
	game.BestTotal = nil
	game.BestTimeMs = nil
	game.ScoreValue = nil
	game.ScoreLabel = ""
	game.Stars = 0

	user.Touch()
	t.profiles.Save()
}

// RecordGameLaunch counts one launch of gameID for the active player.
func (t *Tracker) RecordGameLaunch(gameID string) {
	if gameID == "" {
		return
	}
	user := t.profiles.ActiveUser()
	if user == nil {
		return
	}
	game := user.Game(gameID)

	game.Plays++
	game.LastPlayedAt = models.NowISO()

	user.Adventure.TotalLaunches++
	user.Adventure.LastPlayedID = gameID

	user.Touch()
	t.profiles.Save()
}

// MissionResult is the outcome a mission-style game pushes directly.
type MissionResult struct {
	Correct int
	Total   int
	TimeMs  int64
}

// RecordMissionResult applies a finished mission run to gameID's
// progress using the same monotonic comparison and star rules as the
// storage-sniffing path.
func (t *Tracker) RecordMissionResult(gameID string, res MissionResult) {
	if gameID == "" {
		return
	}
	user := t.profiles.ActiveUser()
	if user == nil {
		return
	}
	game := user.Game(gameID)

	if catalog.IsMissionStarGame(gameID) {
		earned := models.StarsFromMission(res.Correct, res.Total)
		if earned > game.Stars {
			game.Stars = earned
		}
	}

	betterByScore := game.BestCorrect == nil || res.Correct > *game.BestCorrect
	tiedScore := game.BestCorrect != nil && res.Correct == *game.BestCorrect
	betterByTime := game.BestTimeMs == nil || res.TimeMs < *game.BestTimeMs

	if betterByScore || (tiedScore && betterByTime) {
		c, tot := res.Correct, res.Total
		game.BestCorrect = &c
		game.BestTotal = &tot
		ms := res.TimeMs
		game.BestTimeMs = &ms
	}

	game.RecordText = fmt.Sprintf("Best %d/%d in %s", res.Correct, res.Total, models.FormatDuration(res.TimeMs))
	score := float64(res.Correct)
	if game.ScoreValue == nil || score > *game.ScoreValue {
		game.ScoreValue = &score
		game.ScoreLabel = fmt.Sprintf("%d/%d", res.Correct, res.Total)
	}

	game.LastPlayedAt = models.NowISO()
	user.Adventure.LastPlayedID = gameID

	user.Touch()
	t.profiles.Save()
	t.log.Info("mission result recorded",
		zap.String("gameId", gameID),
		zap.Int("correct", res.Correct),
		zap.Int("total", res.Total),
		zap.Int64("timeMs", res.TimeMs))
}
