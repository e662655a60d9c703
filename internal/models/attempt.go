package models

import "fmt"

// ProblemsPerMission is the fixed length of a mission run.
const ProblemsPerMission = 5

// MissionLevels is the number of selectable difficulty levels.
const MissionLevels = 3

// Attempt is one finished mission run, as persisted in best records.
type Attempt struct {
	Name    string `json:"name"`
	Correct int    `json:"correct"`
	TimeMs  int64  `json:"timeMs"`
}

// Better reports whether a beats b under the strict improvement order:
// higher correct always wins, ties are broken by lower time. A nil b
// (no recorded best yet) always loses.
func (a Attempt) Better(b *Attempt) bool {
	if b == nil {
		return true
	}
	if a.Correct != b.Correct {
		return a.Correct > b.Correct
	}
	return a.TimeMs < b.TimeMs
}

// StarsFromMission maps a correct-count to a 0-3 star rating.
// A non-positive total yields 0.
func StarsFromMission(correct, total int) int {
	if total <= 0 {
		return 0
	}
	switch {
	case correct >= total:
		return 3
	case correct >= total-1:
		return 2
	case correct >= (total+1)/2:
		return 1
	default:
		return 0
	}
}

// ClampStars clamps a star value into [0,3].
func ClampStars(n int) int {
	if n < 0 {
		return 0
	}
	if n > 3 {
		return 3
	}
	return n
}

// FormatDuration renders an elapsed time the way progress records show
// it: "12.3s" under a minute, "2m 5.0s" above.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSec := float64(ms) / 1000
	if totalSec < 60 {
		return fmt.Sprintf("%.1fs", totalSec)
	}
	mins := int(totalSec) / 60
	secs := totalSec - float64(mins)*60
	return fmt.Sprintf("%dm %.1fs", mins, secs)
}

// FormatClock renders an elapsed time the way the mission timer shows
// it: "4.5s" under a minute, "1:05.0s" above.
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSec := float64(ms) / 1000
	mins := int(totalSec) / 60
	secs := totalSec - float64(mins)*60
	if mins == 0 {
		return fmt.Sprintf("%.1fs", secs)
	}
	return fmt.Sprintf("%d:%04.1fs", mins, secs)
}
