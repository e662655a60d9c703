// Package progress folds per-game best records into the active player's
// unified progress summary. Recognized storage keys are declared in an
// explicit rules table, each with the game it belongs to and a parser
// for that game's bespoke record format; parsers fail closed, so an
// unrecognized or malformed value simply produces no update.
package progress

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/NicolaLanata/math-arcade/internal/models"
)

// Patch is a parsed record folded into a GameProgress. Nil fields are
// left untouched.
type Patch struct {
	Stars       *int
	BestCorrect *int
	BestTotal   *int
	BestTimeMs  *int64
	RecordText  string
	ScoreValue  *float64
	ScoreLabel  string
}

// scoreboardKeyGames maps each game's scoreboard key to its identity.
var scoreboardKeyGames = map[string]string{
	"addDef_records_v1":     "addition_defense",
	"subDef_records_v1":     "subtraction_defense",
	"multDef_records_v1":    "multiplication_defense",
	"divDef_records_v1":     "division_defense",
	"evenOdd_records_v1":    "even_odd",
	"predChoice_records_v1": "predecessor_choice",
}

// divisionMissionKey is the one cross-cutting division mission record.
const divisionMissionKey = "division_remainders_best_v1"

var missionBestKeyRe = regexp.MustCompile(`^mathArcade_(sumMission|subMission|multMission)_best_L([1-3])$`)

// missionFamilyGames maps a mission key family to its game identity.
var missionFamilyGames = map[string]string{
	"sumMission":  "sum_mission",
	"subMission":  "subtraction_mission",
	"multMission": "multiplication_mission",
}

// GameIDForRecordKey resolves a storage key to the game identity whose
// record it carries, or "" for keys this layer does not watch.
func GameIDForRecordKey(key string) string {
	if id, ok := scoreboardKeyGames[key]; ok {
		return id
	}
	if key == divisionMissionKey {
		return "division_mission"
	}
	if m := missionBestKeyRe.FindStringSubmatch(key); m != nil {
		return missionFamilyGames[m[1]]
	}
	return ""
}

// PatchForKey parses value according to key's record format. Returns
// nil when the key is unrecognized or the value does not match the
// expected shape.
func PatchForKey(key, value string) *Patch {
	if _, ok := scoreboardKeyGames[key]; ok {
		return parseScoreboard(value)
	}
	if key == divisionMissionKey {
		return parseDivisionMission(value)
	}
	if m := missionBestKeyRe.FindStringSubmatch(key); m != nil {
		level, _ := strconv.Atoi(m[2])
		return parseMissionLevel(value, level)
	}
	return nil
}

// parseScoreboard scans a scoreboard mapping of row-id -> row for the
// highest numeric score. Rows without one are skipped.
func parseScoreboard(raw string) *Patch {
	var rows map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil
	}

	var best *float64
	for _, rowRaw := range rows {
		var row struct {
			Score *float64 `json:"score"`
		}
		if err := json.Unmarshal(rowRaw, &row); err != nil || row.Score == nil {
			continue
		}
		if math.IsNaN(*row.Score) || math.IsInf(*row.Score, 0) {
			continue
		}
		if best == nil || *row.Score > *best {
			v := *row.Score
			best = &v
		}
	}
	if best == nil {
		return nil
	}

	label := formatScore(*best)
	return &Patch{
		ScoreValue: best,
		ScoreLabel: label,
		RecordText: "Best score " + label,
	}
}

// parseMissionLevel decodes a {correct, timeMs} mission best record.
func parseMissionLevel(raw string, level int) *Patch {
	var rec struct {
		Correct *float64 `json:"correct"`
		TimeMs  *float64 `json:"timeMs"`
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil
	}
	if !finite(rec.Correct) || !finite(rec.TimeMs) {
		return nil
	}

	total := models.ProblemsPerMission
	correct := int(math.Floor(*rec.Correct))
	timeMs := int64(*rec.TimeMs)
	stars := models.StarsFromMission(correct, total)

	return &Patch{
		Stars:       &stars,
		BestCorrect: &correct,
		BestTotal:   &total,
		BestTimeMs:  &timeMs,
		ScoreValue:  floatPtr(float64(correct)),
		ScoreLabel:  fmt.Sprintf("%d/%d", correct, total),
		RecordText:  fmt.Sprintf("L%d best %d/%d in %s", level, correct, total, models.FormatDuration(timeMs)),
	}
}

// parseDivisionMission decodes the {greens, yellows, timeMs} division
// mission record. Greens clamp to [0,total], yellows to what is left,
// reds are the remainder.
func parseDivisionMission(raw string) *Patch {
	var rec struct {
		Greens  *float64 `json:"greens"`
		Yellows *float64 `json:"yellows"`
		TimeMs  *float64 `json:"timeMs"`
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil
	}
	if !finite(rec.Greens) || !finite(rec.Yellows) || !finite(rec.TimeMs) {
		return nil
	}

	total := models.ProblemsPerMission
	greens := clampInt(int(math.Floor(*rec.Greens)), 0, total)
	yellows := clampInt(int(math.Floor(*rec.Yellows)), 0, total-greens)
	reds := total - greens - yellows
	timeMs := int64(*rec.TimeMs)
	stars := models.StarsFromMission(greens, total)

	return &Patch{
		Stars:       &stars,
		BestCorrect: &greens,
		BestTotal:   &total,
		BestTimeMs:  &timeMs,
		ScoreValue:  floatPtr(float64(greens)),
		ScoreLabel:  fmt.Sprintf("%d/%d", greens, total),
		RecordText:  fmt.Sprintf("%dG %dY %dR in %s", greens, yellows, reds, models.FormatDuration(timeMs)),
	}
}

// formatScore renders a score the way the scoreboard label shows it:
// integers without a decimal point.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func floatPtr(v float64) *float64 { return &v }

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
