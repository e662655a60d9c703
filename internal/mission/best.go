package mission

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/NicolaLanata/math-arcade/internal/models"
)

// decodeBest parses a stored best record. The {correct, timeMs} pair is
// required; name is optional and defaults.
func decodeBest(raw string) (*models.Attempt, error) {
	var rec struct {
		Name    *string  `json:"name"`
		Correct *float64 `json:"correct"`
		TimeMs  *float64 `json:"timeMs"`
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	if rec.Correct == nil || rec.TimeMs == nil ||
		math.IsNaN(*rec.Correct) || math.IsInf(*rec.Correct, 0) ||
		math.IsNaN(*rec.TimeMs) || math.IsInf(*rec.TimeMs, 0) {
		return nil, errors.New("best record missing correct/timeMs")
	}

	name := models.DefaultPlayerName
	if rec.Name != nil {
		if trimmed := strings.TrimSpace(*rec.Name); trimmed != "" {
			name = trimmed
		}
	}

	return &models.Attempt{
		Name:    name,
		Correct: int(math.Floor(*rec.Correct)),
		TimeMs:  int64(*rec.TimeMs),
	}, nil
}

// saveBest writes the best record for a level, best-effort.
func (e *Engine) saveBest(level int, rec models.Attempt) {
	blob, err := json.Marshal(rec)
	if err != nil {
		return
	}
	e.store.Set(e.BestKey(level), string(blob))
}

// RecordText renders a best record for the level-select screen.
func RecordText(rec *models.Attempt) string {
	if rec == nil {
		return "Best: —"
	}
	return fmt.Sprintf("Best: %d/%d in %s • %s",
		rec.Correct, models.ProblemsPerMission, models.FormatClock(rec.TimeMs), rec.Name)
}
