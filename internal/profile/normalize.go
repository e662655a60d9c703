package profile

import (
	"math"
	"sort"

	"github.com/NicolaLanata/math-arcade/internal/models"
)

// Normalize repairs a raw decoded profile blob into a valid state:
// wrong-typed fields default, numeric ranges clamp, users whose cleaned
// names collide on the same id merge, and a dangling active reference is
// repointed at an existing user. A blob with no salvageable user resets
// to a fresh empty state. It never fails.
func Normalize(raw any) *models.ProfileState {
	base, _ := asObject(raw)

	rawUsers, _ := asObject(base["users"])

	// Sorted ids keep merge-on-collision deterministic.
	ids := make([]string, 0, len(rawUsers))
	for id := range rawUsers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	users := map[string]*models.User{}
	for _, rawID := range ids {
		u, ok := asObject(rawUsers[rawID])
		if !ok {
			continue
		}

		name, ok := asString(u["name"])
		if !ok || name == "" {
			name = rawID
		}
		cleanName := models.CleanPlayerName(name)
		id := models.PlayerIDFromName(cleanName)

		existing, ok := users[id]
		if !ok {
			existing = models.NewUser(cleanName, id)
		}

		existing.Name = cleanName
		if avatar, ok := asString(u["avatar"]); ok && models.IsAvatar(avatar) {
			existing.Avatar = avatar
		}
		if createdAt, ok := asString(u["createdAt"]); ok {
			existing.CreatedAt = createdAt
		}
		if updatedAt, ok := asString(u["updatedAt"]); ok {
			existing.UpdatedAt = updatedAt
		}
		existing.Adventure = normalizeAdventure(u["adventure"])

		users[id] = existing
	}

	if len(users) == 0 {
		return models.FreshState()
	}

	active, _ := asString(base["activeUserId"])
	if _, ok := users[active]; !ok {
		mergedIDs := make([]string, 0, len(users))
		for id := range users {
			mergedIDs = append(mergedIDs, id)
		}
		sort.Strings(mergedIDs)
		active = mergedIDs[0]
	}

	return &models.ProfileState{
		Version:      models.SchemaVersion,
		ActiveUserID: active,
		Users:        users,
	}
}

func normalizeAdventure(raw any) models.Adventure {
	adv, _ := asObject(raw)
	rawGames, _ := asObject(adv["games"])

	games := map[string]*models.GameProgress{}
	for gid, rawGame := range rawGames {
		g, ok := asObject(rawGame)
		if !ok {
			continue
		}
		games[gid] = normalizeGameProgress(g)
	}

	out := models.EmptyAdventure()
	out.Games = games
	if launches, ok := asNumber(adv["totalLaunches"]); ok {
		out.TotalLaunches = clampNonNegative(launches)
	}
	if last, ok := asString(adv["lastPlayedId"]); ok {
		out.LastPlayedID = last
	}
	return out
}

func normalizeGameProgress(g map[string]any) *models.GameProgress {
	out := models.EmptyGameProgress()

	if plays, ok := asNumber(g["plays"]); ok {
		out.Plays = clampNonNegative(plays)
	}
	if stars, ok := asNumber(g["stars"]); ok {
		out.Stars = models.ClampStars(int(math.Floor(stars)))
	}
	if v, ok := asNumber(g["bestCorrect"]); ok {
		n := int(math.Floor(v))
		out.BestCorrect = &n
	}
	if v, ok := asNumber(g["bestTotal"]); ok {
		n := int(math.Floor(v))
		out.BestTotal = &n
	}
	if v, ok := asNumber(g["bestTimeMs"]); ok {
		n := int64(v)
		out.BestTimeMs = &n
	}
	if s, ok := asString(g["lastPlayedAt"]); ok {
		out.LastPlayedAt = s
	}
	if s, ok := asString(g["recordText"]); ok {
		out.RecordText = s
	}
	if v, ok := asNumber(g["scoreValue"]); ok {
		out.ScoreValue = &v
	}
	if s, ok := asString(g["scoreLabel"]); ok {
		out.ScoreLabel = s
	}
	return out
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func clampNonNegative(f float64) int {
	n := int(math.Floor(f))
	if n < 0 {
		return 0
	}
	return n
}
