package mission

import (
	"strings"

	"github.com/NicolaLanata/math-arcade/internal/kvstore"
	"github.com/NicolaLanata/math-arcade/internal/models"
)

// LegacyNameKey held the typed player name before profiles existed.
// Mission games still read and write it so pre-profile installs keep
// their name on the level-select screen.
const LegacyNameKey = "mathArcade_playerName"

const maxLegacyName = 18

func normalizeName(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return models.DefaultPlayerName
	}
	if r := []rune(t); len(r) > maxLegacyName {
		t = string(r[:maxLegacyName])
	}
	return t
}

// LoadStoredName returns the legacy stored player name, normalized.
func LoadStoredName(store kvstore.Store) string {
	v, _ := store.Get(LegacyNameKey)
	return normalizeName(v)
}

// SaveStoredName persists the legacy player name, normalized.
func SaveStoredName(store kvstore.Store, name string) {
	store.Set(LegacyNameKey, normalizeName(name))
}
