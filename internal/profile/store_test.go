package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolaLanata/math-arcade/internal/kvstore"
	"github.com/NicolaLanata/math-arcade/internal/models"
	"github.com/NicolaLanata/math-arcade/internal/scope"
)

func newTestStore() (*Store, kvstore.Store) {
	raw := kvstore.NewMemoryStore()
	return New(raw, nil), raw
}

func TestLoadFreshWhenEmpty(t *testing.T) {
	s, raw := newTestStore()

	st := s.Load()
	assert.Equal(t, models.SchemaVersion, st.Version)
	assert.Empty(t, st.Users)

	// The fresh state is persisted immediately.
	_, ok := raw.Get(scope.ProfileBlobKey)
	assert.True(t, ok, "fresh state was not written back")
}

func TestLoadMalformedBlobStartsFresh(t *testing.T) {
	s, raw := newTestStore()
	raw.Set(scope.ProfileBlobKey, "{not json")

	st := s.Load()
	assert.Empty(t, st.Users)

	// The repaired blob replaces the broken one.
	blob, _ := raw.Get(scope.ProfileBlobKey)
	var check models.ProfileState
	require.NoError(t, json.Unmarshal([]byte(blob), &check))
}

func TestSwitchOrCreateByName(t *testing.T) {
	s, _ := newTestStore()

	u := s.SwitchOrCreateByName("  Mia!! ")
	require.NotNil(t, u)
	assert.Equal(t, "mia", u.ID)
	assert.Equal(t, "Mia", u.Name)
	assert.Equal(t, "mia", s.ActiveUserID())
	assert.True(t, models.IsAvatar(u.Avatar))

	// Same cleaned name reactivates the same player with the new
	// spelling, progress intact.
	u.Game("pizza_party").Plays = 4
	s.Save()

	again := s.SwitchOrCreateByName("MIA")
	assert.Equal(t, "mia", again.ID)
	assert.Equal(t, "MIA", again.Name)
	assert.Equal(t, 4, again.Game("pizza_party").Plays)
}

func TestSwitchByID(t *testing.T) {
	s, _ := newTestStore()
	s.SwitchOrCreateByName("Mia")
	s.SwitchOrCreateByName("Leo")

	u, ok := s.SwitchByID("mia")
	require.True(t, ok)
	assert.Equal(t, "mia", u.ID)

	_, ok = s.SwitchByID("ghost")
	assert.False(t, ok)
	assert.Equal(t, "mia", s.ActiveUserID(), "failed switch must not change the active player")
}

func TestUsersSorted(t *testing.T) {
	s, _ := newTestStore()
	a := s.SwitchOrCreateByName("Ann")
	b := s.SwitchOrCreateByName("Bea")
	a.UpdatedAt = "2024-01-01T00:00:00.000Z"
	b.UpdatedAt = "2024-06-01T00:00:00.000Z"

	got := s.UsersSorted()
	require.Len(t, got, 2)
	assert.Equal(t, "bea", got[0].ID)
	assert.Equal(t, "ann", got[1].ID)
}

func TestDeleteByID(t *testing.T) {
	raw := kvstore.NewMemoryStore()
	s := New(raw, nil)
	s.SwitchOrCreateByName("Mia")
	s.SwitchOrCreateByName("Leo")

	// Seed per-player and shared keys the purge must distinguish.
	raw.Set(scope.UserScopePrefix("leo")+"mathArcade_playerName", "Leo")
	raw.Set(scope.UserScopePrefix("leo")+"addDef_records_v1", "{}")
	raw.Set(scope.UserScopePrefix("mia")+"mathArcade_playerName", "Mia")
	raw.Set("mathArcade_global_settings", "{}")

	res := s.DeleteByID("leo")
	require.True(t, res.OK)
	assert.Equal(t, 2, res.RemovedKeys)

	_, ok := raw.Get(scope.UserScopePrefix("mia") + "mathArcade_playerName")
	assert.True(t, ok, "surviving player's key was purged")
	_, ok = raw.Get("mathArcade_global_settings")
	assert.True(t, ok, "global key was purged")

	// Leo was active; the remaining player takes over.
	assert.Equal(t, "mia", s.ActiveUserID())

	res = s.DeleteByID("ghost")
	assert.False(t, res.OK)
	assert.Equal(t, "not-found", res.Reason)
}

func TestDeleteLastUserLeavesNoActive(t *testing.T) {
	s, _ := newTestStore()
	s.SwitchOrCreateByName("Mia")

	res := s.DeleteByID("mia")
	require.True(t, res.OK)
	assert.Nil(t, s.ActiveUser())
}

func TestSetActiveAvatar(t *testing.T) {
	s, _ := newTestStore()
	u := s.SwitchOrCreateByName("Mia")

	s.SetActiveAvatar("🐧")
	assert.Equal(t, "🐧", u.Avatar)

	// Unknown glyphs are ignored.
	s.SetActiveAvatar("🐙")
	assert.Equal(t, "🐧", u.Avatar)
}

func TestResetActiveProgress(t *testing.T) {
	raw := kvstore.NewMemoryStore()
	s := New(raw, nil)
	u := s.SwitchOrCreateByName("Mia")
	u.Adventure.TotalLaunches = 9
	u.Game("pizza_party").Stars = 3
	s.Save()

	raw.Set(scope.UserScopePrefix("mia")+"mathArcade_sumMission_best_L1", "{}")
	raw.Set("division_remainders_best_v1", "{}")

	removed := s.ResetActiveProgress()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, u.Adventure.TotalLaunches)
	assert.Empty(t, u.Adventure.Games)

	_, ok := raw.Get(scope.ProfileBlobKey)
	assert.True(t, ok, "profile blob was purged")
}
