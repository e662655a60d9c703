package scope

import (
	"testing"

	"github.com/NicolaLanata/math-arcade/internal/kvstore"
)

func TestShouldScope(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{name: "mission best key", key: "mathArcade_sumMission_best_L1", want: true},
		{name: "game defaults key", key: "addDef_records_v1", want: true},
		{name: "division prefix", key: "division_dismantle_records_v1", want: true},
		{name: "exact whitelist key", key: "division_remainders_best_v1", want: true},
		{name: "profile blob never scoped", key: ProfileBlobKey, want: false},
		{name: "global keys never scoped", key: "mathArcade_global_settings", want: false},
		{name: "already scoped key untouched", key: Prefix + "mia::mathArcade_playerName", want: false},
		{name: "unrelated key", key: "somethingElse", want: false},
		{name: "empty key", key: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldScope(tt.key); got != tt.want {
				t.Errorf("ShouldScope(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestEffectiveKey(t *testing.T) {
	active := "mia"
	s := New(kvstore.NewMemoryStore(), func() string { return active }, nil)

	if got, want := s.EffectiveKey("mathArcade_playerName"), "mathArcade_scope_v2_mia::mathArcade_playerName"; got != want {
		t.Errorf("EffectiveKey() = %q, want %q", got, want)
	}
	if got := s.EffectiveKey("unrelated"); got != "unrelated" {
		t.Errorf("EffectiveKey(unrelated) = %q, want unchanged", got)
	}

	// With no active player, whitelisted keys fall through unscoped.
	active = ""
	if got := s.EffectiveKey("mathArcade_playerName"); got != "mathArcade_playerName" {
		t.Errorf("EffectiveKey() with no active player = %q, want plain key", got)
	}
}

func TestScopedRoundTripAndIsolation(t *testing.T) {
	raw := kvstore.NewMemoryStore()
	active := "mia"
	s := New(raw, func() string { return active }, nil)

	s.Set("mathArcade_playerName", "Mia")
	if v, ok := s.Get("mathArcade_playerName"); !ok || v != "Mia" {
		t.Fatalf("scoped Get = %q, %v, want \"Mia\", true", v, ok)
	}

	// The raw store holds the namespaced key, not the plain one.
	if _, ok := raw.Get("mathArcade_playerName"); ok {
		t.Error("plain key present in raw store, want namespaced only")
	}
	if _, ok := raw.Get("mathArcade_scope_v2_mia::mathArcade_playerName"); !ok {
		t.Error("namespaced key missing from raw store")
	}

	// Another player sees nothing.
	active = "leo"
	if _, ok := s.Get("mathArcade_playerName"); ok {
		t.Error("second player can read first player's value")
	}

	s.Set("mathArcade_playerName", "Leo")
	active = "mia"
	if v, _ := s.Get("mathArcade_playerName"); v != "Mia" {
		t.Errorf("first player's value changed to %q", v)
	}

	active = "mia"
	s.Remove("mathArcade_playerName")
	if _, ok := s.Get("mathArcade_playerName"); ok {
		t.Error("value still readable after Remove")
	}
}

type recordingObserver struct {
	written []string
	removed []string
}

func (o *recordingObserver) KeyWritten(key, value string) { o.written = append(o.written, key) }
func (o *recordingObserver) KeyRemoved(key string)        { o.removed = append(o.removed, key) }

func TestObserverSeesPlainKeys(t *testing.T) {
	s := New(kvstore.NewMemoryStore(), func() string { return "mia" }, nil)
	obs := &recordingObserver{}
	s.SetObserver(obs)

	s.Set("mathArcade_sumMission_best_L2", `{"name":"Mia","correct":5,"timeMs":12000}`)
	s.Remove("addDef_records_v1")

	if len(obs.written) != 1 || obs.written[0] != "mathArcade_sumMission_best_L2" {
		t.Errorf("written = %v, want the plain key", obs.written)
	}
	if len(obs.removed) != 1 || obs.removed[0] != "addDef_records_v1" {
		t.Errorf("removed = %v, want the plain key", obs.removed)
	}
}

func TestPurgeUser(t *testing.T) {
	raw := kvstore.NewMemoryStore()
	raw.Set(UserScopePrefix("mia")+"mathArcade_playerName", "Mia")
	raw.Set(UserScopePrefix("mia")+"addDef_records_v1", "{}")
	raw.Set(UserScopePrefix("leo")+"mathArcade_playerName", "Leo")
	raw.Set(ProfileBlobKey, "{}")
	raw.Set("mathArcade_playerName", "Shared")

	if got := PurgeUser(raw, "mia"); got != 2 {
		t.Errorf("PurgeUser() = %d, want 2", got)
	}
	if _, ok := raw.Get(UserScopePrefix("leo") + "mathArcade_playerName"); !ok {
		t.Error("other player's key was removed")
	}
	if _, ok := raw.Get(ProfileBlobKey); !ok {
		t.Error("profile blob was removed")
	}
	if _, ok := raw.Get("mathArcade_playerName"); !ok {
		t.Error("unscoped legacy key was removed, PurgeUser must leave it")
	}

	if got := PurgeUser(raw, ""); got != 0 {
		t.Errorf("PurgeUser(\"\") = %d, want 0", got)
	}
}

func TestPurgeUserAndLegacy(t *testing.T) {
	raw := kvstore.NewMemoryStore()
	raw.Set(UserScopePrefix("mia")+"mathArcade_playerName", "Mia")
	raw.Set("mathArcade_playerName", "Shared")
	raw.Set("division_remainders_best_v1", "{}")
	raw.Set(UserScopePrefix("leo")+"mathArcade_playerName", "Leo")
	raw.Set(ProfileBlobKey, "{}")
	raw.Set("mathArcade_global_settings", "{}")

	if got := PurgeUserAndLegacy(raw, "mia"); got != 3 {
		t.Errorf("PurgeUserAndLegacy() = %d, want 3", got)
	}
	if _, ok := raw.Get(UserScopePrefix("leo") + "mathArcade_playerName"); !ok {
		t.Error("other player's namespaced key was removed")
	}
	if _, ok := raw.Get(ProfileBlobKey); !ok {
		t.Error("profile blob was removed")
	}
	if _, ok := raw.Get("mathArcade_global_settings"); !ok {
		t.Error("global key was removed")
	}
}
