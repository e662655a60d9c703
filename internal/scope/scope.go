// Package scope namespaces legacy per-game storage keys by the active
// player. Game modules keep using their original, unscoped keys; this
// layer rewrites any whitelisted key to
//
//	mathArcade_scope_v2_<userId>::<originalKey>
//
// before it reaches the store, so two players on one device never share
// game state.
//
// Known sharp edge, preserved on purpose: when no player is active,
// whitelisted keys fall through to the shared global key. That is the
// pre-profile compatibility path, and it means data written with no
// active player is visible to whichever player the unscoped readers see
// later.
package scope

import (
	"strings"

	"go.uber.org/zap"

	"github.com/NicolaLanata/math-arcade/internal/kvstore"
)

const (
	// ProfileBlobKey is the single key holding the profile state blob.
	// It is never scoped.
	ProfileBlobKey = "mathArcade_global_profiles_v2"
	// Prefix marks a key as already carrying a player scope.
	Prefix = "mathArcade_scope_v2_"
	// Separator sits between the player id and the original key.
	Separator = "::"
	// globalPrefix marks device-wide keys that are never scoped.
	globalPrefix = "mathArcade_global_"
)

// ScopedKeyPrefixes is the whitelist of legacy per-game key prefixes.
var ScopedKeyPrefixes = []string{
	"mathArcade_",
	"addDef_",
	"subDef_",
	"multDef_",
	"divDef_",
	"evenOdd_",
	"predChoice_",
	"division_",
}

// scopedExactKeys are whitelisted keys that match exactly rather than
// by prefix.
var scopedExactKeys = map[string]bool{
	"division_remainders_best_v1": true,
}

// ActiveUserFunc reports the active player's id, or "" when none.
type ActiveUserFunc func() string

// Observer is notified of every write and removal that passes through
// the scoping layer, with the plain (unscoped) key. The progress
// reconciliation layer hangs off this hook.
type Observer interface {
	KeyWritten(key, value string)
	KeyRemoved(key string)
}

// Storage wraps a kvstore.Store with per-player key scoping. It
// implements kvstore.Store itself, so game modules depend on the same
// contract whether or not scoping sits between them and the device.
type Storage struct {
	store    kvstore.Store
	activeID ActiveUserFunc
	observer Observer
	log      *zap.Logger
}

// New creates a scoping layer over store. activeID supplies the player
// whose namespace applies.
func New(store kvstore.Store, activeID ActiveUserFunc, log *zap.Logger) *Storage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Storage{store: store, activeID: activeID, log: log}
}

// SetObserver installs the write/remove observer.
func (s *Storage) SetObserver(o Observer) {
	s.observer = o
}

// ShouldScope reports whether key belongs to the legacy whitelist and
// is therefore namespaced per player.
func ShouldScope(key string) bool {
	if key == "" || key == ProfileBlobKey {
		return false
	}
	if strings.HasPrefix(key, globalPrefix) || strings.HasPrefix(key, Prefix) {
		return false
	}
	if scopedExactKeys[key] {
		return true
	}
	for _, p := range ScopedKeyPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// IsGlobalKey reports whether key is device-wide state that purges must
// never touch.
func IsGlobalKey(key string) bool {
	return key == ProfileBlobKey || strings.HasPrefix(key, globalPrefix)
}

// UserScopePrefix returns the full storage prefix of one player's
// namespace.
func UserScopePrefix(userID string) string {
	return Prefix + userID + Separator
}

// EffectiveKey returns the key actually used in the store: scoped for
// whitelisted keys while a player is active, unchanged otherwise.
func (s *Storage) EffectiveKey(key string) string {
	if !ShouldScope(key) {
		return key
	}
	id := s.activeID()
	if id == "" {
		return key
	}
	return UserScopePrefix(id) + key
}

// Get reads the value visible to the active player.
func (s *Storage) Get(key string) (string, bool) {
	return s.store.Get(s.EffectiveKey(key))
}

// Set writes under the active player's namespace and notifies the
// observer with the plain key.
func (s *Storage) Set(key, value string) {
	effective := s.EffectiveKey(key)
	if effective != key {
		s.log.Debug("scoped write", zap.String("key", key), zap.String("scoped", effective))
	}
	s.store.Set(effective, value)
	if s.observer != nil {
		s.observer.KeyWritten(key, value)
	}
}

// Remove deletes under the active player's namespace and notifies the
// observer with the plain key.
func (s *Storage) Remove(key string) {
	s.store.Remove(s.EffectiveKey(key))
	if s.observer != nil {
		s.observer.KeyRemoved(key)
	}
}

// Keys enumerates the underlying store unchanged; callers that care
// about namespaces filter on UserScopePrefix.
func (s *Storage) Keys() []string {
	return s.store.Keys()
}

// PurgeUser removes every key in userID's namespace from store and
// returns how many were removed. It operates on the raw store: purging
// must see real namespaced keys, not rewritten ones.
func PurgeUser(store kvstore.Store, userID string) int {
	if userID == "" {
		return 0
	}
	prefix := UserScopePrefix(userID)
	removed := 0
	for _, k := range store.Keys() {
		if strings.HasPrefix(k, prefix) {
			store.Remove(k)
			removed++
		}
	}
	return removed
}

// PurgeUserAndLegacy removes userID's namespace plus any unscoped
// legacy keys on the whitelist. Global keys and the profile blob are
// untouched. Used by the parental progress reset, which also clears
// pre-profile data.
func PurgeUserAndLegacy(store kvstore.Store, userID string) int {
	scopePrefix := UserScopePrefix(userID)
	removed := 0
	for _, k := range store.Keys() {
		if IsGlobalKey(k) {
			continue
		}
		if userID != "" && strings.HasPrefix(k, scopePrefix) {
			store.Remove(k)
			removed++
			continue
		}
		if ShouldScope(k) {
			store.Remove(k)
			removed++
		}
	}
	return removed
}
