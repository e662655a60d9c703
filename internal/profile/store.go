// Package profile owns the catalog of players and the active player.
// All state lives in one JSON blob under a single storage key; it is
// loaded lazily once, normalized immediately, and written back after
// every mutation.
package profile

import (
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/NicolaLanata/math-arcade/internal/kvstore"
	"github.com/NicolaLanata/math-arcade/internal/models"
	"github.com/NicolaLanata/math-arcade/internal/scope"
)

// Store manages player profiles over the raw (unscoped) device store.
// The profile blob key is excluded from scoping, so the Store must talk
// to the store directly rather than through the scoping layer.
type Store struct {
	kv    kvstore.Store
	log   *zap.Logger
	state *models.ProfileState
}

// New creates a profile store. Nothing is read until the first access.
func New(kv kvstore.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log}
}

// Load returns the profile state, reading and normalizing the persisted
// blob on first use. Absent or malformed blobs are replaced with a
// fresh empty state; Load never fails.
func (s *Store) Load() *models.ProfileState {
	if s.state != nil {
		return s.state
	}

	raw, ok := s.kv.Get(scope.ProfileBlobKey)
	if !ok {
		s.state = models.FreshState()
		s.save()
		return s.state
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.log.Warn("profile blob unreadable, starting fresh", zap.Error(err))
		s.state = models.FreshState()
	} else {
		s.state = Normalize(decoded)
	}

	s.save()
	return s.state
}

// Reset drops the in-memory cache so the next access reloads from the
// store. Tests and process re-initialization use this.
func (s *Store) Reset() {
	s.state = nil
}

func (s *Store) save() {
	if s.state == nil {
		return
	}
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.log.Debug("profile blob encode failed", zap.Error(err))
		return
	}
	s.kv.Set(scope.ProfileBlobKey, string(blob))
}

// Save persists the current state. Mutating callers outside this
// package (the progress layer) use it after patching a user.
func (s *Store) Save() {
	s.save()
}

// ActiveUser returns the active player, or nil when none is active.
func (s *Store) ActiveUser() *models.User {
	state := s.Load()
	if state.ActiveUserID == "" {
		return nil
	}
	return state.Users[state.ActiveUserID]
}

// ActiveUserID returns the active player's id, or "".
func (s *Store) ActiveUserID() string {
	u := s.ActiveUser()
	if u == nil {
		return ""
	}
	return u.ID
}

// UsersSorted returns all players, most recently updated first.
func (s *Store) UsersSorted() []*models.User {
	state := s.Load()
	users := make([]*models.User, 0, len(state.Users))
	for _, u := range state.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].UpdatedAt != users[j].UpdatedAt {
			return users[i].UpdatedAt > users[j].UpdatedAt
		}
		return users[i].ID < users[j].ID
	})
	return users
}

// SwitchOrCreateByName cleans the name and activates the player with
// the derived id, creating it on first sight. An existing player keeps
// its progress and takes the new display spelling.
func (s *Store) SwitchOrCreateByName(rawName string) *models.User {
	state := s.Load()
	name := models.CleanPlayerName(rawName)
	id := models.PlayerIDFromName(name)

	u, ok := state.Users[id]
	if !ok {
		u = models.NewUser(name, id)
		state.Users[id] = u
		s.log.Info("player created", zap.String("id", id), zap.String("name", name))
	} else {
		u.Name = name
	}

	state.ActiveUserID = id
	u.Touch()
	s.save()
	return u
}

// SwitchByID activates a known player. Returns nil, false for an
// unknown id.
func (s *Store) SwitchByID(id string) (*models.User, bool) {
	state := s.Load()
	u, ok := state.Users[id]
	if !ok {
		return nil, false
	}
	state.ActiveUserID = id
	u.Touch()
	s.save()
	return u, true
}

// DeleteResult reports the outcome of DeleteByID.
type DeleteResult struct {
	OK          bool
	Reason      string
	RemovedKeys int
}

// DeleteByID removes a player and purges every storage key in that
// player's namespace. The active player falls back to an arbitrary
// remaining player, or to none.
func (s *Store) DeleteByID(id string) DeleteResult {
	state := s.Load()
	if _, ok := state.Users[id]; !ok {
		return DeleteResult{OK: false, Reason: "not-found"}
	}

	delete(state.Users, id)
	removed := scope.PurgeUser(s.kv, id)

	if state.ActiveUserID == id {
		state.ActiveUserID = ""
		remaining := make([]string, 0, len(state.Users))
		for uid := range state.Users {
			remaining = append(remaining, uid)
		}
		sort.Strings(remaining)
		if len(remaining) > 0 {
			state.ActiveUserID = remaining[0]
		}
	}

	s.save()
	s.log.Info("player deleted", zap.String("id", id), zap.Int("removedKeys", removed))
	return DeleteResult{OK: true, RemovedKeys: removed}
}

// SetActiveAvatar sets the active player's avatar. Unknown glyphs and
// the no-active-player case are silent no-ops.
func (s *Store) SetActiveAvatar(glyph string) {
	if !models.IsAvatar(glyph) {
		return
	}
	u := s.ActiveUser()
	if u == nil {
		return
	}
	u.Avatar = glyph
	u.Touch()
	s.save()
}

// ResetActiveProgress wipes the active player's saved game data: the
// player's scoped namespace, any legacy unscoped whitelisted keys, and
// the in-profile progress aggregate. Returns the number of storage keys
// removed, or 0 when no player is active.
func (s *Store) ResetActiveProgress() int {
	u := s.ActiveUser()
	if u == nil {
		return 0
	}

	removed := scope.PurgeUserAndLegacy(s.kv, u.ID)

	u.Adventure = models.EmptyAdventure()
	u.Touch()
	s.save()

	s.log.Info("progress reset", zap.String("id", u.ID), zap.Int("removedKeys", removed))
	return removed
}
