package models

import "time"

// SchemaVersion is the profile blob schema version written by this build.
const SchemaVersion = 2

// ProfileState is the root object persisted as a single JSON blob.
type ProfileState struct {
	Version      int              `json:"version"`
	ActiveUserID string           `json:"activeUserId"`
	Users        map[string]*User `json:"users"`
}

// User is one locally stored player identity with its own progress.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
	Adventure Adventure `json:"adventure"`
}

// Adventure aggregates a user's progress across all games.
type Adventure struct {
	TotalLaunches int                      `json:"totalLaunches"`
	LastPlayedID  string                   `json:"lastPlayedId"`
	Games         map[string]*GameProgress `json:"games"`
}

// GameProgress holds one user's unified progress summary for one game.
type GameProgress struct {
	Plays        int      `json:"plays"`
	Stars        int      `json:"stars"`
	BestCorrect  *int     `json:"bestCorrect"`
	BestTotal    *int     `json:"bestTotal"`
	BestTimeMs   *int64   `json:"bestTimeMs"`
	LastPlayedAt string   `json:"lastPlayedAt"`
	RecordText   string   `json:"recordText"`
	ScoreValue   *float64 `json:"scoreValue"`
	ScoreLabel   string   `json:"scoreLabel"`
}

// FreshState returns an empty but valid profile state.
func FreshState() *ProfileState {
	return &ProfileState{
		Version:      SchemaVersion,
		ActiveUserID: "",
		Users:        map[string]*User{},
	}
}

// NewUser creates a user with a derived avatar and zeroed progress.
func NewUser(name, id string) *User {
	stamp := NowISO()
	return &User{
		ID:        id,
		Name:      CleanPlayerName(name),
		Avatar:    AvatarForID(id),
		CreatedAt: stamp,
		UpdatedAt: stamp,
		Adventure: EmptyAdventure(),
	}
}

// EmptyAdventure returns a zeroed progress aggregate.
func EmptyAdventure() Adventure {
	return Adventure{
		TotalLaunches: 0,
		LastPlayedID:  "",
		Games:         map[string]*GameProgress{},
	}
}

// EmptyGameProgress returns a zeroed per-game progress record.
func EmptyGameProgress() *GameProgress {
	return &GameProgress{}
}

// Touch refreshes the user's updatedAt stamp.
func (u *User) Touch() {
	u.UpdatedAt = NowISO()
}

// Game returns the progress record for gameId, creating it if missing.
func (u *User) Game(gameID string) *GameProgress {
	if u.Adventure.Games == nil {
		u.Adventure.Games = map[string]*GameProgress{}
	}
	g, ok := u.Adventure.Games[gameID]
	if !ok {
		g = EmptyGameProgress()
		u.Adventure.Games[gameID] = g
	}
	return g
}

// NowISO returns the current UTC time in the ISO-8601 form the
// original web build wrote (millisecond precision, Z suffix).
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
