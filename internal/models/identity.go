package models

import (
	"regexp"
	"strings"
)

const (
	// DefaultPlayerName is used when a name cleans to nothing.
	DefaultPlayerName = "Player"
	// DefaultPlayerID is used when a cleaned name derives an empty id.
	// A cleaned name always keeps at least one alphanumeric (empty input
	// becomes DefaultPlayerName), so in practice this never triggers.
	DefaultPlayerID = "player-1"
	// MaxPlayerName caps display names.
	MaxPlayerName = 16
)

// AvatarOptions is the fixed set of avatar glyphs, in hash order.
var AvatarOptions = []string{"🦊", "🐼", "🦁", "🐯", "🐨", "🐸", "🐬", "🦄", "🐆", "🐧"}

var (
	nameJunkRe   = regexp.MustCompile(`[^A-Za-z0-9 ]+`)
	nameSpacesRe = regexp.MustCompile(`\s+`)
	idJunkRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

// CleanPlayerName strips a raw display name down to letters, digits and
// single spaces, trims it and caps its length. Empty input cleans to the
// default name.
func CleanPlayerName(raw string) string {
	base := nameJunkRe.ReplaceAllString(raw, " ")
	base = nameSpacesRe.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)
	if base == "" {
		return DefaultPlayerName
	}
	if len(base) > MaxPlayerName {
		base = base[:MaxPlayerName]
	}
	return base
}

// PlayerIDFromName derives the stable identity slug for a display name:
// cleaned, lowercased, non-alphanumeric runs collapsed to hyphens.
// Two raw names that clean to the same text always share an id.
func PlayerIDFromName(name string) string {
	id := strings.ToLower(CleanPlayerName(name))
	id = idJunkRe.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return DefaultPlayerID
	}
	return id
}

// AvatarForID proposes an avatar for an id. The hash matches the
// original web build (31*h+c over the id bytes in signed 32-bit
// arithmetic) so existing profiles keep their glyphs.
func AvatarForID(id string) string {
	var h int32
	for i := 0; i < len(id); i++ {
		h = h<<5 - h + int32(id[i])
	}
	idx := int64(h)
	if idx < 0 {
		idx = -idx
	}
	return AvatarOptions[idx%int64(len(AvatarOptions))]
}

// IsAvatar reports whether glyph is one of the fixed avatar options.
func IsAvatar(glyph string) bool {
	for _, a := range AvatarOptions {
		if a == glyph {
			return true
		}
	}
	return false
}
