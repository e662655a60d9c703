// Package catalog holds the static game registry: every game the arcade
// knows about, its display metadata, and the lookups the progress layer
// needs to map storage activity back to a game identity.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed games.yaml
var gamesYAML []byte

// Game is one catalog entry, consumed read-only.
type Game struct {
	ID    string  `yaml:"id"`
	Title string  `yaml:"title"`
	Href  string  `yaml:"href"`
	Icon  string  `yaml:"icon"`
	Badge string  `yaml:"badge"`
	Kind  string  `yaml:"kind"`
	Order float64 `yaml:"order"`
	Desc  string  `yaml:"desc"`
}

// KnownGameOrder is the preferred display order for progress listings.
// Catalog entries outside this list append after it.
var KnownGameOrder = []string{
	"visual_sum", "sum_master", "sum_mission", "addition_defense",
	"subtraction_master", "subtraction_mission", "subtraction_defense",
	"atomic_multiplication", "multiplication_mission", "multiplication_defense",
	"division_factory", "division_dismantle", "atomic_division", "division_mission", "division_defense",
	"predecessor_choice", "even_odd",
}

// missionStarGames are the games whose star ratings count.
var missionStarGames = map[string]bool{
	"sum_mission":            true,
	"subtraction_mission":    true,
	"multiplication_mission": true,
	"division_mission":       true,
}

// pageToID resolves legacy page filenames whose names do not match
// their game ids. Every other page resolves through its catalog href.
var pageToID = map[string]string{
	"division_challenge.html":         "division_mission",
	"division_dismantle_factory.html": "division_dismantle",
}

var games []Game

func init() {
	var doc struct {
		Games []Game `yaml:"games"`
	}
	// The registry is embedded and validated by tests; a broken file
	// is a build defect, not a runtime condition.
	if err := yaml.Unmarshal(gamesYAML, &doc); err != nil {
		panic(fmt.Sprintf("catalog: invalid games.yaml: %v", err))
	}
	games = doc.Games
}

// Games returns all catalog entries in registry order.
func Games() []Game {
	out := make([]Game, len(games))
	copy(out, games)
	return out
}

// ByID returns the catalog entry for id.
func ByID(id string) (Game, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

// IsMissionStarGame reports whether stars are meaningful for gameID.
func IsMissionStarGame(gameID string) bool {
	return missionStarGames[gameID]
}

// MissionStarGameCount returns how many games award stars.
func MissionStarGameCount() int {
	return len(missionStarGames)
}

// GameIDForPage resolves a navigated-to page filename back to a game
// identity, or "" if it is not a known game page.
func GameIDForPage(page string) string {
	if i := strings.LastIndexByte(page, '/'); i >= 0 {
		page = page[i+1:]
	}
	if id, ok := pageToID[page]; ok {
		return id
	}
	for _, g := range games {
		if pageName(g.Href) == page {
			return g.ID
		}
	}
	return ""
}

func pageName(href string) string {
	if i := strings.LastIndexByte(href, '/'); i >= 0 {
		return href[i+1:]
	}
	return href
}

// OrderedIDs returns every catalog id in display order: the known
// order first, then any remaining ids in registry order.
func OrderedIDs() []string {
	present := map[string]bool{}
	for _, g := range games {
		present[g.ID] = true
	}

	var order []string
	seen := map[string]bool{}
	for _, id := range KnownGameOrder {
		if present[id] && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	for _, g := range games {
		if !seen[g.ID] {
			order = append(order, g.ID)
			seen[g.ID] = true
		}
	}
	return order
}

// coreAssets are the always-cached files of the web build.
var coreAssets = []string{
	"./",
	"index.html",
	"settings.html",
	"manifest.webmanifest",
	"assets/css/arcade.css",
	"assets/css/mission.css",
	"assets/js/games.js",
	"assets/js/app.js",
	"assets/js/mission_core.js",
	"assets/icons/apple-touch-icon.png",
	"assets/icons/icon-192.png",
	"assets/icons/icon-512.png",
	"assets/icons/favicon.svg",
}

// PrecacheURLs is the contract with the offline-caching collaborator:
// the core assets plus every game page.
func PrecacheURLs() []string {
	urls := make([]string, 0, len(coreAssets)+len(games))
	urls = append(urls, coreAssets...)
	for _, g := range games {
		urls = append(urls, g.Href)
	}
	return urls
}
