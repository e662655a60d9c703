package catalog

import "testing"

func TestRegistryComplete(t *testing.T) {
	all := Games()
	if len(all) != 17 {
		t.Fatalf("Games() = %d entries, want 17", len(all))
	}

	seen := map[string]bool{}
	for _, g := range all {
		if g.ID == "" || g.Title == "" || g.Href == "" {
			t.Errorf("incomplete entry: %+v", g)
		}
		if seen[g.ID] {
			t.Errorf("duplicate id %q", g.ID)
		}
		seen[g.ID] = true
	}
}

func TestByID(t *testing.T) {
	g, ok := ByID("sum_mission")
	if !ok {
		t.Fatal("ByID(sum_mission) not found")
	}
	if g.Href != "games/sum_mission.html" {
		t.Errorf("Href = %q", g.Href)
	}
	if _, ok := ByID("no_such_game"); ok {
		t.Error("ByID(no_such_game) found")
	}
}

func TestMissionStarGames(t *testing.T) {
	want := []string{"sum_mission", "subtraction_mission", "multiplication_mission", "division_mission"}
	for _, id := range want {
		if !IsMissionStarGame(id) {
			t.Errorf("IsMissionStarGame(%q) = false", id)
		}
	}
	if IsMissionStarGame("addition_defense") {
		t.Error("IsMissionStarGame(addition_defense) = true")
	}
	if MissionStarGameCount() != len(want) {
		t.Errorf("MissionStarGameCount() = %d, want %d", MissionStarGameCount(), len(want))
	}
}

func TestGameIDForPage(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{name: "plain page name", page: "sum_mission.html", want: "sum_mission"},
		{name: "full path", page: "games/even_odd.html", want: "even_odd"},
		{name: "renamed division mission page", page: "division_challenge.html", want: "division_mission"},
		{name: "renamed dismantle page", page: "division_dismantle_factory.html", want: "division_dismantle"},
		{name: "unknown page", page: "settings.html", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GameIDForPage(tt.page); got != tt.want {
				t.Errorf("GameIDForPage(%q) = %q, want %q", tt.page, got, tt.want)
			}
		})
	}
}

func TestOrderedIDs(t *testing.T) {
	ids := OrderedIDs()
	if len(ids) != len(Games()) {
		t.Fatalf("OrderedIDs() = %d ids, want %d", len(ids), len(Games()))
	}
	if ids[0] != "visual_sum" {
		t.Errorf("first id = %q, want visual_sum", ids[0])
	}

	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = true
		if _, ok := ByID(id); !ok {
			t.Errorf("ordered id %q missing from registry", id)
		}
	}
}

func TestPrecacheURLs(t *testing.T) {
	urls := PrecacheURLs()
	if len(urls) != len(coreAssets)+len(Games()) {
		t.Fatalf("PrecacheURLs() = %d urls, want %d", len(urls), len(coreAssets)+len(Games()))
	}

	has := map[string]bool{}
	for _, u := range urls {
		has[u] = true
	}
	for _, want := range []string{"index.html", "assets/js/app.js", "games/sum_mission.html"} {
		if !has[want] {
			t.Errorf("PrecacheURLs() missing %q", want)
		}
	}
}
