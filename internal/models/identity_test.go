package models

import "testing"

func TestCleanPlayerName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain name passes through",
			raw:  "Mia",
			want: "Mia",
		},
		{
			name: "punctuation stripped",
			raw:  "Alex!!",
			want: "Alex",
		},
		{
			name: "inner junk becomes single space",
			raw:  "Sam***Lee",
			want: "Sam Lee",
		},
		{
			name: "whitespace collapsed and trimmed",
			raw:  "  Ana    Bo  ",
			want: "Ana Bo",
		},
		{
			name: "empty falls back to default",
			raw:  "",
			want: DefaultPlayerName,
		},
		{
			name: "only junk falls back to default",
			raw:  "@#$%",
			want: DefaultPlayerName,
		},
		{
			name: "long name capped",
			raw:  "Abcdefghijklmnopqrstuvwxyz",
			want: "Abcdefghijklmnop",
		},
		{
			name: "digits kept",
			raw:  "Leo 2",
			want: "Leo 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanPlayerName(tt.raw); got != tt.want {
				t.Errorf("CleanPlayerName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPlayerIDFromName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "lowercased",
			raw:  "Mia",
			want: "mia",
		},
		{
			name: "punctuation dropped before slugging",
			raw:  "Alex!!",
			want: "alex",
		},
		{
			name: "spaces become hyphens",
			raw:  "Ana Bo",
			want: "ana-bo",
		},
		{
			name: "empty slugs the default name",
			raw:  "",
			want: "player",
		},
		{
			name: "junk only slugs the default name",
			raw:  "@#$%",
			want: "player",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlayerIDFromName(tt.raw); got != tt.want {
				t.Errorf("PlayerIDFromName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPlayerIDStableAcrossSpellings(t *testing.T) {
	if a, b := PlayerIDFromName("alex"), PlayerIDFromName("ALEX!"); a != b {
		t.Errorf("ids differ for equivalent names: %q vs %q", a, b)
	}
}

func TestAvatarForID(t *testing.T) {
	got := AvatarForID("mia")
	if !IsAvatar(got) {
		t.Fatalf("AvatarForID(%q) = %q, not a known avatar", "mia", got)
	}
	// The hash is deterministic, so the same id always maps to the same
	// glyph.
	if again := AvatarForID("mia"); again != got {
		t.Errorf("AvatarForID not stable: %q then %q", got, again)
	}
	if empty := AvatarForID(""); empty != AvatarOptions[0] {
		t.Errorf("AvatarForID(\"\") = %q, want %q", empty, AvatarOptions[0])
	}
}

func TestIsAvatar(t *testing.T) {
	for _, a := range AvatarOptions {
		if !IsAvatar(a) {
			t.Errorf("IsAvatar(%q) = false, want true", a)
		}
	}
	if IsAvatar("🐙") {
		t.Error("IsAvatar(🐙) = true, want false")
	}
	if IsAvatar("") {
		t.Error("IsAvatar(\"\") = true, want false")
	}
}
