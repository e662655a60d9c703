package models

import "testing"

func TestAttemptBetter(t *testing.T) {
	tests := []struct {
		name string
		a    Attempt
		b    *Attempt
		want bool
	}{
		{
			name: "anything beats no record",
			a:    Attempt{Correct: 0, TimeMs: 99999},
			b:    nil,
			want: true,
		},
		{
			name: "more correct wins",
			a:    Attempt{Correct: 4, TimeMs: 20000},
			b:    &Attempt{Correct: 3, TimeMs: 5000},
			want: true,
		},
		{
			name: "fewer correct loses even when faster",
			a:    Attempt{Correct: 2, TimeMs: 1000},
			b:    &Attempt{Correct: 3, TimeMs: 5000},
			want: false,
		},
		{
			name: "tie broken by lower time",
			a:    Attempt{Correct: 3, TimeMs: 4000},
			b:    &Attempt{Correct: 3, TimeMs: 5000},
			want: true,
		},
		{
			name: "equal record does not replace",
			a:    Attempt{Correct: 3, TimeMs: 5000},
			b:    &Attempt{Correct: 3, TimeMs: 5000},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Better(tt.b); got != tt.want {
				t.Errorf("Better() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStarsFromMission(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{name: "perfect run", correct: 5, total: 5, want: 3},
		{name: "one short", correct: 4, total: 5, want: 2},
		{name: "just over half", correct: 3, total: 5, want: 1},
		{name: "under half", correct: 2, total: 5, want: 0},
		{name: "zero correct", correct: 0, total: 5, want: 0},
		{name: "over total still three", correct: 6, total: 5, want: 3},
		{name: "zero total", correct: 3, total: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StarsFromMission(tt.correct, tt.total); got != tt.want {
				t.Errorf("StarsFromMission(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{name: "sub-minute", ms: 12300, want: "12.3s"},
		{name: "over a minute", ms: 125000, want: "2m 5.0s"},
		{name: "negative clamps to zero", ms: -5, want: "0.0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.ms); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{name: "sub-minute", ms: 4500, want: "4.5s"},
		{name: "minute with padded seconds", ms: 65000, want: "1:05.0s"},
		{name: "zero", ms: 0, want: "0.0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClock(tt.ms); got != tt.want {
				t.Errorf("FormatClock(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestUserGameAutoCreates(t *testing.T) {
	u := NewUser("Mia", "mia")
	g := u.Game("pizza_party")
	if g == nil {
		t.Fatal("Game() returned nil")
	}
	if g.Plays != 0 || g.Stars != 0 {
		t.Errorf("fresh game progress not empty: %+v", g)
	}
	if again := u.Game("pizza_party"); again != g {
		t.Error("Game() did not return the same entry on second call")
	}
}
