// Package ui holds the arcade's CLI theme: a few reusable lipgloss
// styles, icons, and the star renderer.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NicolaLanata/math-arcade/internal/models"
)

const (
	IconArcade = "🕹️"
	IconStar   = "⭐"
	IconTrophy = "🏆"
	IconTimer  = "⏱️"
	IconLock   = "🔒"
	IconCheck  = "✓"
	IconCross  = "✗"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Foreground(cGood)
	Bad   = lipgloss.NewStyle().Foreground(cBad)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Gold  = lipgloss.NewStyle().Foreground(cGold)
)

// Stars renders a 0-3 star value as filled and hollow glyphs.
func Stars(n int) string {
	n = models.ClampStars(n)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}
