package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Levelup theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconQuest    = "🗺️"
	IconSparkle  = "✨"
	IconDone     = "✅"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconFlame    = "🔥"
	IconFreeze   = "🧊"
	IconSkull    = "💀"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconShield   = "🛡️"
	IconScroll   = "📜"
	IconCalendar = "📅"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// MandatoryTag renders the quest kind marker.
func MandatoryTag(mandatory bool) string {
	if mandatory {
		return Warn.Render("[mandatory]")
	}
	return Muted.Render("[bonus]")
}

// StreakText colors a streak count: gray at zero, gold once the multiplier
// saturates.
func StreakText(streak int) string {
	s := fmt.Sprintf("%d day(s)", streak)
	switch {
	case streak >= 10:
		return Gold.Render(s)
	case streak > 0:
		return Good.Render(s)
	default:
		return Muted.Render(s)
	}
}
