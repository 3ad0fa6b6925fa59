package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Neutr0n/pokemon-game/engine/state"
)

// renderStatusBar produces a full-width inverted status line showing
// where the player is, the lead Pokemon's HP, money, badges, and turn.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	locName := s.Player.Location
	if loc, ok := m.defs.Locations[s.Player.Location]; ok && loc.Name != "" {
		locName = loc.Name
	}

	left := " " + locName
	if m.engine.InBattle() {
		left = " [BATTLE] " + locName
	}
	if len(s.Player.Team) > 0 {
		lead := s.Player.Team[0]
		left += fmt.Sprintf(" | %s %d/%d HP",
			state.DisplayName(m.defs, lead), lead.HP, state.MaxHP(m.defs, lead))
	}

	right := fmt.Sprintf("$%d | T:%d ", s.Player.Money, s.TurnCount)
	if n := len(s.Player.Badges); n > 0 {
		right = fmt.Sprintf("Badges: %d | %s", n, right)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
