package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/game"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	hudStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// render draws the HUD, the playfield with its overlay, the answer field and
// the help bar.
func (m Model) render() string {
	snap := m.session.Snapshot()

	game.RenderSnapshot(snap, m.screen)
	if lines, c := m.overlay(snap); len(lines) > 0 {
		drawOverlay(m.screen, lines, c)
	}

	var b strings.Builder
	b.WriteString(m.hud(snap))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if snap.State == game.StateRunning || snap.State == game.StatePaused {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(stateHelp{m.keys.forState(snap.State)})))
	return b.String()
}

// hud renders the status line.
func (m Model) hud(snap game.Snapshot) string {
	parts := []string{"MONSTER MATH"}
	if snap.State.Active() || snap.State == game.StateEnded {
		parts = append(parts,
			fmt.Sprintf("Tier %d", snap.Tier),
			fmt.Sprintf("Score %d", snap.Score),
		)
	}
	parts = append(parts, fmt.Sprintf("Best %d", snap.HighScore))
	if snap.State.Active() || snap.State == game.StateEnded {
		parts = append(parts, fmt.Sprintf("Time %.1fs", snap.Elapsed.Seconds()))
		if snap.Remaining > 0 {
			parts = append(parts, fmt.Sprintf("Left %.0fs", snap.Remaining.Seconds()))
		}
	}

	line := hudStyle.Render(strings.Join(parts, "  │  "))
	if m.engine != nil && m.engine.Muted() {
		line += "  " + mutedStyle.Render("muted")
	}
	return line
}

// overlay returns the text shown over the playfield in the current state.
func (m Model) overlay(snap game.Snapshot) ([]string, core.Color) {
	switch snap.State {
	case game.StateIdle:
		lines := []string{
			"MONSTER MATH",
			"",
			"Type the answer to blast a monster",
			"before it reaches the line.",
			"",
		}
		names := map[int]string{1: "Easy", 2: "Medium", 3: "Hard"}
		for _, t := range m.cfg.Tiers {
			lines = append(lines, fmt.Sprintf("%d  %-6s  answers %d-%d", t.Tier, names[t.Tier], t.AnswerMin, t.AnswerMax))
		}
		lines = append(lines, "", fmt.Sprintf("Best score: %d", snap.HighScore))
		return lines, core.ColorBrightCyan

	case game.StateCountdown:
		return []string{"Get ready", "", fmt.Sprintf("%d", snap.Countdown)}, core.ColorBrightYellow

	case game.StatePaused:
		return []string{"PAUSED", "", "esc to resume", "ctrl+x to quit the level"}, core.ColorYellow

	case game.StateEnded:
		lines := []string{snap.Outcome.String(), "", fmt.Sprintf("Score %d", snap.Score)}
		if snap.Score > 0 && snap.Score >= snap.HighScore {
			lines = append(lines, "NEW HIGH SCORE!")
		} else {
			lines = append(lines, fmt.Sprintf("Best %d", snap.HighScore))
		}
		lines = append(lines, "", "enter for menu")
		return lines, core.ColorBrightRed
	}
	return nil, core.ColorDefault
}

// drawOverlay draws lines in a centered box.
func drawOverlay(dst *core.Screen, lines []string, c core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := min(width+4, dst.Width())
	boxH := min(len(lines)+2, dst.Height())
	x0 := (dst.Width() - boxW) / 2
	y0 := (dst.Height() - boxH) / 2

	dst.FillRect(x0, y0, boxW, boxH, ' ')
	dst.DrawBox(x0, y0, boxW, boxH, c)
	for i, l := range lines {
		dst.DrawTextCentered(y0+1+i, l, c)
	}
}
