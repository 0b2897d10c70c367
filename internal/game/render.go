package game

import "github.com/vovakirdan/monster-math/internal/core"

// Visual characters for rendering
const (
	BoundaryChar   = '┄'
	ProjectileChar = '•'
	ImpactChar     = '✸'
	FadingChar     = '·'
	LauncherChar   = '▲'
)

// Render draws the playfield into dst, scaling playfield units to cells.
func (s *Session) Render(dst *core.Screen) {
	RenderSnapshot(s.Snapshot(), dst)
}

// RenderSnapshot draws snap into dst. Overlays and the HUD are left to the
// caller.
func RenderSnapshot(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	if snap.Width <= 0 || snap.Height <= 0 {
		return
	}
	w, h := dst.Width(), dst.Height()
	cell := func(v core.Vec) (int, int) {
		return int(v.X * float64(w) / snap.Width), int(v.Y * float64(h) / snap.Height)
	}

	_, boundary := cell(core.Vec{Y: snap.LossBoundary})
	dst.DrawHLine(0, boundary, w, BoundaryChar, core.ColorRed)
	dst.SetColored(w/2, h-1, LauncherChar, core.ColorBrightCyan)

	span := max(int(snap.EntityWidth*float64(w)/snap.Width), 1)
	for _, e := range snap.Entities {
		col, row := cell(core.Vec{X: e.X, Y: e.Y})
		drawCentered(dst, col, span, row, e.Glyph, e.Color)
		drawCentered(dst, col, span, row+1, e.Text, core.ColorWhite)
	}

	for _, p := range snap.Projectiles {
		col, row := cell(p)
		dst.SetColored(col, row, ProjectileChar, core.ColorBrightYellow)
	}

	for _, im := range snap.Impacts {
		col, row := cell(im.Pos)
		r := ImpactChar
		if im.Progress >= 0.5 {
			r = FadingChar
		}
		dst.SetColored(col, row, r, core.ColorOrange)
	}
}

// drawCentered writes text centered within [col, col+span).
func drawCentered(dst *core.Screen, col, span, row int, text string, c core.Color) {
	n := len([]rune(text))
	x := col + (span-n)/2
	if n > span {
		x = col
	}
	dst.DrawTextColored(x, row, text, c)
}
