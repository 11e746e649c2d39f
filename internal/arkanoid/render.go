package arkanoid

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/game"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Minimum terminal size the field can be drawn in.
const (
	minScreenW = 30
	minScreenH = 20
)

// Glyphs that are not part of an animation.
const (
	brickGlyph      = '█'
	brickFlashGlyph = '▓'
	flashGlyph      = '░'
	doorGlyph       = '▒'
)

var powerUpLetters = map[game.Kind]rune{
	game.ExtraLife: 'P',
	game.Expand:    'E',
	game.Reduce:    'R',
	game.Slow:      'S',
	game.Speed:     'F',
	game.Duplicate: 'D',
	game.Laser:     'L',
}

// viewport maps play-field pixels to terminal cells below the HUD row.
type viewport struct {
	field      core.Rect
	cols, rows int
}

func (v viewport) cell(r core.Rect) core.Rect {
	x0 := (r.X - v.field.X) * v.cols / v.field.W
	y0 := (r.Y - v.field.Y) * v.rows / v.field.H
	x1 := ceilDiv((r.Right()-v.field.X)*v.cols, v.field.W)
	y1 := ceilDiv((r.Bottom()-v.field.Y)*v.rows, v.field.H)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0+1, x1-x0, y1-y0)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return a / b
	}
	return (a + b - 1) / b
}

// Render draws the game into dst. It reads the simulation and never
// changes it.
func (a *App) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCenteredColored(dst.Height()/2, "Terminal too small", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", minScreenW, minScreenH))
		return
	}
	if a.game == nil {
		return
	}

	g := a.game
	r := g.Round()
	v := viewport{field: r.Field(), cols: dst.Width(), rows: dst.Height() - 1}

	a.renderHUD(dst)

	if g.Flash() > 0 {
		dst.DrawRectColored(core.NewRect(0, 1, dst.Width(), dst.Height()-1), flashGlyph, core.ColorBrightWhite)
	}

	edges := r.Edges()
	dst.DrawRectColored(v.cell(edges.Left.Rect()), '│', r.Background)
	dst.DrawRectColored(v.cell(edges.Right.Rect()), '│', r.Background)
	dst.DrawRectColored(v.cell(edges.Top.Rect()), '─', r.Background)
	for _, d := range edges.Top.Doors() {
		switch {
		case d.Open():
			dst.DrawRect(v.cell(d.Rect()), ' ')
		case d.Busy():
			dst.DrawRectColored(v.cell(d.Rect()), doorGlyph, core.ColorGray)
		}
	}

	for _, b := range r.Bricks() {
		if !b.Visible() {
			continue
		}
		glyph := brickGlyph
		if b.Flashing() {
			glyph = brickFlashGlyph
		}
		dst.DrawRectColored(v.cell(b.Rect()), glyph, b.Colour().Color())
	}

	for _, p := range g.PowerUps() {
		if !p.Visible() {
			continue
		}
		cr := v.cell(p.Rect())
		f := p.Frame()
		drawFrame(dst, cr, f)
		dst.SetColored(cr.X+cr.W/2, cr.Y, powerUpLetters[p.Kind()], f.Color)
	}

	if it := g.SpecialItem(); it != nil {
		drawFrame(dst, v.cell(it.Rect()), it.Frame())
	}

	for _, e := range g.Enemies() {
		if e.Visible() {
			drawFrame(dst, v.cell(e.Rect()), e.Frame())
		}
	}

	pd := g.Paddle()
	if pd.Visible() {
		drawFrame(dst, v.cell(pd.Rect()), pd.Frame())
	}
	for _, bl := range pd.Bullets() {
		if bl.Visible() {
			dst.DrawRectColored(v.cell(bl.Rect()), '|', core.ColorBrightRed)
		}
	}

	for _, b := range g.Balls() {
		if b.Visible() {
			cr := v.cell(b.Rect())
			dst.SetColored(cr.X, cr.Y, '●', core.ColorBrightWhite)
		}
	}

	a.renderOverlay(dst)
}

func drawFrame(dst *core.Screen, r core.Rect, f anim.Frame) {
	dst.DrawRectColored(r, f.Glyph, f.Color)
}

func (a *App) renderHUD(dst *core.Screen) {
	g := a.game
	st := a.State()
	left := fmt.Sprintf(" SCORE %d  HI %d", st.Score, st.HighScore)
	right := fmt.Sprintf("ROUND %d  LIVES %d ", st.Round, st.Lives)
	if t := a.TimeLeft(); t >= 0 {
		right = fmt.Sprintf("TIME %d  %s", t, right)
	}
	dst.DrawTextColored(0, 0, left, core.ColorBrightYellow)
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorBrightWhite)
	if g.SpecialReady() {
		dst.DrawTextCenteredColored(0, "[S] SPECIAL", core.ColorBrightMagenta)
	}
}

func (a *App) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	switch {
	case !a.started:
		dst.DrawTextCenteredColored(mid-2, "A R K A N O I D", core.ColorBrightCyan)
		dst.DrawTextCentered(mid, a.Title())
		dst.DrawTextCenteredColored(mid+2, "press ENTER to start", core.ColorGray)
		dst.DrawTextCenteredColored(mid+3, "←/→ move  space fire  s special  p pause", core.ColorGray)
	case a.game.Over():
		dst.DrawTextCenteredColored(mid-1, "GAME OVER", core.ColorBrightRed)
		dst.DrawTextCentered(mid, fmt.Sprintf("score %d", a.game.Score()))
		dst.DrawTextCenteredColored(mid+2, "r restart  q quit", core.ColorGray)
	case a.paused:
		dst.DrawTextCenteredColored(mid, "PAUSED", core.ColorBrightYellow)
	default:
		for i, line := range a.game.Caption() {
			dst.DrawTextCenteredColored(mid+i, strings.ToUpper(line), core.ColorBrightWhite)
		}
	}
}
