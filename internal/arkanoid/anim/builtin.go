package anim

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Sequence names used by the simulation.
const (
	Paddle               = "paddle"
	PaddlePulsate        = "paddle_pulsate"
	PaddleWide           = "paddle_wide"
	PaddleWidePulsate    = "paddle_wide_pulsate"
	PaddleNarrow         = "paddle_narrow"
	PaddleNarrowPulsate  = "paddle_narrow_pulsate"
	PaddleLaser          = "paddle_laser"
	PaddleLaserPulsate   = "paddle_laser_pulsate"
	PaddleMaterialize    = "paddle_materialize"
	PaddleExplode        = "paddle_explode"
	PaddlePowerUpCharged = "paddle_powerup"
	Ball                 = "ball"
	LaserBullet          = "laser_bullet"
	EnemyExplosion       = "enemy_explosion"
	SpecialItem          = "special_item"
	DoorOpen             = "door_open"
)

// Enemy returns the sequence name for an enemy type.
func Enemy(kind string) string {
	return "enemy_" + kind
}

// PowerUp returns the sequence name for a power-up kind.
func PowerUp(kind string) string {
	return "powerup_" + kind
}

// Builtin generates every sequence the game uses from the configured sizes.
func Builtin(cfg config.ArkanoidConfig, logger *log.Logger) *Library {
	l := NewLibrary(logger)
	p := cfg.Paddle
	pc := core.ColorSilver

	l.Add(Paddle, Frame{W: p.Width, H: p.Height, Glyph: '▀', Color: pc})
	l.Add(PaddlePulsate, pulse(p.Width, p.Height, '▀', pc, core.ColorBrightWhite, 6)...)

	l.Add(PaddleWide, resize(p.Width, p.WideWidth, p.Height, '▀', pc, 6)...)
	l.Add(PaddleWidePulsate, pulse(p.WideWidth, p.Height, '▀', pc, core.ColorBrightWhite, 6)...)
	l.Add(PaddleNarrow, resize(p.Width, p.NarrowWidth, p.Height, '▀', pc, 4)...)
	l.Add(PaddleNarrowPulsate, pulse(p.NarrowWidth, p.Height, '▀', pc, core.ColorBrightWhite, 6)...)

	l.Add(PaddleLaser, pulse(p.Width, p.Height, '▀', pc, core.ColorBrightRed, 6)...)
	l.Add(PaddleLaserPulsate, pulse(p.Width, p.Height, '▀', core.ColorRed, core.ColorBrightRed, 6)...)

	l.Add(PaddleMaterialize, resize(p.Width/8, p.Width, p.Height, '▀', core.ColorCyan, 8)...)
	l.Add(PaddleExplode, pulse(p.Width, p.Height, '▒', core.ColorOrange, core.ColorBrightYellow, 6)...)
	l.Add(PaddlePowerUpCharged, pulse(p.Width, p.Height, '▀', core.ColorBrightMagenta, core.ColorBrightCyan, 4)...)

	b := cfg.Ball.Size
	l.Add(Ball, Frame{W: b, H: b, Glyph: '●', Color: core.ColorBrightWhite})
	l.Add(LaserBullet, Frame{W: 4, H: 12, Glyph: '|', Color: core.ColorBrightRed})

	e := cfg.Enemy.Size
	l.Add(Enemy("cone"), pulse(e, e, '▲', core.ColorBrightCyan, core.ColorCyan, 8)...)
	l.Add(Enemy("pyramid"), pulse(e, e, '◆', core.ColorBrightGreen, core.ColorGreen, 8)...)
	l.Add(Enemy("molecule"), pulse(e, e, '✱', core.ColorBrightMagenta, core.ColorMagenta, 8)...)
	l.Add(EnemyExplosion,
		Frame{W: e, H: e, Glyph: '*', Color: core.ColorBrightYellow},
		Frame{W: e, H: e, Glyph: '✶', Color: core.ColorOrange},
		Frame{W: e, H: e, Glyph: '✺', Color: core.ColorRed},
		Frame{W: e, H: e, Glyph: '·', Color: core.ColorGray},
	)

	pw := cfg.Powerups
	for kind, c := range map[string]core.Color{
		"life":      core.ColorGray,
		"expand":    core.ColorBlue,
		"reduce":    core.ColorGreen,
		"slow":      core.ColorOrange,
		"speed":     core.ColorCyan,
		"duplicate": core.ColorBrightCyan,
		"laser":     core.ColorRed,
	} {
		l.Add(PowerUp(kind), pulse(pw.Width, pw.Height, '▬', c, core.ColorBrightWhite, 8)...)
	}

	s := cfg.Special
	l.Add(SpecialItem, pulse(s.Width, s.Height, '★', core.ColorBrightYellow, core.ColorGold, 6)...)
	l.Add(DoorOpen, resize(cfg.Edges.DoorWidth, 0, cfg.Edges.TopHeight, ' ', core.ColorDefault, 4)...)
	return l
}

// pulse alternates between two colours at a fixed size.
func pulse(w, h int, g rune, a, b core.Color, n int) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		c := a
		if i%2 == 1 {
			c = b
		}
		frames[i] = Frame{W: w, H: h, Glyph: g, Color: c}
	}
	return frames
}

// resize interpolates width from one size to another over n frames, ending
// exactly on the target width.
func resize(from, to, h int, g rune, c core.Color, n int) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		w := from + (to-from)*(i+1)/n
		frames[i] = Frame{W: w, H: h, Glyph: g, Color: c}
	}
	return frames
}
