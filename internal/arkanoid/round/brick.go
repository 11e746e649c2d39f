package round

import (
	"fmt"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Colour identifies a brick type by its layout letter.
type Colour byte

const (
	Silver Colour = 'S'
	Red    Colour = 'R'
	Yellow Colour = 'Y'
	Blue   Colour = 'B'
	Green  Colour = 'G'
	Pink   Colour = 'P'
	Gold   Colour = 'O'

	empty = '.'
)

// Exempt reports whether bricks of this colour are left out of the
// completion count. Gold bricks cannot be destroyed.
func (c Colour) Exempt() bool { return c == Gold }

// Color returns the draw colour.
func (c Colour) Color() core.Color {
	switch c {
	case Silver:
		return core.ColorSilver
	case Red:
		return core.ColorRed
	case Yellow:
		return core.ColorYellow
	case Blue:
		return core.ColorBlue
	case Green:
		return core.ColorGreen
	case Pink:
		return core.ColorPink
	case Gold:
		return core.ColorGold
	}
	return core.ColorDefault
}

// value is the score for destroying a brick of colour c in round n.
func (c Colour) value(n int) int {
	switch c {
	case Silver:
		return 50 * n
	case Red:
		return 90
	case Yellow:
		return 120
	case Blue:
		return 100
	case Green:
		return 80
	case Pink:
		return 110
	}
	return 0
}

func parseColour(b byte) (Colour, error) {
	switch c := Colour(b); c {
	case Silver, Red, Yellow, Blue, Green, Pink, Gold:
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadLayout, b)
}

const flashTicks = 8

// Brick is one brick of a round.
type Brick struct {
	rect      core.Rect
	colour    Colour
	row, col  int
	value     int
	threshold int // 0 means indestructible
	hits      int
	powerup   string
	flash     int
}

// NewBrick creates a brick. A zero threshold makes it indestructible.
func NewBrick(r core.Rect, c Colour, value, threshold int) *Brick {
	return &Brick{rect: r, colour: c, value: value, threshold: threshold}
}

func (b *Brick) Rect() core.Rect { return b.rect }

// Visible reports whether the brick is still standing.
func (b *Brick) Visible() bool {
	return b.threshold == 0 || b.hits < b.threshold
}

func (b *Brick) Colour() Colour { return b.colour }

// Cell returns the brick's layout row and column.
func (b *Brick) Cell() (row, col int) { return b.row, b.col }

func (b *Brick) Value() int { return b.value }

// SetValue changes the score awarded on destruction.
func (b *Brick) SetValue(v int) { b.value = v }

func (b *Brick) Hits() int { return b.hits }

func (b *Brick) Threshold() int { return b.threshold }

// Powerup returns the power-up kind the brick carries, or "".
func (b *Brick) Powerup() string { return b.powerup }

// SetPowerup attaches a power-up kind; "" removes it.
func (b *Brick) SetPowerup(kind string) { b.powerup = kind }

// Hit records a strike and reports whether it destroyed the brick.
func (b *Brick) Hit() bool {
	if !b.Visible() {
		return false
	}
	b.hits++
	return !b.Visible()
}

// Animate starts the short strike flash.
func (b *Brick) Animate() { b.flash = flashTicks }

// Flashing reports whether the strike flash is playing.
func (b *Brick) Flashing() bool { return b.flash > 0 }

// Update advances the flash.
func (b *Brick) Update() {
	if b.flash > 0 {
		b.flash--
	}
}
