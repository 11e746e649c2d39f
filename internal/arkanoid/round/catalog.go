package round

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/logging"
)

// Catalog builds the configured rounds in order.
type Catalog struct {
	cfg    config.ArkanoidConfig
	rnd    core.Rand
	logger *log.Logger
}

// NewCatalog creates a catalog over cfg.Rounds. rnd drives power-up
// placement and door timing.
func NewCatalog(cfg config.ArkanoidConfig, rnd core.Rand, logger *log.Logger) *Catalog {
	return &Catalog{cfg: cfg, rnd: rnd, logger: logging.OrDiscard(logger)}
}

// Len returns the number of rounds.
func (c *Catalog) Len() int { return len(c.cfg.Rounds) }

// Constructor returns a constructor for round n (1-based), or nil when n
// is out of range.
func (c *Catalog) Constructor(n int) Constructor {
	if n < 1 || n > c.Len() {
		return nil
	}
	return func() (*Round, error) { return c.Build(n) }
}

// Build constructs round n (1-based).
func (c *Catalog) Build(n int) (*Round, error) {
	if n < 1 || n > c.Len() {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrUnknownRound, n, c.Len())
	}
	rc := c.cfg.Rounds[n-1]
	d := c.cfg.Display
	field := core.NewRect(0, d.TopOffset, d.Width, d.Height-d.TopOffset)

	r := &Round{
		Number:              n,
		Name:                rc.Name,
		Background:          core.ParseColor(rc.Background),
		EnemyType:           rc.EnemyType,
		NumEnemies:          rc.NumEnemies,
		BallBaseSpeedAdjust: rc.BallBaseSpeedAdjust,
		NormalisationAdjust: rc.NormalisationAdjust,
		PaddleSpeedAdjust:   rc.PaddleSpeedAdjust,
		field:               field,
		edges:               newEdges(field, c.cfg.Edges, c.rnd, c.logger),
		releaseFrac:         rc.EnemyRelease,
		next:                c.Constructor(n + 1),
	}
	if r.Name == "" {
		r.Name = fmt.Sprintf("Round %d", n)
	}

	bricks, err := c.layout(r, rc.Layout)
	if err != nil {
		return nil, fmt.Errorf("round %d: %w", n, err)
	}
	r.bricks = bricks
	placed := c.placePowerups(bricks, rc)

	c.logger.Debug("round built", "round", n, "bricks", len(bricks), "required", r.Required(), "powerups", placed)
	return r, nil
}

// layout turns the ASCII grid into bricks placed inside the walls.
func (c *Catalog) layout(r *Round, rows []string) ([]*Brick, error) {
	bc := c.cfg.Bricks
	left := r.edges.Left.Rect().Right()
	top := r.edges.Top.Rect().Bottom()

	var bricks []*Brick
	for row, line := range rows {
		for col := 0; col < len(line); col++ {
			if line[col] == empty || line[col] == ' ' {
				continue
			}
			colour, err := parseColour(line[col])
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			rect := core.NewRect(left+col*bc.Width, top+(bc.TopRow+row)*bc.Height, bc.Width, bc.Height)
			if rect.Right() > r.edges.Right.Rect().X {
				return nil, fmt.Errorf("%w: row %d is wider than the field", ErrBadLayout, row)
			}
			threshold := 1
			if colour.Exempt() {
				threshold = 0
			}
			b := NewBrick(rect, colour, colour.value(r.Number), threshold)
			b.row, b.col = row, col
			bricks = append(bricks, b)
		}
	}
	if len(bricks) == 0 {
		return nil, fmt.Errorf("%w: no bricks", ErrBadLayout)
	}
	return bricks, nil
}

// placePowerups shuffles the round's capsules and hides them in randomly
// sampled destructible bricks. The last PowerupTail capsules always go into
// the bottom row.
func (c *Catalog) placePowerups(bricks []*Brick, rc config.RoundConfig) int {
	var kinds []string
	for _, pc := range rc.Powerups {
		for i := 0; i < pc.Count; i++ {
			kinds = append(kinds, pc.Kind)
		}
	}
	if len(kinds) == 0 {
		return 0
	}
	c.rnd.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })

	lastRow := 0
	for _, b := range bricks {
		if !b.colour.Exempt() && b.row > lastRow {
			lastRow = b.row
		}
	}
	var head, tail []*Brick
	for _, b := range bricks {
		switch {
		case b.colour.Exempt():
		case b.row == lastRow:
			tail = append(tail, b)
		default:
			head = append(head, b)
		}
	}

	nTail := min(rc.PowerupTail, len(kinds), len(tail))
	var targets []*Brick
	for _, i := range c.rnd.Sample(len(head), len(kinds)-nTail) {
		targets = append(targets, head[i])
	}
	for _, i := range c.rnd.Sample(len(tail), nTail) {
		targets = append(targets, tail[i])
	}
	for i, b := range targets {
		b.SetPowerup(kinds[i])
	}
	return len(targets)
}
