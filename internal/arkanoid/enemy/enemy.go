// Package enemy implements the autonomous enemies that drift through the
// play field once enough bricks have been destroyed.
package enemy

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/logging"
)

// Obstacle is anything an enemy bumps into.
type Obstacle interface {
	Rect() core.Rect
	Visible() bool
}

// Band is a set of edge bands of an enemy's bounding box.
type Band uint8

const (
	BandTop Band = 1 << iota
	BandLeft
	BandBottom
	BandRight

	allBands = BandTop | BandLeft | BandBottom | BandRight
)

// Has reports whether every band in o is set.
func (b Band) Has(o Band) bool { return b&o == o }

// Enemy is one roaming enemy.
type Enemy struct {
	kind string
	pos  mgl64.Vec2 // top-left
	w, h int

	direction   float64
	duration    int
	count       int
	lastContact int
	frozen      bool
	visible     bool

	frame     anim.Frame
	seq       *anim.Sequence
	explosion *anim.Sequence
	explodeAt int

	area      core.Rect
	cfg       config.EnemyConfig
	lib       *anim.Library
	rnd       core.Rand
	paddle    Obstacle
	onPaddle  func(*Enemy)
	obstacles []Obstacle
	peers     *Set
	destroyed func(*Enemy)
	logger    *log.Logger
}

// Option configures an Enemy.
type Option func(*Enemy)

// WithPaddle sets the paddle, tested before any other obstacle, and the
// callback run when the enemy runs into it.
func WithPaddle(p Obstacle, onCollide func(*Enemy)) Option {
	return func(e *Enemy) {
		e.paddle = p
		e.onPaddle = onCollide
	}
}

// WithObstacles sets the walls and bricks the enemy bounces off.
func WithObstacles(obstacles ...Obstacle) Option {
	return func(e *Enemy) { e.obstacles = append([]Obstacle(nil), obstacles...) }
}

// WithPeers sets the registry of other enemies to bounce off.
func WithPeers(s *Set) Option {
	return func(e *Enemy) { e.peers = s }
}

// WithOnDestroyed sets the callback run when the explosion finishes.
func WithOnDestroyed(fn func(*Enemy)) Option {
	return func(e *Enemy) { e.destroyed = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Enemy) { e.logger = l }
}

// New creates an enemy of the given kind inside area. It starts hidden and
// frozen; it appears when Reset is called on release.
func New(kind string, area core.Rect, cfg config.EnemyConfig, lib *anim.Library, rnd core.Rand, opts ...Option) *Enemy {
	e := &Enemy{
		kind:   kind,
		area:   area,
		cfg:    cfg,
		lib:    lib,
		rnd:    rnd,
		seq:    lib.Sequence(anim.Enemy(kind)),
		frozen: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrDiscard(e.logger)
	e.frame = e.seq.Cycle()
	e.w, e.h = e.frame.W, e.frame.H
	e.direction = cfg.StartDirection
	e.duration = cfg.StartDuration
	return e
}

// Kind returns the enemy type.
func (e *Enemy) Kind() string { return e.kind }

// Rect returns the bounding box.
func (e *Enemy) Rect() core.Rect { return e.rectAt(e.pos) }

func (e *Enemy) rectAt(p mgl64.Vec2) core.Rect {
	return core.Rect{X: core.Round(p.X()), Y: core.Round(p.Y()), W: e.w, H: e.h}
}

// Visible reports whether the enemy is shown and collidable.
func (e *Enemy) Visible() bool { return e.visible }

// SetVisible shows or hides the enemy.
func (e *Enemy) SetVisible(v bool) { e.visible = v }

// Frozen reports whether movement is suspended.
func (e *Enemy) Frozen() bool { return e.frozen }

// SetFrozen suspends or resumes movement.
func (e *Enemy) SetFrozen(f bool) { e.frozen = f }

// Conceal hides and freezes the enemy while it waits for a door.
func (e *Enemy) Conceal() {
	e.frozen = true
	e.visible = false
}

// Direction returns the direction of travel in radians.
func (e *Enemy) Direction() float64 { return e.direction }

// SetDirection sets the direction of travel.
func (e *Enemy) SetDirection(d float64) { e.direction = core.WrapAngle(d) }

// Duration returns the ticks left before free-roam recomputes the direction.
func (e *Enemy) Duration() int { return e.duration }

// Frame returns the image to draw.
func (e *Enemy) Frame() anim.Frame { return e.frame }

// Exploding reports whether the explosion is playing.
func (e *Enemy) Exploding() bool { return e.explosion != nil }

// MoveTo places the enemy's top-left corner at p.
func (e *Enemy) MoveTo(p core.Point) {
	e.pos = mgl64.Vec2{float64(p.X), float64(p.Y)}
}

// Reset restores the starting direction and duration, cancels any
// explosion and makes the enemy visible and mobile.
func (e *Enemy) Reset() {
	e.direction = e.cfg.StartDirection
	e.duration = e.cfg.StartDuration
	e.explosion = nil
	e.frozen = false
	e.visible = true
	e.frame = e.seq.Current()
}

// Explode starts the destruction animation. It has no effect on an enemy
// that is already exploding.
func (e *Enemy) Explode() {
	if e.explosion != nil {
		return
	}
	e.explosion = e.lib.Sequence(anim.EnemyExplosion)
	e.explodeAt = e.count
	e.logger.Debug("enemy exploding", "kind", e.kind)
}

// Update advances the enemy one tick.
func (e *Enemy) Update() {
	defer func() { e.count++ }()

	if e.explosion != nil {
		e.updateExplosion()
		return
	}
	if e.count%4 == 0 {
		e.frame = e.seq.Cycle()
	}
	if e.frozen {
		return
	}
	if e.duration > 0 {
		e.duration--
	}

	step := mgl64.Vec2{math.Cos(e.direction), math.Sin(e.direction)}.Mul(e.cfg.Speed)
	next := e.pos.Add(step)
	candidate := e.rectAt(next)

	if !e.area.ContainsRect(candidate) {
		e.pos = e.leaveArea(next, candidate)
		return
	}
	e.pos = next

	if e.paddle != nil && e.paddle.Visible() && candidate.Intersects(e.paddle.Rect()) {
		if e.onPaddle != nil {
			e.onPaddle(e)
		}
		return
	}

	if hit := e.collisions(candidate); len(hit) > 0 {
		e.lastContact = e.count
		e.direction = Decide(e.bands(candidate, hit), e.direction, e.count, e.cfg.NudgeInterval)
		return
	}

	if e.count > e.lastContact+e.cfg.ContactGrace && e.duration <= 0 {
		e.direction = e.freeRoam(candidate)
		e.duration = e.cfg.MinDuration + e.rnd.Intn(e.cfg.MaxDuration-e.cfg.MinDuration)
	}
}

func (e *Enemy) updateExplosion() {
	if (e.count-e.explodeAt)%2 != 0 {
		return
	}
	if f, ok := e.explosion.Next(); ok {
		e.frame = f
		return
	}
	e.explosion = nil
	e.Conceal()
	if e.destroyed != nil {
		e.destroyed(e)
	}
}

// collisions returns the visible obstacles and peers overlapping r.
func (e *Enemy) collisions(r core.Rect) []core.Rect {
	var hit []core.Rect
	for _, o := range e.obstacles {
		if o != nil && o.Visible() && r.Intersects(o.Rect()) {
			hit = append(hit, o.Rect())
		}
	}
	if e.peers != nil {
		for _, p := range e.peers.All() {
			if p != e && p.Visible() && r.Intersects(p.Rect()) {
				hit = append(hit, p.Rect())
			}
		}
	}
	return hit
}

// bands classifies which edge bands of r the struck rects touch. The bands
// exclude the corners.
func (e *Enemy) bands(r core.Rect, hit []core.Rect) Band {
	n := e.cfg.EdgeBand
	top := core.NewRect(r.X+n, r.Y, r.W-2*n, n)
	left := core.NewRect(r.X, r.Y+n, n, r.H-2*n)
	bottom := core.NewRect(r.X+n, r.Bottom()-n, r.W-2*n, n)
	right := core.NewRect(r.Right()-n, r.Y+n, n, r.H-2*n)

	var b Band
	for _, h := range hit {
		if h.Intersects(top) {
			b |= BandTop
		}
		if h.Intersects(left) {
			b |= BandLeft
		}
		if h.Intersects(bottom) {
			b |= BandBottom
		}
		if h.Intersects(right) {
			b |= BandRight
		}
	}
	return b
}

// Decide picks the direction after a collision touching bands. The result
// depends only on its arguments; tick and nudge drive the periodic push off
// a wall an enemy would otherwise slide along forever.
func Decide(b Band, current float64, tick, nudge int) float64 {
	switch {
	case b.Has(allBands):
		return core.WrapAngle(current + math.Pi)
	case b.Has(BandLeft | BandRight | BandBottom):
		return 3 * math.Pi / 2
	case b.Has(BandLeft | BandRight | BandTop):
		return math.Pi / 2
	case b.Has(BandLeft | BandBottom):
		return 0
	case b.Has(BandRight | BandBottom):
		return math.Pi
	case b.Has(BandBottom):
		if current == 0 || current == math.Pi {
			return current
		}
		return math.Pi
	}

	if nudge > 0 && tick%nudge == 0 {
		switch {
		case b.Has(BandRight):
			return math.Pi
		case b.Has(BandLeft):
			return 0
		}
	}
	if b.Has(BandRight) {
		return 3 * math.Pi / 4
	}
	return math.Pi / 4
}

// freeRoam aims at the paddle with a random perturbation.
func (e *Enemy) freeRoam(r core.Rect) float64 {
	if e.paddle == nil {
		return e.direction
	}
	px, py := e.paddle.Rect().Center()
	ex, ey := r.Center()
	d := math.Atan2(float64(py-ey), float64(px-ex))
	d += e.rnd.Uniform(-e.cfg.RandomRange, e.cfg.RandomRange)
	return core.WrapAngle(d)
}

// leaveArea handles a candidate position outside the play area. Leaving
// through the floor bounces the enemy back up; any other side only clamps.
func (e *Enemy) leaveArea(next mgl64.Vec2, r core.Rect) mgl64.Vec2 {
	x := core.ClampF(next.X(), float64(e.area.X), float64(e.area.Right()-e.w))
	y := core.ClampF(next.Y(), float64(e.area.Y), float64(e.area.Bottom()-e.h))

	if r.Bottom() > e.area.Bottom() {
		d := core.WrapAngle(core.TwoPi - e.direction)
		switch {
		case d < 0.1 || core.TwoPi-d < 0.1:
			d -= e.rnd.Uniform(math.Pi/4, math.Pi/2)
		case math.Abs(d-math.Pi) < 0.1:
			d += e.rnd.Uniform(math.Pi/4, math.Pi/2)
		}
		e.direction = core.WrapAngle(d)
	}
	return mgl64.Vec2{x, y}
}
