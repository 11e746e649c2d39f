// Package ball implements ball kinematics and collision response.
//
// A Ball moves in a straight line at a scalar speed along an angle (radians,
// screen coordinates: 0 points right, π/2 points down). Each tick it tests
// its next position against an ordered registry of obstacles and resolves at
// most one collision. Speed drifts back towards the base speed on ticks
// without a collision.
package ball

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Obstacle is anything a ball can collide with.
type Obstacle interface {
	Rect() core.Rect
	Visible() bool
}

// BounceStrategy maps the struck obstacle's rect and the ball's candidate
// rect to an outgoing angle.
type BounceStrategy func(obstacle, ball core.Rect) float64

// CollideFunc is invoked after a collision has been resolved.
type CollideFunc func(obstacle Obstacle, b *Ball)

// Collidable is one registry entry.
type Collidable struct {
	Obstacle    Obstacle
	SpeedAdjust float64
	Bounce      BounceStrategy
	OnCollide   CollideFunc
}

// Option configures a registry entry.
type Option func(*Collidable)

// WithSpeedAdjust adds delta to the ball's speed on collision.
func WithSpeedAdjust(delta float64) Option {
	return func(c *Collidable) { c.SpeedAdjust = delta }
}

// WithBounce overrides the default reflection.
func WithBounce(s BounceStrategy) Option {
	return func(c *Collidable) { c.Bounce = s }
}

// WithOnCollide sets the collision callback.
func WithOnCollide(fn CollideFunc) Option {
	return func(c *Collidable) { c.OnCollide = fn }
}

// Tuning holds the speed parameters a ball relaxes under.
type Tuning struct {
	BaseSpeed         float64
	TopSpeed          float64
	NormalisationRate float64
}

// Positioned is an anchor target.
type Positioned interface {
	Rect() core.Rect
}

type anchor struct {
	target Positioned // nil for a fixed point
	point  core.Point
	offset core.Point
}

// Ball is a moving ball.
type Ball struct {
	pos     mgl64.Vec2 // center
	w, h    int
	angle   float64
	speed   float64
	tuning  Tuning
	initial Tuning
	start   mgl64.Vec2
	startA  float64

	area      core.Rect
	registry  []Collidable
	anchor    *anchor
	offScreen func(*Ball)
	visible   bool
	collided  bool
}

// New creates a ball centred at start inside the play area. It starts at
// base speed, visible and unanchored.
func New(start core.Point, size int, angle float64, t Tuning, area core.Rect, offScreen func(*Ball)) *Ball {
	p := mgl64.Vec2{float64(start.X), float64(start.Y)}
	return &Ball{
		pos:       p,
		w:         size,
		h:         size,
		angle:     core.WrapAngle(angle),
		speed:     t.BaseSpeed,
		tuning:    t,
		initial:   t,
		start:     p,
		startA:    core.WrapAngle(angle),
		area:      area,
		offScreen: offScreen,
		visible:   true,
	}
}

// Rect returns the ball's bounding box.
func (b *Ball) Rect() core.Rect {
	return b.rectAt(b.pos)
}

func (b *Ball) rectAt(p mgl64.Vec2) core.Rect {
	return core.Rect{X: core.Round(p.X()) - b.w/2, Y: core.Round(p.Y()) - b.h/2, W: b.w, H: b.h}
}

// Center returns the exact center position.
func (b *Ball) Center() mgl64.Vec2 { return b.pos }

// Angle returns the direction of travel in [0, 2π).
func (b *Ball) Angle() float64 { return b.angle }

// Speed returns the current scalar speed.
func (b *Ball) Speed() float64 { return b.speed }

// Tuning returns the current speed parameters.
func (b *Ball) Tuning() Tuning { return b.tuning }

// InitialTuning returns the parameters the ball was created with.
func (b *Ball) InitialTuning() Tuning { return b.initial }

// Visible reports whether the ball is drawn.
func (b *Ball) Visible() bool { return b.visible }

// SetVisible shows or hides the ball.
func (b *Ball) SetVisible(v bool) { b.visible = v }

// Anchored reports whether the ball is pinned.
func (b *Ball) Anchored() bool { return b.anchor != nil }

// Collided reports whether the last update resolved a collision.
func (b *Ball) Collided() bool { return b.collided }

// SetSpeed sets the speed, clamped to [0, top speed].
func (b *Ball) SetSpeed(s float64) {
	b.speed = core.ClampF(s, 0, b.tuning.TopSpeed)
}

// SetBaseSpeed changes the speed the ball relaxes towards.
func (b *Ball) SetBaseSpeed(s float64) {
	b.tuning.BaseSpeed = s
}

// SetTuning replaces the speed parameters and re-clamps the current speed.
func (b *Ball) SetTuning(t Tuning) {
	b.tuning = t
	b.SetSpeed(b.speed)
}

// SetAngle sets the direction, wrapped into [0, 2π).
func (b *Ball) SetAngle(a float64) {
	b.angle = core.WrapAngle(a)
}

// SetCenter moves the ball without any collision test.
func (b *Ball) SetCenter(p core.Point) {
	b.pos = mgl64.Vec2{float64(p.X), float64(p.Y)}
}

// Reset puts the ball back at its start position and angle, at base speed,
// unanchored. Tuning and registry are kept.
func (b *Ball) Reset() {
	b.pos = b.start
	b.angle = b.startA
	b.speed = b.tuning.BaseSpeed
	b.anchor = nil
	b.collided = false
}

// Add registers an obstacle. Registering an obstacle that is already present
// replaces its entry in place.
func (b *Ball) Add(o Obstacle, opts ...Option) {
	c := Collidable{Obstacle: o}
	for _, opt := range opts {
		opt(&c)
	}
	for i := range b.registry {
		if b.registry[i].Obstacle == o {
			b.registry[i] = c
			return
		}
	}
	b.registry = append(b.registry, c)
}

// Remove unregisters obstacles. Unknown obstacles are ignored.
func (b *Ball) Remove(obstacles ...Obstacle) {
	kept := b.registry[:0]
	for _, c := range b.registry {
		if !containsObstacle(obstacles, c.Obstacle) {
			kept = append(kept, c)
		}
	}
	clear(b.registry[len(kept):])
	b.registry = kept
}

// RemoveAll empties the registry.
func (b *Ball) RemoveAll() {
	b.registry = nil
}

// Registry returns a copy of the registry in registration order.
func (b *Ball) Registry() []Collidable {
	return append([]Collidable(nil), b.registry...)
}

// Registered reports whether o is in the registry.
func (b *Ball) Registered(o Obstacle) bool {
	for _, c := range b.registry {
		if c.Obstacle == o {
			return true
		}
	}
	return false
}

// AnchorAt pins the ball's center to a fixed point.
func (b *Ball) AnchorAt(p core.Point) {
	b.anchor = &anchor{point: p}
	b.followAnchor()
}

// AnchorTo pins the ball's top-left corner to target's top-left plus offset.
// The ball follows the target every tick.
func (b *Ball) AnchorTo(target Positioned, offset core.Point) {
	b.anchor = &anchor{target: target, offset: offset}
	b.followAnchor()
}

// Release frees an anchored ball travelling at angle.
func (b *Ball) Release(angle float64) {
	b.anchor = nil
	b.SetAngle(angle)
}

func (b *Ball) followAnchor() {
	a := b.anchor
	if a.target == nil {
		b.SetCenter(a.point)
		return
	}
	tl := a.target.Rect().TopLeft().Add(a.offset)
	b.pos = mgl64.Vec2{float64(tl.X + b.w/2), float64(tl.Y + b.h/2)}
}

// Clone creates a ball at start travelling at angle, with this ball's speed,
// tuning, size, play area and off-screen callback, and an empty registry.
func (b *Ball) Clone(start core.Point, angle float64) *Ball {
	c := New(start, b.w, angle, b.tuning, b.area, b.offScreen)
	c.initial = b.initial
	c.speed = b.speed
	c.visible = b.visible
	return c
}

// Update advances the ball one tick.
func (b *Ball) Update() {
	b.collided = false
	if b.anchor != nil {
		b.followAnchor()
		return
	}

	step := mgl64.Vec2{math.Cos(b.angle), math.Sin(b.angle)}.Mul(b.speed)
	next := b.pos.Add(step)
	candidate := b.rectAt(next)

	if !candidate.Intersects(b.area) {
		if b.offScreen != nil {
			b.offScreen(b)
		}
		return
	}

	for _, c := range b.registry {
		if c.Obstacle == nil || !c.Obstacle.Visible() {
			continue
		}
		or := c.Obstacle.Rect()
		if !candidate.Intersects(or) {
			continue
		}
		b.resolve(c, or, candidate)
		return
	}

	b.pos = next
	b.normalise()
}

// resolve applies one collision. The ball stays at its current position so
// it never sinks into the obstacle.
func (b *Ball) resolve(c Collidable, obstacle, candidate core.Rect) {
	b.collided = true
	if c.SpeedAdjust != 0 {
		b.SetSpeed(b.speed + c.SpeedAdjust)
	}
	if c.Bounce != nil {
		b.SetAngle(c.Bounce(obstacle, candidate))
	} else {
		b.SetAngle(Reflect(b.angle, obstacle, candidate))
	}
	if c.OnCollide != nil {
		c.OnCollide(c.Obstacle, b)
	}
}

func (b *Ball) normalise() {
	diff := b.tuning.BaseSpeed - b.speed
	if diff == 0 {
		return
	}
	b.SetSpeed(b.speed + diff*b.tuning.NormalisationRate)
}

// Reflect is the default bounce strategy. It works out which side of the
// obstacle was struck from the ball corners inside it: a top or bottom hit
// mirrors the vertical component, a left or right hit the horizontal one.
// A single-corner hit compares the overlap extents; a square overlap sends
// the ball straight back.
func Reflect(angle float64, obstacle, ball core.Rect) float64 {
	tl := obstacle.Contains(ball.X, ball.Y)
	tr := obstacle.Contains(ball.Right()-1, ball.Y)
	bl := obstacle.Contains(ball.X, ball.Bottom()-1)
	br := obstacle.Contains(ball.Right()-1, ball.Bottom()-1)

	switch {
	case (tl && tr) || (bl && br):
		return core.WrapAngle(core.TwoPi - angle)
	case (tl && bl) || (tr && br):
		return core.WrapAngle(math.Pi - angle)
	}

	ov := obstacle.Intersection(ball)
	switch {
	case ov.W < ov.H:
		return core.WrapAngle(math.Pi - angle)
	case ov.H < ov.W:
		return core.WrapAngle(core.TwoPi - angle)
	default:
		return core.WrapAngle(angle + math.Pi)
	}
}

func containsObstacle(list []Obstacle, o Obstacle) bool {
	for _, x := range list {
		if x == o {
			return true
		}
	}
	return false
}
