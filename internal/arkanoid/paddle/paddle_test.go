package paddle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

var lane = core.NewRect(20, 740, 560, 14)

func testConfig() Config {
	return Config{
		Speed:        10,
		BounceAngles: [6]float64{220, 245, 260, 280, 295, 320},
		LaserSpeed:   15,
		LaserMax:     3,
	}
}

func newPaddle(t *testing.T, opts ...Option) *Paddle {
	t.Helper()
	lib := anim.Builtin(config.DefaultArkanoidConfig(), nil)
	return New(lane, testConfig(), lib, opts...)
}

func run(p *Paddle, ticks int) {
	for i := 0; i < ticks; i++ {
		p.Update()
	}
}

func TestNewPaddleCentredAndNormal(t *testing.T) {
	p := newPaddle(t)
	assert.Equal(t, core.NewRect(270, 740, 60, 14), p.Rect())
	assert.Equal(t, "normal", p.StateName())
	assert.True(t, p.Visible())
}

func TestMovementStaysInLane(t *testing.T) {
	p := newPaddle(t)
	p.SetSpeed(37)

	p.MoveLeft()
	for i := 0; i < 40; i++ {
		p.Update()
		require.GreaterOrEqual(t, p.Rect().X, lane.X)
		require.LessOrEqual(t, p.Rect().Right(), lane.Right())
	}
	assert.Equal(t, lane.X, p.Rect().X, "paddle ends flush with the lane edge")
	assert.Equal(t, 0, p.Moving(), "the delta decays to zero against the wall")

	p.MoveRight()
	run(p, 40)
	assert.Equal(t, lane.Right(), p.Rect().Right())

	p.Stop()
	before := p.Rect()
	p.Update()
	assert.Equal(t, before, p.Rect())
}

func TestBounceSegments(t *testing.T) {
	p := newPaddle(t)
	pr := core.NewRect(100, 740, 64, 14) // segment width 10, last one 14
	tests := []struct {
		ballX int
		deg   float64
	}{
		{95, 220},  // overlaps only the first segment
		{112, 245}, // first segment is 100..110
		{150, 320}, // last segment 150..164 takes the remainder
		{105, 220}, // straddles 0 and 1, the first wins
	}
	for _, tt := range tests {
		ball := core.NewRect(tt.ballX, 732, 8, 10)
		assert.InDelta(t, tt.deg*math.Pi/180, p.Bounce(pr, ball), 1e-9, "ball x=%d", tt.ballX)
	}

	assert.Panics(t, func() {
		p.Bounce(pr, core.NewRect(0, 0, 5, 5))
	})
}

func TestTransitionWaitsForExit(t *testing.T) {
	p := newPaddle(t)
	p.Transition(NewWide(p))
	require.Equal(t, "wide", p.StateName(), "normal exits immediately")

	run(p, 10)
	assert.Equal(t, 90, p.Rect().W, "wide animation finished")

	p.Transition(NewNarrow(p))
	assert.Equal(t, "wide", p.StateName(), "wide is still shrinking back")
	assert.True(t, p.Transitioning())

	ticks := 0
	for p.StateName() == "wide" {
		p.Update()
		ticks++
		require.Less(t, ticks, 20)
	}
	assert.Greater(t, ticks, 1)
	assert.Equal(t, "narrow", p.StateName())

	run(p, 10)
	assert.Equal(t, 40, p.Rect().W)
}

func TestPendingTransitionLastRequestWins(t *testing.T) {
	p := newPaddle(t)
	p.Transition(NewWide(p))
	run(p, 10)

	p.Transition(NewNarrow(p))
	p.Transition(NewLaser(p))
	run(p, 20)
	assert.Equal(t, "laser", p.StateName())
}

func TestWideClampsIntoLane(t *testing.T) {
	p := newPaddle(t)
	p.SetSpeed(600)
	p.MoveLeft()
	p.Update()
	require.Equal(t, lane.X, p.Rect().X)

	p.Transition(NewWide(p))
	for i := 0; i < 10; i++ {
		p.Update()
		require.GreaterOrEqual(t, p.Rect().X, lane.X)
	}
}

func TestMaterializeReturnsToNormal(t *testing.T) {
	p := newPaddle(t)
	p.Transition(NewMaterializing(p))
	assert.Equal(t, "materializing", p.StateName())
	run(p, 30)
	assert.Equal(t, "normal", p.StateName())
	assert.Equal(t, 60, p.Rect().W)
}

func TestExplodingStopsAndHides(t *testing.T) {
	p := newPaddle(t)
	done := 0
	p.Transition(NewExploding(p, func() { done++ }))
	require.True(t, p.Exploding())

	p.MoveRight()
	before := p.Rect().X
	p.Update()
	assert.Equal(t, before, p.Rect().X, "exploding paddle ignores movement")

	run(p, 100)
	assert.Equal(t, 1, done, "completion callback runs once")
	assert.False(t, p.Visible())
}

func TestSpecialImageHelpers(t *testing.T) {
	p := newPaddle(t)
	p.DeactivateSpecialImage()
	assert.Equal(t, "normal", p.StateName())

	p.ActivateSpecialImage()
	assert.Equal(t, "powerup_charged", p.StateName())
	p.ActivateSpecialImage()
	assert.Equal(t, "powerup_charged", p.StateName())
	run(p, 7)

	p.UseSpecialImage()
	assert.Equal(t, "normal", p.StateName())

	p.Transition(NewExploding(p, nil))
	p.DeactivateSpecialImage()
	assert.True(t, p.Exploding(), "deactivate leaves an exploding paddle alone")
}

type targets struct {
	ceiling   core.Rect
	brick     *core.Rect
	brickHits int
	enemyHits int
}

func (tg *targets) Ceiling() core.Rect { return tg.ceiling }
func (tg *targets) HitBrick(r core.Rect) bool {
	if tg.brick != nil && r.Intersects(*tg.brick) {
		tg.brickHits++
		tg.brick = nil
		return true
	}
	return false
}
func (tg *targets) HitEnemy(core.Rect) bool { return false }

func TestLaserFiresOnlyWhenArmed(t *testing.T) {
	r := core.NewReceiver()
	brick := core.NewRect(0, 600, 600, 20)
	tg := &targets{ceiling: core.NewRect(20, 150, 560, 20), brick: &brick}
	p := newPaddle(t, WithReceiver(r), WithLaserTargets(tg))

	p.Transition(NewLaser(p))
	p.Fire()
	assert.Empty(t, p.Bullets(), "not armed during conversion")

	run(p, 10)
	laser, ok := p.State().(*Laser)
	require.True(t, ok)
	require.True(t, laser.Armed())
	require.Equal(t, 1, r.Count(core.KeyUp))

	r.Dispatch(core.KeyEvent{Kind: core.KeyUp, Action: core.ActionFire})
	require.Len(t, p.Bullets(), 2)
	p.Fire()
	require.Len(t, p.Bullets(), 4, "a second pair is allowed while fewer than 3 are in flight")
	p.Fire()
	assert.Len(t, p.Bullets(), 4, "no new pair once 3 or more are in flight")

	run(p, 10)
	assert.Equal(t, 1, tg.brickHits, "first bullet to reach the brick consumes it")
	run(p, 30)
	for _, b := range p.Bullets() {
		assert.False(t, b.Visible())
	}

	p.Transition(NewNormal(p))
	assert.Equal(t, 0, r.Count(core.KeyUp), "fire handler unregistered on exit")
}
