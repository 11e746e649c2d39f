package ball

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

type block struct {
	r      core.Rect
	hidden bool
}

func (b *block) Rect() core.Rect { return b.r }
func (b *block) Visible() bool   { return !b.hidden }

var (
	area   = core.NewRect(0, 0, 600, 800)
	tuning = Tuning{BaseSpeed: 8, TopSpeed: 12, NormalisationRate: 0.02}
)

func mathVec(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{x, y}
}

func newBall(x, y int, angle float64) *Ball {
	return New(core.Point{X: x, Y: y}, 10, angle, tuning, area, nil)
}

func TestStraightMotion(t *testing.T) {
	b := newBall(300, 400, 0)
	b.Update()
	assert.InDelta(t, 308, b.Center().X(), 1e-9)
	assert.InDelta(t, 400, b.Center().Y(), 1e-9)

	down := newBall(300, 400, math.Pi/2)
	down.Update()
	assert.InDelta(t, 408, down.Center().Y(), 1e-9)
}

func TestBrickCollisionSpeedScenario(t *testing.T) {
	b := newBall(300, 400, 3*math.Pi/2) // straight up
	brick := &block{r: core.NewRect(280, 380, 40, 12)}
	hits := 0
	b.Add(brick, WithSpeedAdjust(0.3), WithOnCollide(func(o Obstacle, got *Ball) {
		hits++
		assert.Same(t, brick, o)
		assert.Same(t, b, got)
		brick.hidden = true
	}))

	b.Update()
	require.True(t, b.Collided())
	assert.Equal(t, 1, hits)
	assert.InDelta(t, 8.3, b.Speed(), 1e-9)
	assert.InDelta(t, math.Pi/2, b.Angle(), 1e-9, "vertical reflection sends the ball down")

	prev := b.Speed()
	for i := 0; i < 30; i++ {
		b.Update()
		require.False(t, b.Collided())
		want := prev + (8-prev)*0.02
		assert.InDelta(t, want, b.Speed(), 1e-9)
		assert.Less(t, math.Abs(b.Speed()-8), math.Abs(prev-8))
		prev = b.Speed()
	}
}

func TestSpeedClampedToTop(t *testing.T) {
	b := newBall(300, 400, 0)
	b.SetSpeed(11.9)
	wall := &block{r: core.NewRect(310, 300, 20, 200)}
	b.Add(wall, WithSpeedAdjust(5))

	b.Update()
	assert.Equal(t, 12.0, b.Speed())
	assert.InDelta(t, math.Pi, b.Angle(), 1e-9, "side hit mirrors horizontally")

	b.SetSpeed(-3)
	assert.Equal(t, 0.0, b.Speed())
}

func TestFirstRegisteredCollisionWins(t *testing.T) {
	b := newBall(300, 400, 0)
	first := &block{r: core.NewRect(305, 390, 20, 20)}
	second := &block{r: core.NewRect(305, 390, 20, 20)}
	var order []Obstacle
	cb := WithOnCollide(func(o Obstacle, _ *Ball) { order = append(order, o) })
	b.Add(first, cb)
	b.Add(second, cb)

	b.Update()
	require.Len(t, order, 1)
	assert.Same(t, first, order[0])
}

func TestInvisibleObstaclesIgnored(t *testing.T) {
	b := newBall(300, 400, 0)
	b.Add(&block{r: core.NewRect(305, 390, 20, 20), hidden: true})
	b.Update()
	assert.False(t, b.Collided())
	assert.InDelta(t, 308, b.Center().X(), 1e-9)
}

func TestDuplicateRegistrationReplaces(t *testing.T) {
	b := newBall(300, 400, 0)
	o := &block{r: core.NewRect(0, 0, 1, 1)}
	b.Add(o, WithSpeedAdjust(0.1))
	b.Add(o, WithSpeedAdjust(0.3))
	reg := b.Registry()
	require.Len(t, reg, 1)
	assert.Equal(t, 0.3, reg[0].SpeedAdjust)

	b.Remove(&block{})
	assert.Len(t, b.Registry(), 1, "removing an unknown obstacle is a no-op")
	b.Remove(o)
	assert.Empty(t, b.Registry())
	assert.False(t, b.Registered(o))
}

func TestCustomBounceStrategy(t *testing.T) {
	b := newBall(300, 400, math.Pi/2)
	paddle := &block{r: core.NewRect(280, 405, 60, 14)}
	b.Add(paddle, WithBounce(func(obstacle, ball core.Rect) float64 {
		return 4.0
	}))
	b.Update()
	assert.Equal(t, 4.0, b.Angle())
}

func TestOffScreenCallback(t *testing.T) {
	calls := 0
	b := New(core.Point{X: 300, Y: 805}, 10, math.Pi/2, tuning, area, func(got *Ball) { calls++ })
	before := b.Center()
	b.Update()
	assert.Equal(t, 1, calls)
	assert.Equal(t, before, b.Center(), "the ball does not move when it leaves the area")
}

func TestAnchorSuspendsMotionAndCollision(t *testing.T) {
	b := newBall(300, 400, 0)
	hit := false
	b.Add(&block{r: core.NewRect(0, 0, 600, 800)}, WithOnCollide(func(Obstacle, *Ball) { hit = true }))

	b.AnchorAt(core.Point{X: 300, Y: 700})
	b.Update()
	assert.False(t, hit)
	assert.Equal(t, mathVec(300, 700), b.Center())

	paddle := &block{r: core.NewRect(100, 740, 60, 14)}
	b.AnchorTo(paddle, core.Point{X: 30, Y: -10})
	paddle.r = paddle.r.Move(20, 0)
	b.Update()
	assert.Equal(t, core.NewRect(150, 730, 10, 10), b.Rect())

	b.Release(5.0)
	assert.False(t, b.Anchored())
	assert.Equal(t, 5.0, b.Angle())
}

func TestCloneSharesTuningNotRegistry(t *testing.T) {
	b := newBall(300, 400, 1)
	b.Add(&block{r: core.NewRect(0, 0, 10, 10)})
	b.SetSpeed(9.5)

	c := b.Clone(core.Point{X: 10, Y: 20}, 2)
	assert.Empty(t, c.Registry())
	assert.Equal(t, b.Tuning(), c.Tuning())
	assert.Equal(t, 9.5, c.Speed())
	assert.Equal(t, 2.0, c.Angle())
	assert.Len(t, b.Registry(), 1)
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		obstacle core.Rect
		ball     core.Rect
		want     float64
	}{
		{"top edge hit going up", 5.0, core.NewRect(0, 0, 100, 20), core.NewRect(40, 15, 10, 10), core.TwoPi - 5.0},
		{"left wall hit", 3.5, core.NewRect(0, 0, 20, 800), core.NewRect(15, 300, 10, 10), math.Pi - 3.5 + core.TwoPi},
		{"corner clip wide", 0.5, core.NewRect(0, 0, 20, 20), core.NewRect(12, 18, 10, 10), core.TwoPi - 0.5},
		{"corner clip tall", 0.5, core.NewRect(0, 0, 20, 20), core.NewRect(18, 12, 10, 10), math.Pi - 0.5},
		{"square corner", 0.5, core.NewRect(0, 0, 20, 20), core.NewRect(15, 15, 10, 10), 0.5 + math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflect(tt.angle, tt.obstacle, tt.ball)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, core.TwoPi)
		})
	}
}

func TestReset(t *testing.T) {
	b := newBall(300, 400, 5.0)
	b.SetBaseSpeed(9)
	b.SetSpeed(0)
	b.AnchorAt(core.Point{X: 1, Y: 1})
	b.Update()

	b.Reset()
	assert.False(t, b.Anchored())
	assert.Equal(t, 9.0, b.Speed())
	assert.Equal(t, mathVec(300, 400), b.Center())
	assert.Equal(t, 8.0, b.InitialTuning().BaseSpeed)
}
