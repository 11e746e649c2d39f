package enemy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-arkanoid/internal/arkanoid/anim"
	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

type block struct {
	r      core.Rect
	hidden bool
}

func (b *block) Rect() core.Rect { return b.r }
func (b *block) Visible() bool   { return !b.hidden }

var area = core.NewRect(0, 0, 600, 800)

func enemyConfig() config.EnemyConfig {
	return config.DefaultArkanoidConfig().Enemy
}

func newEnemy(t *testing.T, cfg config.EnemyConfig, seed int64, opts ...Option) *Enemy {
	t.Helper()
	lib := anim.Builtin(config.DefaultArkanoidConfig(), nil)
	e := New("cone", area, cfg, lib, core.NewSimpleRNG(seed), opts...)
	e.Reset()
	return e
}

func TestDecideTable(t *testing.T) {
	tests := []struct {
		name    string
		bands   Band
		current float64
		tick    int
		want    float64
	}{
		{"all four reverse", allBands, 1.0, 1, 1.0 + math.Pi},
		{"left right bottom go up", BandLeft | BandRight | BandBottom, 1.0, 1, 3 * math.Pi / 2},
		{"left right top go down", BandLeft | BandRight | BandTop, 1.0, 1, math.Pi / 2},
		{"left bottom go right", BandLeft | BandBottom, 1.0, 1, 0},
		{"right bottom go left", BandRight | BandBottom, 1.0, 1, math.Pi},
		{"bottom only go left", BandBottom, 1.0, 1, math.Pi},
		{"bottom only keeps horizontal", BandBottom, 0, 1, 0},
		{"right side diagonal", BandRight | BandTop, 1.0, 1, 3 * math.Pi / 4},
		{"top only diagonal", BandTop, 1.0, 1, math.Pi / 4},
		{"corner hit diagonal", 0, 1.0, 1, math.Pi / 4},
		{"right nudge", BandRight, 1.0, 60, math.Pi},
		{"left nudge", BandLeft, 1.0, 120, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.bands, tt.current, tt.tick, 60)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, got, Decide(tt.bands, tt.current, tt.tick, 60), "same flags, same answer")
		})
	}
}

func TestStartsHiddenAndFrozen(t *testing.T) {
	lib := anim.Builtin(config.DefaultArkanoidConfig(), nil)
	e := New("cone", area, enemyConfig(), lib, core.NewSimpleRNG(1))
	assert.False(t, e.Visible())
	assert.True(t, e.Frozen())

	e.MoveTo(core.Point{X: 100, Y: 100})
	e.Update()
	assert.Equal(t, core.NewRect(100, 100, 30, 30), e.Rect())
}

func TestMovesAlongStartDirection(t *testing.T) {
	e := newEnemy(t, enemyConfig(), 1)
	e.MoveTo(core.Point{X: 100, Y: 100})
	e.Update()
	assert.Equal(t, core.NewRect(100, 102, 30, 30), e.Rect())
	assert.Equal(t, 74, e.Duration())
}

func TestPaddleTestedFirst(t *testing.T) {
	paddle := &block{r: core.NewRect(90, 125, 60, 14)}
	wall := &block{r: core.NewRect(0, 0, 110, 800)}
	var hit *Enemy
	e := newEnemy(t, enemyConfig(), 1,
		WithPaddle(paddle, func(got *Enemy) { hit = got }),
		WithObstacles(wall),
	)
	e.MoveTo(core.Point{X: 100, Y: 100})
	before := e.Direction()

	e.Update()
	assert.Same(t, e, hit)
	assert.Equal(t, before, e.Direction(), "paddle contact leaves steering to the owner")

	hit = nil
	paddle.hidden = true
	e.Update()
	assert.Nil(t, hit, "a hidden paddle is not hit")
}

func TestWallCollisionUsesBands(t *testing.T) {
	cfg := enemyConfig()
	cfg.NudgeInterval = 0
	wall := &block{r: core.NewRect(131, 0, 20, 800)}
	e := newEnemy(t, cfg, 1, WithObstacles(wall))
	e.MoveTo(core.Point{X: 100, Y: 100})
	e.SetDirection(0)

	e.Update()
	assert.InDelta(t, 3*math.Pi/4, e.Direction(), 1e-9, "right band only sends it down and away")
}

func TestNudgeOnInterval(t *testing.T) {
	wall := &block{r: core.NewRect(131, 0, 20, 800)}
	e := newEnemy(t, enemyConfig(), 1, WithObstacles(wall))
	e.MoveTo(core.Point{X: 100, Y: 100})
	e.SetDirection(0)

	e.Update() // tick 0 is a nudge tick
	assert.InDelta(t, math.Pi, e.Direction(), 1e-9)
}

func TestInvisibleObstaclesIgnored(t *testing.T) {
	wall := &block{r: core.NewRect(131, 0, 20, 800), hidden: true}
	e := newEnemy(t, enemyConfig(), 1, WithObstacles(wall))
	e.MoveTo(core.Point{X: 100, Y: 100})
	e.SetDirection(0)
	e.Update()
	assert.Equal(t, 0.0, e.Direction())
	assert.Equal(t, 102, e.Rect().X)
}

func TestFreeRoamAimsAtPaddle(t *testing.T) {
	cfg := enemyConfig()
	cfg.StartDuration = 0
	cfg.ContactGrace = 0
	paddle := &block{r: core.NewRect(270, 740, 60, 14)}

	directions := make([]float64, 2)
	for i := range directions {
		e := newEnemy(t, cfg, 42, WithPaddle(paddle, nil))
		e.MoveTo(core.Point{X: 100, Y: 200})
		e.Update()
		e.Update()

		aim := math.Atan2(747-217, 300-115)
		diff := math.Abs(e.Direction() - aim)
		diff = math.Min(diff, core.TwoPi-diff)
		assert.LessOrEqual(t, diff, cfg.RandomRange+0.05)
		assert.GreaterOrEqual(t, e.Duration(), cfg.MinDuration)
		assert.Less(t, e.Duration(), cfg.MaxDuration)
		directions[i] = e.Direction()
	}
	assert.Equal(t, directions[0], directions[1], "same seed, same perturbation")
}

func TestFloorBounce(t *testing.T) {
	e := newEnemy(t, enemyConfig(), 1)
	e.MoveTo(core.Point{X: 100, Y: 769})
	e.SetDirection(math.Pi / 2)
	e.Update()
	assert.Equal(t, 800, e.Rect().Bottom())
	assert.InDelta(t, 3*math.Pi/2, e.Direction(), 1e-9)
}

func TestFloorBounceNudgesNearHorizontal(t *testing.T) {
	cfg := enemyConfig()
	cfg.Speed = 20
	e := newEnemy(t, cfg, 7)
	e.MoveTo(core.Point{X: 100, Y: 770})
	e.SetDirection(0.05)
	e.Update()
	assert.Equal(t, 800, e.Rect().Bottom())
	assert.Greater(t, e.Direction(), math.Pi, "heads back up")
	assert.Less(t, e.Direction(), core.TwoPi-0.05-math.Pi/4+1e-9)
}

func TestSideExitClampsOnly(t *testing.T) {
	e := newEnemy(t, enemyConfig(), 1)
	e.MoveTo(core.Point{X: 570, Y: 300})
	e.SetDirection(0)
	e.Update()
	assert.Equal(t, 600, e.Rect().Right())
	assert.Equal(t, 0.0, e.Direction())
}

func TestExplosionRunsOnceAtHalfRate(t *testing.T) {
	calls := 0
	e := newEnemy(t, enemyConfig(), 1, WithOnDestroyed(func(*Enemy) { calls++ }))
	e.MoveTo(core.Point{X: 100, Y: 100})

	e.Explode()
	require.True(t, e.Exploding())
	e.Update()
	e.Update()
	e.Explode()
	start := e.Rect()
	for i := 0; i < 6; i++ {
		e.Update()
	}
	assert.Equal(t, 0, calls)
	assert.Equal(t, start, e.Rect(), "position is fixed while exploding")

	e.Update()
	assert.Equal(t, 1, calls)
	assert.False(t, e.Exploding())
	assert.False(t, e.Visible())

	for i := 0; i < 10; i++ {
		e.Update()
	}
	assert.Equal(t, 1, calls)

	e.SetDirection(1)
	e.Reset()
	assert.True(t, e.Visible())
	assert.False(t, e.Frozen())
	assert.Equal(t, enemyConfig().StartDirection, e.Direction())
	assert.Equal(t, enemyConfig().StartDuration, e.Duration())
}

func TestPeersCollide(t *testing.T) {
	cfg := enemyConfig()
	cfg.NudgeInterval = 0
	peers := NewSet()
	a := newEnemy(t, cfg, 1, WithPeers(peers))
	b := newEnemy(t, cfg, 1, WithPeers(peers))
	peers.Add(a, b, a)
	require.Equal(t, 2, peers.Len())

	a.MoveTo(core.Point{X: 100, Y: 100})
	b.MoveTo(core.Point{X: 131, Y: 100})
	a.SetDirection(0)
	a.Update()
	assert.InDelta(t, 3*math.Pi/4, a.Direction(), 1e-9)

	peers.Remove(b)
	peers.Remove(b)
	assert.False(t, peers.Contains(b))
	a.MoveTo(core.Point{X: 100, Y: 100})
	a.SetDirection(0)
	a.Update()
	assert.Equal(t, 0.0, a.Direction(), "a removed peer is invisible to the others")

	peers.Clear()
	assert.Zero(t, peers.Len())
}
