package arkanoid

import "math"

// Snapshot captures the observable simulation state. It uses primitive
// types only so two runs can be compared field by field.
type Snapshot struct {
	Tick        uint64
	State       string
	Score       int
	Lives       int
	Round       int
	Destroyed   int
	Flash       int
	Special     int // 1 ready, 2 used
	PaddleX     int
	PaddleW     int
	PaddleState string
	RoundTicks  int

	// Each ball is 5 ints: X, Y, angle, speed (all x1000), anchored.
	BallData []int

	// Each enemy is 5 ints: X, Y, direction x1000, visible, exploding.
	EnemyData []int

	// Each capsule is 3 ints: kind index, X, Y.
	PowerUpData []int

	// Each brick is 2 ints: visible, hits.
	BrickData []int

	RNGState uint64
}

var kindIndex = map[string]int{
	"life": 1, "expand": 2, "reduce": 3, "slow": 4, "speed": 5, "duplicate": 6, "laser": 7,
}

func milli(f float64) int {
	return int(math.Round(f * 1000))
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Snapshot returns the current state.
func (a *App) Snapshot() Snapshot {
	g := a.game
	pr := g.Paddle().Rect()

	snap := Snapshot{
		Tick:        uint64(g.Ticks()), //#nosec G115 -- tick count is always positive
		State:       g.StateName(),
		Score:       g.Score(),
		Lives:       g.Lives(),
		Round:       g.Round().Number,
		Destroyed:   g.Round().Destroyed(),
		Flash:       g.Flash(),
		Special:     flag(g.SpecialReady()) | flag(g.SpecialUsed())<<1,
		PaddleX:     pr.X,
		PaddleW:     pr.W,
		PaddleState: g.Paddle().StateName(),
		RoundTicks:  a.roundTicks,
		RNGState:    a.rnd.State(),
	}

	for _, b := range g.Balls() {
		c := b.Center()
		snap.BallData = append(snap.BallData,
			milli(c.X()), milli(c.Y()), milli(b.Angle()), milli(b.Speed()), flag(b.Anchored()))
	}
	for _, e := range g.Enemies() {
		r := e.Rect()
		snap.EnemyData = append(snap.EnemyData,
			r.X, r.Y, milli(e.Direction()), flag(e.Visible()), flag(e.Exploding()))
	}
	for _, p := range g.PowerUps() {
		r := p.Rect()
		snap.PowerUpData = append(snap.PowerUpData, kindIndex[string(p.Kind())], r.X, r.Y)
	}
	for _, b := range g.Round().Bricks() {
		snap.BrickData = append(snap.BrickData, flag(b.Visible()), b.Hits())
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, v := range []int{
		snap.Score, snap.Lives, snap.Round, snap.Destroyed, snap.Flash,
		snap.Special, snap.PaddleX, snap.PaddleW, snap.RoundTicks,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, s := range []string{snap.State, snap.PaddleState} {
		for _, c := range []byte(s) {
			h = h*31 + uint64(c)
		}
	}

	for _, data := range [][]int{snap.BallData, snap.EnemyData, snap.PowerUpData, snap.BrickData} {
		h = h*31 + uint64(len(data)) //#nosec G115 -- hash computation
		for _, v := range data {
			h = h*31 + uint64(v) //#nosec G115 -- hash computation
		}
	}

	return h*31 + snap.RNGState
}
