package round

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Edge is a wall of the play field.
type Edge struct {
	name string
	rect core.Rect
}

func (e *Edge) Name() string    { return e.name }
func (e *Edge) Rect() core.Rect { return e.rect }
func (e *Edge) Visible() bool   { return true }

// Door is one opening in the top edge.
type Door struct {
	rect    core.Rect
	opening int // ticks left until fully open, then until closed
	open    bool
}

// Rect returns the door's extent within the top edge.
func (d *Door) Rect() core.Rect { return d.rect }

// Busy reports whether the door is opening or closing.
func (d *Door) Busy() bool { return d.opening > 0 }

// Open reports whether the door is fully open.
func (d *Door) Open() bool { return d.open }

type doorRequest struct {
	delay int
	door  int
	gen   uint64
	fn    func(core.Point)
	fired bool
}

// TopEdge is the ceiling. It has two doors enemies come through.
type TopEdge struct {
	Edge
	doors     [2]*Door
	requests  []*doorRequest
	gen       uint64
	maxDelay  int
	openTicks int
	rnd       core.Rand
	logger    *log.Logger
}

func newTopEdge(r core.Rect, cfg config.EdgesConfig, rnd core.Rand, logger *log.Logger) *TopEdge {
	t := &TopEdge{
		Edge:      Edge{name: "top", rect: r},
		maxDelay:  cfg.DoorMaxDelay,
		openTicks: cfg.DoorOpenTicks,
		rnd:       rnd,
		logger:    logger,
	}
	dw := cfg.DoorWidth
	for i, cx := range []int{r.X + r.W/4, r.X + 3*r.W/4} {
		t.doors[i] = &Door{rect: core.NewRect(cx-dw/2, r.Y, dw, r.H)}
	}
	return t
}

// Doors returns both doors, left first.
func (t *TopEdge) Doors() []*Door { return t.doors[:] }

// OpenDoor asks for a random door to open after a random delay. When the
// door is open fn receives the top-left position an enemy should take, just
// below the opening.
func (t *TopEdge) OpenDoor(fn func(core.Point)) {
	t.requests = append(t.requests, &doorRequest{
		delay: 1 + t.rnd.Intn(max(t.maxDelay, 1)),
		door:  t.rnd.Intn(len(t.doors)),
		gen:   t.gen,
		fn:    fn,
	})
}

// CancelOpenDoor invalidates every pending request. Their callbacks never
// run, even when the door was already opening.
func (t *TopEdge) CancelOpenDoor() {
	t.gen++
	for _, d := range t.doors {
		d.opening = 0
		d.open = false
	}
	t.logger.Debug("door requests cancelled", "pending", len(t.requests))
}

// Pending returns the number of requests still waiting to fire.
func (t *TopEdge) Pending() int {
	n := 0
	for _, r := range t.requests {
		if r.gen == t.gen && !r.fired {
			n++
		}
	}
	return n
}

// Update advances the door sequence by one tick.
func (t *TopEdge) Update() {
	live := t.requests[:0]
	for _, r := range t.requests {
		if r.gen != t.gen || r.fired {
			continue
		}
		live = append(live, r)
	}
	clear(t.requests[len(live):])
	t.requests = live

	for _, d := range t.doors {
		if d.opening > 0 {
			d.opening--
			if d.opening == 0 {
				d.open = !d.open
				if d.open {
					d.opening = t.openTicks
				}
			}
		}
	}

	for _, r := range t.requests {
		d := t.doors[r.door]
		switch {
		case r.delay > 0:
			r.delay--
			if r.delay == 0 && !d.Busy() && !d.open {
				d.opening = t.openTicks
			}
		case d.open:
			r.fired = true
			dr := d.Rect()
			r.fn(core.Point{X: dr.X, Y: dr.Bottom()})
		case !d.Busy():
			d.opening = t.openTicks
		}
	}
}

// Edges groups the three walls.
type Edges struct {
	Left  *Edge
	Right *Edge
	Top   *TopEdge
}

// All returns the walls as a slice, top last.
func (e Edges) All() []*Edge {
	return []*Edge{e.Left, e.Right, &e.Top.Edge}
}

func newEdges(field core.Rect, cfg config.EdgesConfig, rnd core.Rand, logger *log.Logger) Edges {
	return Edges{
		Left:  &Edge{name: "left", rect: core.NewRect(field.X, field.Y, cfg.SideWidth, field.H)},
		Right: &Edge{name: "right", rect: core.NewRect(field.Right()-cfg.SideWidth, field.Y, cfg.SideWidth, field.H)},
		Top: newTopEdge(core.NewRect(field.X+cfg.SideWidth, field.Y, field.W-2*cfg.SideWidth, cfg.TopHeight),
			cfg, rnd, logger),
	}
}
