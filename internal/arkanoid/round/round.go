// Package round builds rounds from static configuration: the walls, the
// brick wall with its hidden power-ups, enemy settings and tuning deltas.
package round

import (
	"errors"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

var (
	// ErrUnknownRound is returned for a round number outside the catalog.
	ErrUnknownRound = errors.New("round: unknown round")
	// ErrBadLayout is returned for an unparseable brick layout.
	ErrBadLayout = errors.New("round: bad layout")
)

// Constructor builds a fresh round.
type Constructor func() (*Round, error)

// Round is one level of the game.
type Round struct {
	Number     int
	Name       string
	Background core.Color
	EnemyType  string
	NumEnemies int

	BallBaseSpeedAdjust float64
	NormalisationAdjust float64
	PaddleSpeedAdjust   int

	field       core.Rect
	edges       Edges
	bricks      []*Brick
	destroyed   int
	releaseFrac float64
	next        Constructor
}

// Field returns the play field below the score area.
func (r *Round) Field() core.Rect { return r.field }

// Edges returns the walls.
func (r *Round) Edges() Edges { return r.edges }

// Bricks returns every brick, in layout order.
func (r *Round) Bricks() []*Brick { return r.bricks }

// Destroyed returns how many bricks have been destroyed.
func (r *Round) Destroyed() int { return r.destroyed }

// Required returns the number of bricks that must go to finish the round.
func (r *Round) Required() int {
	n := 0
	for _, b := range r.bricks {
		if !b.colour.Exempt() {
			n++
		}
	}
	return n
}

// Complete reports whether every non-exempt brick has been destroyed.
func (r *Round) Complete() bool {
	return r.destroyed >= r.Required()
}

// BrickDestroyed records the destruction of a brick.
func (r *Round) BrickDestroyed() {
	r.destroyed++
}

// CanReleaseEnemies reports whether enough bricks are gone for enemies to
// appear.
func (r *Round) CanReleaseEnemies() bool {
	if r.NumEnemies == 0 {
		return false
	}
	return r.destroyed >= int(r.releaseFrac*float64(len(r.bricks)))
}

// Next returns the constructor of the following round, or nil after the
// last one.
func (r *Round) Next() Constructor { return r.next }

// Update advances brick flashes and the door sequence.
func (r *Round) Update() {
	for _, b := range r.bricks {
		b.Update()
	}
	r.edges.Top.Update()
}
