// Package anim holds the frame sequences that drive sprite animations.
//
// A frame is a sized, coloured glyph: the simulation only cares about its
// dimensions (a widening paddle grows frame by frame), the renderer about its
// glyph and colour.
package anim

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/logging"
)

// Frame is one image of an animation.
type Frame struct {
	W, H  int
	Glyph rune
	Color core.Color
}

// Placeholder is substituted for missing or empty sequences.
var Placeholder = Frame{W: 8, H: 8, Glyph: '?', Color: core.ColorBrightMagenta}

// Library maps sequence names to frames.
type Library struct {
	mu      sync.Mutex
	seqs    map[string][]Frame
	missing map[string]bool
	logger  *log.Logger
}

// NewLibrary creates an empty library. A nil logger discards.
func NewLibrary(logger *log.Logger) *Library {
	return &Library{
		seqs:    make(map[string][]Frame),
		missing: make(map[string]bool),
		logger:  logging.OrDiscard(logger),
	}
}

// Add registers a named sequence, replacing any previous one.
func (l *Library) Add(name string, frames ...Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seqs[name] = append([]Frame(nil), frames...)
}

// Frames returns the named sequence. A missing or empty sequence yields a
// single placeholder frame; the first miss for a name is logged.
func (l *Library) Frames(name string) []Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	if f := l.seqs[name]; len(f) > 0 {
		return f
	}
	if !l.missing[name] {
		l.missing[name] = true
		l.logger.Warn("animation sequence missing, using placeholder", "sequence", name)
	}
	return []Frame{Placeholder}
}

// First returns the first frame of the named sequence.
func (l *Library) First(name string) Frame {
	return l.Frames(name)[0]
}

// Sequence returns a playback cursor over the named sequence.
func (l *Library) Sequence(name string) *Sequence {
	return NewSequence(l.Frames(name))
}

// Sequence is a playback cursor over frames. It can run forwards or
// backwards and optionally loop.
type Sequence struct {
	frames  []Frame
	pos     int
	reverse bool
}

// NewSequence creates a cursor positioned before the first frame.
func NewSequence(frames []Frame) *Sequence {
	if len(frames) == 0 {
		frames = []Frame{Placeholder}
	}
	return &Sequence{frames: frames, pos: -1}
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	return len(s.frames)
}

// Next advances the cursor and returns the new frame. ok is false once the
// sequence is exhausted in the current direction.
func (s *Sequence) Next() (f Frame, ok bool) {
	if s.reverse {
		if s.pos <= 0 {
			return s.Current(), false
		}
		s.pos--
		return s.frames[s.pos], true
	}
	if s.pos >= len(s.frames)-1 {
		return s.Current(), false
	}
	s.pos++
	return s.frames[s.pos], true
}

// Cycle advances the cursor, wrapping back to the first frame.
func (s *Sequence) Cycle() Frame {
	s.pos = (s.pos + 1) % len(s.frames)
	return s.frames[s.pos]
}

// Current returns the frame under the cursor, or the first frame before any
// Next call.
func (s *Sequence) Current() Frame {
	if s.pos < 0 {
		return s.frames[0]
	}
	return s.frames[s.pos]
}

// Reverse switches playback direction so Next walks back towards the first
// frame. The cursor stays where it is.
func (s *Sequence) Reverse() {
	s.reverse = true
	if s.pos < 0 {
		s.pos = 0
	}
}

// Rewind puts the cursor back before the first frame, playing forwards.
func (s *Sequence) Rewind() {
	s.pos = -1
	s.reverse = false
}
