package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move paddle left
	ActionRight          // D, Right arrow - move paddle right
	ActionFire           // Space - release/laser fire
	ActionSpecial        // S - use the collected special item
	ActionConfirm        // Enter - start a game from the title screen
	ActionRestart        // R - restart after game over
	ActionPause          // P, Escape - pause/unpause
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionSpecial:
		return "Special"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions pressed and released during one simulation tick.
type InputFrame struct {
	Actions  map[Action]bool
	Releases map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions:  make(map[Action]bool),
		Releases: make(map[Action]bool),
	}
}

// Set marks an action as pressed for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Release marks an action as released for this frame.
func (f *InputFrame) Release(a Action) {
	if f.Releases == nil {
		f.Releases = make(map[Action]bool)
	}
	f.Releases[a] = true
}

// Released returns true if the given action was released this frame.
func (f InputFrame) Released(a Action) bool {
	return f.Releases[a]
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Releases)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	for k, v := range f.Releases {
		c.Releases[k] = v
	}
	return c
}

// EventKind distinguishes key-down from key-up events.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
)

// KeyEvent is a discrete input event delivered to registered handlers.
type KeyEvent struct {
	Kind   EventKind
	Action Action
}

// Handler wraps an event callback. Handlers are compared by pointer, so the
// same *Handler must be passed to Unregister that was passed to Register.
type Handler struct {
	Fn func(KeyEvent)
}

// NewHandler creates a handler for fn.
func NewHandler(fn func(KeyEvent)) *Handler {
	return &Handler{Fn: fn}
}

// Receiver dispatches key events to the handlers registered for each kind.
type Receiver struct {
	handlers map[EventKind][]*Handler
}

// NewReceiver creates an empty receiver.
func NewReceiver() *Receiver {
	return &Receiver{handlers: make(map[EventKind][]*Handler)}
}

// Register adds handlers for the given event kind. Registering a handler
// that is already present for that kind has no effect.
func (r *Receiver) Register(kind EventKind, hs ...*Handler) {
	for _, h := range hs {
		if h == nil || r.registered(kind, h) {
			continue
		}
		r.handlers[kind] = append(r.handlers[kind], h)
	}
}

// Unregister removes handlers from every event kind. Removing a handler
// that is not registered is a no-op.
func (r *Receiver) Unregister(hs ...*Handler) {
	for kind, list := range r.handlers {
		kept := list[:0]
		for _, existing := range list {
			if !containsHandler(hs, existing) {
				kept = append(kept, existing)
			}
		}
		r.handlers[kind] = kept
	}
}

// Count returns the number of handlers registered for kind.
func (r *Receiver) Count(kind EventKind) int {
	return len(r.handlers[kind])
}

// Dispatch delivers ev to every handler registered for its kind.
// Handlers may register or unregister during dispatch.
func (r *Receiver) Dispatch(ev KeyEvent) {
	list := append([]*Handler(nil), r.handlers[ev.Kind]...)
	for _, h := range list {
		if h.Fn != nil {
			h.Fn(ev)
		}
	}
}

// DispatchFrame converts an input frame into key events. Releases are
// delivered before presses so a tap within one frame ends pressed.
func (r *Receiver) DispatchFrame(f InputFrame) {
	for _, a := range allActions {
		if f.Released(a) {
			r.Dispatch(KeyEvent{Kind: KeyUp, Action: a})
		}
	}
	for _, a := range allActions {
		if f.Has(a) {
			r.Dispatch(KeyEvent{Kind: KeyDown, Action: a})
		}
	}
}

var allActions = []Action{
	ActionLeft, ActionRight, ActionFire, ActionSpecial,
	ActionConfirm, ActionRestart, ActionPause, ActionQuit,
}

func (r *Receiver) registered(kind EventKind, h *Handler) bool {
	return containsHandler(r.handlers[kind], h)
}

func containsHandler(list []*Handler, h *Handler) bool {
	for _, x := range list {
		if x == h {
			return true
		}
	}
	return false
}
