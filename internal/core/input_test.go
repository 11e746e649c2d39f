package core

import "testing"

func TestReceiverRegisterDispatch(t *testing.T) {
	r := NewReceiver()
	var got []KeyEvent
	h := NewHandler(func(ev KeyEvent) { got = append(got, ev) })

	r.Register(KeyDown, h)
	r.Register(KeyDown, h)
	if r.Count(KeyDown) != 1 {
		t.Fatalf("duplicate Register should be ignored, count = %d", r.Count(KeyDown))
	}

	r.Dispatch(KeyEvent{Kind: KeyDown, Action: ActionLeft})
	r.Dispatch(KeyEvent{Kind: KeyUp, Action: ActionLeft})
	if len(got) != 1 || got[0].Action != ActionLeft {
		t.Errorf("dispatched events = %+v", got)
	}
}

func TestReceiverUnregisterIdempotent(t *testing.T) {
	r := NewReceiver()
	down := NewHandler(func(KeyEvent) {})
	up := NewHandler(func(KeyEvent) {})
	r.Register(KeyDown, down)
	r.Register(KeyUp, up)

	r.Unregister(down, up)
	r.Unregister(down, up)
	r.Unregister(NewHandler(nil))

	if r.Count(KeyDown) != 0 || r.Count(KeyUp) != 0 {
		t.Errorf("handlers left after Unregister: down=%d up=%d", r.Count(KeyDown), r.Count(KeyUp))
	}
}

func TestReceiverUnregisterDuringDispatch(t *testing.T) {
	r := NewReceiver()
	calls := 0
	var h *Handler
	h = NewHandler(func(KeyEvent) {
		calls++
		r.Unregister(h)
	})
	other := NewHandler(func(KeyEvent) { calls++ })
	r.Register(KeyDown, h, other)

	r.Dispatch(KeyEvent{Kind: KeyDown, Action: ActionFire})
	r.Dispatch(KeyEvent{Kind: KeyDown, Action: ActionFire})

	if calls != 3 {
		t.Errorf("calls = %d, expected 3", calls)
	}
}

func TestDispatchFrameOrdersReleasesFirst(t *testing.T) {
	r := NewReceiver()
	var kinds []EventKind
	rec := NewHandler(func(ev KeyEvent) { kinds = append(kinds, ev.Kind) })
	r.Register(KeyDown, rec)
	r.Register(KeyUp, rec)

	f := NewInputFrame()
	f.Set(ActionRight)
	f.Release(ActionLeft)
	r.DispatchFrame(f)

	if len(kinds) != 2 || kinds[0] != KeyUp || kinds[1] != KeyDown {
		t.Errorf("event kinds = %v, expected [KeyUp KeyDown]", kinds)
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionFire)
	c := f.Clone()
	f.Clear()

	if !c.Has(ActionFire) {
		t.Error("clone lost its action after the original was cleared")
	}
	if f.Has(ActionFire) {
		t.Error("Clear() did not reset the frame")
	}
}

func TestActionString(t *testing.T) {
	if ActionSpecial.String() != "Special" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
