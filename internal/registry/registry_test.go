package registry

import (
	"testing"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("stub_b", func() Game { return stubGame{"stub_b"} })
	Register("stub_a", func() Game { return stubGame{"stub_a"} })

	if !Exists("stub_a") || Exists("stub_missing") {
		t.Fatal("Exists() reports the wrong registrations")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("Expected stub_b, got %s", g.ID())
	}

	if _, err := Create("stub_missing"); err == nil {
		t.Error("Expected an error for an unknown ID")
	}

	list := List()
	if len(list) < 2 || list[0].ID != "stub_a" || list[1].ID != "stub_b" {
		t.Fatalf("List() not sorted: %v", list)
	}
	if list[0].Title != "Stub stub_a" {
		t.Errorf("Unexpected title %q", list[0].Title)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return stubGame{"stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for a duplicate ID")
		}
	}()
	Register("stub_dup", func() Game { return stubGame{"stub_dup"} })
}
