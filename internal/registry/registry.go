// Package registry keeps the factories of the playable game variants.
// Variants register themselves in init() functions so the CLI and the
// terminal platform can list and create them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
)

// Game is what the platform drives. Implementations hold pure simulation
// logic: the platform owns input mapping, timing and terminal output.
type Game interface {
	// ID returns a unique identifier, used on the command line and as the
	// score table key.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a new game. It is called once at start and again after
	// game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current status.
	State() core.GameState
}

// HighScores loads and saves the best score of one game variant.
type HighScores interface {
	LoadHighScore() int
	SaveHighScore(score int)
}

// Persistent is implemented by games that keep a high score between runs.
type Persistent interface {
	SetHighScores(hs HighScores)
}

// RoundSelectable is implemented by games that can start at a chosen round.
type RoundSelectable interface {
	StartAt(round int)
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory. It panics if the ID is taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered variant sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a variant by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
