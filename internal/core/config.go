package core

// RuntimeConfig is what the platform tells a game when it resets it.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int
	Seed     int64 // 0 lets the platform pick a time-based seed
}

// DefaultConfig is a standard 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is what a game reports to the platform after each tick.
type GameState struct {
	Score     int
	HighScore int
	Lives     int
	Round     int
	GameOver  bool
	Paused    bool
}

// StepResult wraps the state returned by Game.Step.
type StepResult struct {
	State GameState
}
