// Package config provides YAML-based configuration loading and difficulty
// presets for the arkanoid game.
package config

// ArkanoidConfig contains all tunable parameters for the game.
type ArkanoidConfig struct {
	Display  DisplayConfig  `yaml:"display"`
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Edges    EdgesConfig    `yaml:"edges"`
	Bricks   BricksConfig   `yaml:"bricks"`
	Enemy    EnemyConfig    `yaml:"enemy"`
	Powerups PowerupsConfig `yaml:"powerups"`
	Special  SpecialConfig  `yaml:"special"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Rounds   []RoundConfig  `yaml:"rounds"`
}

// DisplayConfig defines the play field in pixels.
type DisplayConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TopOffset int `yaml:"top_offset"`
	TickRate  int `yaml:"tick_rate"`
}

// BallConfig defines ball kinematics.
type BallConfig struct {
	Size              int     `yaml:"size"`
	StartAngle        float64 `yaml:"start_angle"`
	BaseSpeed         float64 `yaml:"base_speed"`
	TopSpeed          float64 `yaml:"top_speed"`
	NormalisationRate float64 `yaml:"normalisation_rate"`
	BrickSpeedAdjust  float64 `yaml:"brick_speed_adjust"`
	WallSpeedAdjust   float64 `yaml:"wall_speed_adjust"`
}

// PaddleConfig defines paddle geometry and movement.
type PaddleConfig struct {
	Width        int       `yaml:"width"`
	WideWidth    int       `yaml:"wide_width"`
	NarrowWidth  int       `yaml:"narrow_width"`
	Height       int       `yaml:"height"`
	Speed        int       `yaml:"speed"`
	BottomOffset int       `yaml:"bottom_offset"`
	BounceAngles []float64 `yaml:"bounce_angles"` // degrees, one per segment
	LaserSpeed   int       `yaml:"laser_speed"`
	LaserMax     int       `yaml:"laser_max"`
}

// EdgesConfig defines the side and top walls.
type EdgesConfig struct {
	SideWidth     int `yaml:"side_width"`
	TopHeight     int `yaml:"top_height"`
	DoorWidth     int `yaml:"door_width"`
	DoorMaxDelay  int `yaml:"door_max_delay"`  // ticks before a requested door opens
	DoorOpenTicks int `yaml:"door_open_ticks"` // ticks the open animation takes
}

// BricksConfig defines brick dimensions and grid placement.
type BricksConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	TopRow int `yaml:"top_row"` // grid row of the first layout line
}

// EnemyConfig defines enemy movement.
type EnemyConfig struct {
	Size           int     `yaml:"size"`
	Speed          float64 `yaml:"speed"`
	StartDirection float64 `yaml:"start_direction"`
	StartDuration  int     `yaml:"start_duration"`
	MinDuration    int     `yaml:"min_duration"`
	MaxDuration    int     `yaml:"max_duration"`
	RandomRange    float64 `yaml:"random_range"`
	EdgeBand       int     `yaml:"edge_band"`
	ContactGrace   int     `yaml:"contact_grace"`
	NudgeInterval  int     `yaml:"nudge_interval"`
	Score          int     `yaml:"score"`
}

// PowerupsConfig defines falling power-up capsules.
type PowerupsConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FallSpeed   int     `yaml:"fall_speed"`
	SlowSpeed   float64 `yaml:"slow_speed"`
	FastSpeed   float64 `yaml:"fast_speed"`
	ExpandBoost float64 `yaml:"expand_boost"`
	SplitAngle  float64 `yaml:"split_angle"`
}

// SpecialConfig defines the special item and its action.
type SpecialConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	FallSpeed  int `yaml:"fall_speed"`
	FlashTicks int `yaml:"flash_ticks"`
}

// GameplayConfig defines game rules.
type GameplayConfig struct {
	Lives         int `yaml:"lives"`
	TimeLimit     int `yaml:"time_limit"` // seconds per round, 0 disables
	RoundEndPause int `yaml:"round_end_pause"`
}

// RoundConfig is the static data for one round.
type RoundConfig struct {
	Name                string         `yaml:"name"`
	Background          string         `yaml:"background"`
	EnemyType           string         `yaml:"enemy_type"`
	NumEnemies          int            `yaml:"num_enemies"`
	EnemyRelease        float64        `yaml:"enemy_release"` // fraction of bricks destroyed
	BallBaseSpeedAdjust float64        `yaml:"ball_base_speed_adjust"`
	PaddleSpeedAdjust   int            `yaml:"paddle_speed_adjust"`
	NormalisationAdjust float64        `yaml:"normalisation_rate_adjust"`
	Layout              []string       `yaml:"layout"`
	Powerups            []PowerupCount `yaml:"powerups"`
	PowerupTail         int            `yaml:"powerup_tail"` // capsules forced into the bottom row
}

// PowerupCount assigns a number of capsules of one kind to a round.
type PowerupCount struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
