package config

import (
	_ "embed"
)

//go:embed defaults/arkanoid.yaml
var defaultArkanoidYAML []byte

// DefaultArkanoidConfig returns the hardcoded configuration used when the
// embedded YAML cannot be parsed.
func DefaultArkanoidConfig() ArkanoidConfig {
	return ArkanoidConfig{
		Display: DisplayConfig{
			Width:     600,
			Height:    800,
			TopOffset: 150,
			TickRate:  60,
		},
		Ball: BallConfig{
			Size:              10,
			StartAngle:        5.0,
			BaseSpeed:         8,
			TopSpeed:          12,
			NormalisationRate: 0.02,
			BrickSpeedAdjust:  0.3,
			WallSpeedAdjust:   0.1,
		},
		Paddle: PaddleConfig{
			Width:        60,
			WideWidth:    90,
			NarrowWidth:  40,
			Height:       14,
			Speed:        10,
			BottomOffset: 60,
			BounceAngles: []float64{220, 245, 260, 280, 295, 320},
			LaserSpeed:   15,
			LaserMax:     3,
		},
		Edges: EdgesConfig{
			SideWidth:     20,
			TopHeight:     20,
			DoorWidth:     40,
			DoorMaxDelay:  120,
			DoorOpenTicks: 16,
		},
		Bricks: BricksConfig{
			Width:  46,
			Height: 20,
			TopRow: 4,
		},
		Enemy: EnemyConfig{
			Size:           30,
			Speed:          2,
			StartDirection: 1.57,
			StartDuration:  75,
			MinDuration:    30,
			MaxDuration:    60,
			RandomRange:    1.5,
			EdgeBand:       5,
			ContactGrace:   30,
			NudgeInterval:  60,
			Score:          500,
		},
		Powerups: PowerupsConfig{
			Width:       40,
			Height:      16,
			FallSpeed:   3,
			SlowSpeed:   6,
			FastSpeed:   11,
			ExpandBoost: 1,
			SplitAngle:  0.4,
		},
		Special: SpecialConfig{
			Width:      30,
			Height:     30,
			FallSpeed:  2,
			FlashTicks: 10,
		},
		Gameplay: GameplayConfig{
			Lives:         3,
			TimeLimit:     250,
			RoundEndPause: 120,
		},
		Rounds: []RoundConfig{
			{
				Name:         "Round 1",
				Background:   "red",
				EnemyType:    "cone",
				NumEnemies:   8,
				EnemyRelease: 0.25,
				Layout: []string{
					"SSSSSSSSSSSS",
					"RRRRRRRRRRRR",
					"YYYYYYYYYYYY",
					"BBBBBBBBBBBB",
					"GGGGGGGGGGGG",
				},
				Powerups: []PowerupCount{
					{Kind: "reduce", Count: 6},
					{Kind: "expand", Count: 4},
					{Kind: "life", Count: 3},
					{Kind: "slow", Count: 2},
					{Kind: "speed", Count: 6},
					{Kind: "duplicate", Count: 2},
				},
				PowerupTail: 4,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArkanoidYAML
}
