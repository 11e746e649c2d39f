package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if len(cfg.Rounds) < 2 {
		t.Fatalf("expected several rounds, got %d", len(cfg.Rounds))
	}
	if cfg.Rounds[0].NumEnemies != 8 || cfg.Rounds[0].EnemyRelease != 0.25 {
		t.Errorf("round 1 enemies = %d at %.2f", cfg.Rounds[0].NumEnemies, cfg.Rounds[0].EnemyRelease)
	}

	hard := DefaultArkanoidConfig()
	if !reflect.DeepEqual(cfg.Ball, hard.Ball) || !reflect.DeepEqual(cfg.Paddle, hard.Paddle) {
		t.Error("embedded YAML and hardcoded defaults disagree on ball/paddle tuning")
	}
	if !reflect.DeepEqual(cfg.Rounds[0], hard.Rounds[0]) {
		t.Errorf("round 1 differs:\n yaml: %+v\n code: %+v", cfg.Rounds[0], hard.Rounds[0])
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("ball:\n  base_speed: 9\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ball.BaseSpeed != 9 {
		t.Errorf("BaseSpeed = %v, expected 9", cfg.Ball.BaseSpeed)
	}
	if cfg.Ball.TopSpeed != 12 || cfg.Paddle.Speed != 10 {
		t.Error("unspecified keys should keep their defaults")
	}
	if len(cfg.Rounds) != 1 {
		t.Errorf("missing rounds should fall back to the built-in round, got %d", len(cfg.Rounds))
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "ball: [unclosed"},
		{"wrong bounce table", "paddle:\n  bounce_angles: [1, 2, 3]\n"},
		{"top below base", "ball:\n  base_speed: 20\n"},
		{"round without layout", "rounds:\n  - name: empty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidateNoRounds(t *testing.T) {
	cfg := DefaultArkanoidConfig()
	cfg.Rounds = nil
	if err := cfg.Validate(); !errors.Is(err, ErrNoRounds) {
		t.Errorf("Validate() = %v, expected ErrNoRounds", err)
	}
}

func TestLoadArkanoidCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  lives: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadArkanoid(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Gameplay.Lives)
	}

	if _, err := LoadArkanoid(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		lives     int
		baseSpeed float64
	}{
		{DifficultyEasy, 5, 7},
		{DifficultyNormal, 3, 8},
		{DifficultyHard, 2, 9},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultArkanoidConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Gameplay.Lives != tt.lives || cfg.Ball.BaseSpeed != tt.baseSpeed {
				t.Errorf("lives=%d base=%v, expected %d/%v", cfg.Gameplay.Lives, cfg.Ball.BaseSpeed, tt.lives, tt.baseSpeed)
			}
			if cfg.Ball.TopSpeed < cfg.Ball.BaseSpeed {
				t.Error("top speed below base speed after preset")
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("unknown preset should fail")
	}
}
