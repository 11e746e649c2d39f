package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "arkanoid.yaml"

// ErrNoRounds is returned when a configuration defines no rounds.
var ErrNoRounds = errors.New("config: no rounds defined")

// LoadArkanoid loads the game configuration.
// Search order: customPath -> ~/.arkanoid/configs/arkanoid.yaml -> ./configs/arkanoid.yaml -> embedded default
func LoadArkanoid(customPath string) (ArkanoidConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ArkanoidConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return ArkanoidConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultArkanoidYAML)
	if err != nil {
		return DefaultArkanoidConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the hardcoded defaults, so a file only needs the
// keys it changes. A file that lists rounds replaces the default rounds.
func Parse(data []byte) (ArkanoidConfig, error) {
	cfg := DefaultArkanoidConfig()
	cfg.Rounds = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ArkanoidConfig{}, err
	}
	if len(cfg.Rounds) == 0 {
		cfg.Rounds = DefaultArkanoidConfig().Rounds
	}
	if err := cfg.Validate(); err != nil {
		return ArkanoidConfig{}, err
	}
	return cfg, nil
}

// Validate checks values the simulation cannot run without.
func (c ArkanoidConfig) Validate() error {
	if len(c.Rounds) == 0 {
		return ErrNoRounds
	}
	if len(c.Paddle.BounceAngles) != 6 {
		return fmt.Errorf("config: paddle.bounce_angles needs 6 entries, got %d", len(c.Paddle.BounceAngles))
	}
	if c.Ball.TopSpeed < c.Ball.BaseSpeed {
		return fmt.Errorf("config: ball.top_speed %.2f below base_speed %.2f", c.Ball.TopSpeed, c.Ball.BaseSpeed)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("config: invalid display %dx%d", c.Display.Width, c.Display.Height)
	}
	for i, r := range c.Rounds {
		if len(r.Layout) == 0 {
			return fmt.Errorf("config: round %d (%s) has no layout", i+1, r.Name)
		}
	}
	return nil
}

// userConfigPath returns the path to a config file in the user's config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arkanoid", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ArkanoidConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Ball.BaseSpeed -= 1
		cfg.Gameplay.TimeLimit += 50
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Ball.BaseSpeed += 1
		cfg.Enemy.Speed += 1
	}
	if cfg.Ball.TopSpeed < cfg.Ball.BaseSpeed {
		cfg.Ball.TopSpeed = cfg.Ball.BaseSpeed
	}
}

// ParsePreset validates a preset name from the command line.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q", name)
	}
}
