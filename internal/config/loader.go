package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "arcade.yaml"

// Load loads the arcade configuration and validates it.
// Search order: customPath -> ~/.arcade/configs/arcade.yaml -> ./configs/arcade.yaml -> embedded default
//
// Every source is decoded on top of Default, so a file only needs the keys it changes.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if loaded, ok := decodeOver(data); ok {
				return loaded, loaded.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if loaded, ok := decodeOver(data); ok {
			return loaded, loaded.Validate()
		}
	}

	// Use embedded default YAML
	if loaded, ok := decodeOver(defaultArcadeYAML); ok {
		return loaded, loaded.Validate()
	}
	return Default(), nil
}

func decodeOver(data []byte) (Config, bool) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks delays and odds are positive and sizes fit the fixed arenas.
func (c Config) Validate() error {
	if _, err := ParsePreset(string(c.Difficulty)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	positive := map[string]int{
		"menu.frame_ms":       c.Menu.FrameMs,
		"tetris.frame_ms":     c.Tetris.FrameMs,
		"tetris.blink_ms":     c.Tetris.BlinkMs,
		"snake.frame_ms":      c.Snake.FrameMs,
		"snake.blink_ms":      c.Snake.BlinkMs,
		"snake.poll_ms":       c.Snake.PollMs,
		"tanks.frame_ms":      c.Tanks.FrameMs,
		"tanks.splatter_ms":   c.Tanks.SplatterMs,
		"races.frame_ms":      c.Races.FrameMs,
		"races.blink_ms":      c.Races.BlinkMs,
		"races.poll_ms":       c.Races.PollMs,
		"races.obstacle_odds": c.Races.ObstacleOdds,
		"races.powerup_odds":  c.Races.PowerupOdds,
		"life.frame_ms":       c.Life.FrameMs,
	}
	for key, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, key, v)
		}
	}

	switch {
	case c.Tetris.GravityInterval <= 0:
		return fmt.Errorf("%w: tetris.gravity_interval must be positive", ErrInvalid)
	case c.Snake.MoveThreshold <= 0:
		return fmt.Errorf("%w: snake.move_threshold must be positive", ErrInvalid)
	case c.Snake.Capacity < 3 || c.Snake.Capacity > MaxSnakeBody:
		return fmt.Errorf("%w: snake.capacity must be within [3, %d]", ErrInvalid, MaxSnakeBody)
	case c.Tanks.Missiles < 1 || c.Tanks.Missiles > MaxTankMissiles:
		return fmt.Errorf("%w: tanks.missiles must be within [1, %d]", ErrInvalid, MaxTankMissiles)
	case c.Tanks.Enemies < 1 || c.Tanks.Enemies > MaxTankEnemies:
		return fmt.Errorf("%w: tanks.enemies must be within [1, %d]", ErrInvalid, MaxTankEnemies)
	case c.Tanks.Lives < 1 || c.Races.Lives < 1:
		return fmt.Errorf("%w: lives must be at least 1", ErrInvalid)
	case c.Tanks.AIRound <= 0:
		return fmt.Errorf("%w: tanks.ai_round must be positive", ErrInvalid)
	case c.Life.Round <= 0:
		return fmt.Errorf("%w: life.round must be positive", ErrInvalid)
	case c.Life.Speed < 1 || c.Life.Speed > 4:
		return fmt.Errorf("%w: life.speed must be within [1, 4]", ErrInvalid)
	case c.Display.BrightnessPercent <= 0:
		return fmt.Errorf("%w: display.brightness_percent must be positive", ErrInvalid)
	}
	return nil
}
