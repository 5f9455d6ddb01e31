package config

import (
	_ "embed"
)

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

// Arena capacities. Configured sizes may be smaller, never larger.
const (
	MaxSnakeBody    = 32
	MaxTankMissiles = 8
	MaxTankEnemies  = 4
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Difficulty: DifficultyNormal,
		Display:    DisplayConfig{BrightnessPercent: 100},
		Menu:       MenuConfig{FrameMs: 100},
		Tetris: TetrisConfig{
			FrameMs:         50,
			GravityInterval: 10,
			SoftDropBonus:   10,
			SpeedupScore:    20,
			PreviewRow:      11,
			BlinkMs:         500,
		},
		Snake: SnakeConfig{
			FrameMs:       20,
			MoveThreshold: 30,
			Boost:         5,
			Capacity:      MaxSnakeBody,
			BlinkMs:       200,
			PollMs:        50,
		},
		Tanks: TanksConfig{
			FrameMs:    100,
			Lives:      3,
			AIRound:    10,
			Missiles:   MaxTankMissiles,
			Enemies:    MaxTankEnemies,
			SplatterMs: 200,
		},
		Races: RacesConfig{
			FrameMs:            20,
			Lives:              3,
			Ammo:               5,
			InvulnerableFrames: 20,
			ObstacleOdds:       30,
			PowerupOdds:        50,
			BlinkMs:            200,
			PollMs:             50,
		},
		Life: LifeConfig{
			FrameMs: 50,
			Round:   20,
			Speed:   1,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultArcadeYAML
}
