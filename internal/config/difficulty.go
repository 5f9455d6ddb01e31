package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// DelayPercent returns how a preset scales every frame delay.
func DelayPercent(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 125
	case DifficultyHard:
		return 75
	default:
		return 100
	}
}

// IsFixedPreset returns true if the preset disables score-driven speed-ups.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// FrameDelay scales a base delay in milliseconds by the active preset.
// The result is never below 1.
func (c Config) FrameDelay(ms int) uint64 {
	d := ms * DelayPercent(c.Difficulty) / 100
	if d < 1 {
		d = 1
	}
	return uint64(d)
}

// Progressive reports whether games should speed up as the score grows.
func (c Config) Progressive() bool {
	return !IsFixedPreset(c.Difficulty)
}

// Resolve applies the preset named by override, or the one cfg names when
// override is empty. Preset lives and ammo replace the configured values.
func Resolve(cfg Config, override string) (Config, error) {
	name := string(cfg.Difficulty)
	if override != "" {
		name = override
	}
	preset, err := ParsePreset(name)
	if err != nil {
		return cfg, err
	}
	ApplyPreset(&cfg, preset)
	return cfg, nil
}

// ApplyPreset sets the preset and adjusts lives and ammo for it.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty = preset

	switch preset {
	case DifficultyEasy:
		cfg.Tanks.Lives = 5
		cfg.Races.Lives = 5
	case DifficultyHard:
		cfg.Tanks.Lives = 2
		cfg.Races.Lives = 2
		cfg.Races.Ammo = 3
	}
}
