// Package config provides YAML-based arcade configuration loading and
// difficulty presets.
package config

// Config is the full arcade configuration.
type Config struct {
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Display    DisplayConfig    `yaml:"display"`
	Menu       MenuConfig       `yaml:"menu"`
	Tetris     TetrisConfig     `yaml:"tetris"`
	Snake      SnakeConfig      `yaml:"snake"`
	Tanks      TanksConfig      `yaml:"tanks"`
	Races      RacesConfig      `yaml:"races"`
	Life       LifeConfig       `yaml:"life"`
}

// DisplayConfig tunes how front-ends show the LED colors.
type DisplayConfig struct {
	BrightnessPercent int `yaml:"brightness_percent"` // 100 = palette as-is
}

// MenuConfig defines the title menu pacing.
type MenuConfig struct {
	FrameMs int `yaml:"frame_ms"`
}

// TetrisConfig defines parameters for Tetris.
type TetrisConfig struct {
	FrameMs         int `yaml:"frame_ms"`
	GravityInterval int `yaml:"gravity_interval"` // Accumulated points per row of fall
	SoftDropBonus   int `yaml:"soft_drop_bonus"`  // Extra points per frame while down is held
	SpeedupScore    int `yaml:"speedup_score"`    // Score per extra gravity point
	PreviewRow      int `yaml:"preview_row"`      // Next piece shows once the piece is below this row
	BlinkMs         int `yaml:"blink_ms"`
}

// SnakeConfig defines parameters for Snake.
type SnakeConfig struct {
	FrameMs       int `yaml:"frame_ms"`
	MoveThreshold int `yaml:"move_threshold"` // Step points per cell moved
	Boost         int `yaml:"boost"`          // Step points while pushing along the heading
	Capacity      int `yaml:"capacity"`       // Max body length
	BlinkMs       int `yaml:"blink_ms"`
	PollMs        int `yaml:"poll_ms"`
}

// TanksConfig defines parameters for Tanks.
type TanksConfig struct {
	FrameMs    int `yaml:"frame_ms"`
	Lives      int `yaml:"lives"`
	AIRound    int `yaml:"ai_round"` // Step points per enemy decision
	Missiles   int `yaml:"missiles"` // Missile slots per tank
	Enemies    int `yaml:"enemies"`  // Enemy slots
	SplatterMs int `yaml:"splatter_ms"`
}

// RacesConfig defines parameters for Races.
type RacesConfig struct {
	FrameMs            int `yaml:"frame_ms"`
	Lives              int `yaml:"lives"`
	Ammo               int `yaml:"ammo"`
	InvulnerableFrames int `yaml:"invulnerable_frames"`
	ObstacleOdds       int `yaml:"obstacle_odds"` // 1 in N per frame
	PowerupOdds        int `yaml:"powerup_odds"`  // 1 in N per frame
	BlinkMs            int `yaml:"blink_ms"`
	PollMs             int `yaml:"poll_ms"`
}

// LifeConfig defines parameters for Conway's Life.
type LifeConfig struct {
	FrameMs int `yaml:"frame_ms"`
	Round   int `yaml:"round"` // Frames per generation at speed 1
	Speed   int `yaml:"speed"` // Starting speed, 1-4
}
