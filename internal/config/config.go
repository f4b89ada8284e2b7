// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// Size is a width/height pair in arena units.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect is an arena-space rectangle.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"grid"`
	Start struct {
		X int `yaml:"x"`
		Y int `yaml:"y"`
	} `yaml:"start"`
	Move          IntervalConfig   `yaml:"move"`
	FoodPoints    int              `yaml:"food_points"`
	FoodsPerLevel int              `yaml:"foods_per_level"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// IntervalConfig describes a step interval that shortens per level.
type IntervalConfig struct {
	BaseMs float64 `yaml:"base_ms"`
	StepMs float64 `yaml:"step_ms"` // reduction per level above 1
	MinMs  float64 `yaml:"min_ms"`
}

// PongConfig contains all configuration for the Pong game.
type PongConfig struct {
	Arena  Size `yaml:"arena"`
	Paddle struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
		Speed  float64 `yaml:"speed"`
	} `yaml:"paddle"`
	Ball struct {
		Radius      float64 `yaml:"radius"`
		ServeSpeed  float64 `yaml:"serve_speed"`
		ServeSpread float64 `yaml:"serve_spread"`
		Spin        float64 `yaml:"spin"`
	} `yaml:"ball"`
	CPU struct {
		Speed    float64 `yaml:"speed"`
		DeadZone float64 `yaml:"dead_zone"`
		Accuracy float64 `yaml:"accuracy"` // 1.0 tracks the ball exactly
	} `yaml:"cpu"`
	WinScore   int              `yaml:"win_score"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TicTacToeConfig contains all configuration for Tic-Tac-Toe.
type TicTacToeConfig struct {
	CPU struct {
		Enabled       bool    `yaml:"enabled"`
		MistakeChance float64 `yaml:"mistake_chance"`
	} `yaml:"cpu"`
	RoundsToWin int              `yaml:"rounds_to_win"`
	WinPoints   int              `yaml:"win_points"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// TetrisConfig contains all configuration for Tetris.
type TetrisConfig struct {
	Board struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"board"`
	Fall          IntervalConfig   `yaml:"fall"`
	LinePoints    int              `yaml:"line_points"`
	LinesPerLevel int              `yaml:"lines_per_level"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// LaneConfig describes a band of moving obstacles.
type LaneConfig struct {
	Lanes    int     `yaml:"lanes"`
	Top      float64 `yaml:"top"`
	Speed    float64 `yaml:"speed"`
	PerLevel float64 `yaml:"per_level"`
}

// FroggerConfig contains all configuration for Frogger.
type FroggerConfig struct {
	Arena  Size    `yaml:"arena"`
	StepMs float64 `yaml:"step_ms"`
	Frog   struct {
		Size   float64 `yaml:"size"`
		StartX float64 `yaml:"start_x"`
		StartY float64 `yaml:"start_y"`
		HopX   float64 `yaml:"hop_x"`
		HopY   float64 `yaml:"hop_y"`
	} `yaml:"frog"`
	LaneHeight float64 `yaml:"lane_height"`
	Road       struct {
		LaneConfig  `yaml:",inline"`
		CarsPerLane int     `yaml:"cars_per_lane"`
		Car         Size    `yaml:"car"`
		Spacing     float64 `yaml:"spacing"`
		OddOffset   float64 `yaml:"odd_offset"`
	} `yaml:"road"`
	Water struct {
		LaneConfig    `yaml:",inline"`
		LogWidth      float64 `yaml:"log_width"`
		TurtleWidth   float64 `yaml:"turtle_width"`
		ItemHeight    float64 `yaml:"item_height"`
		SubmergeTicks float64 `yaml:"submerge_ticks"`
	} `yaml:"water"`
	Zones struct {
		WaterTop    float64 `yaml:"water_top"`
		WaterBottom float64 `yaml:"water_bottom"`
		RoadTop     float64 `yaml:"road_top"`
		RoadBottom  float64 `yaml:"road_bottom"`
		Goal        float64 `yaml:"goal"`
	} `yaml:"zones"`
	GoalPoints int              `yaml:"goal_points"`
	Lives      int              `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PacmanConfig contains all configuration for Pac-Man.
type PacmanConfig struct {
	PacmanEvery     int     `yaml:"pacman_every"`
	GhostEvery      int     `yaml:"ghost_every"`
	ScatterTicks    int     `yaml:"scatter_ticks"`
	ChaseTicks      int     `yaml:"chase_ticks"`
	FrightenedTicks int     `yaml:"frightened_ticks"`
	ExitTimers      []int   `yaml:"exit_timers"`
	ContactRadius   float64 `yaml:"contact_radius"`
	Points          struct {
		Dot    int `yaml:"dot"`
		Pellet int `yaml:"pellet"`
		Ghost  int `yaml:"ghost"`
	} `yaml:"points"`
	Lives      int              `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShotConfig describes a projectile.
type ShotConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// GalagaConfig contains all configuration for Galaga.
type GalagaConfig struct {
	Arena  Size    `yaml:"arena"`
	StepMs float64 `yaml:"step_ms"`
	Player struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
		Y      float64 `yaml:"y"`
		Speed  float64 `yaml:"speed"`
	} `yaml:"player"`
	Bullet      ShotConfig `yaml:"bullet"`
	EnemyBullet ShotConfig `yaml:"enemy_bullet"`
	Formation   struct {
		Cols     int     `yaml:"cols"`
		Rows     int     `yaml:"rows"`
		StartX   float64 `yaml:"start_x"`
		StartY   float64 `yaml:"start_y"`
		SpacingX float64 `yaml:"spacing_x"`
		SpacingY float64 `yaml:"spacing_y"`
		Sway     float64 `yaml:"sway"`
	} `yaml:"formation"`
	Points struct {
		Boss      int `yaml:"boss"`
		Butterfly int `yaml:"butterfly"`
		Bee       int `yaml:"bee"`
	} `yaml:"points"`
	Dive struct {
		ChancePerLevel float64 `yaml:"chance_per_level"`
		Steps          int     `yaml:"steps"`
		Amplitude      float64 `yaml:"amplitude"`
		Depth          float64 `yaml:"depth"`
		ReturnSpeed    float64 `yaml:"return_speed"`
	} `yaml:"dive"`
	Fire struct {
		Chance   float64 `yaml:"chance"`
		MinDelay float64 `yaml:"min_delay"`
		MaxDelay float64 `yaml:"max_delay"`
	} `yaml:"fire"`
	WavesPerLevel int              `yaml:"waves_per_level"`
	Lives         int              `yaml:"lives"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// JoustConfig contains all configuration for Joust.
type JoustConfig struct {
	Arena   Size    `yaml:"arena"`
	Gravity float64 `yaml:"gravity"`
	Flap    struct {
		Power    float64 `yaml:"power"`
		Cooldown int     `yaml:"cooldown"`
	} `yaml:"flap"`
	Player struct {
		Width    float64 `yaml:"width"`
		Height   float64 `yaml:"height"`
		StartX   float64 `yaml:"start_x"`
		StartY   float64 `yaml:"start_y"`
		Speed    float64 `yaml:"speed"`
		Accel    float64 `yaml:"accel"`
		Friction float64 `yaml:"friction"`
		MaxFall  float64 `yaml:"max_fall"`
		Bounce   float64 `yaml:"bounce"`
	} `yaml:"player"`
	Enemy struct {
		Count    int     `yaml:"count"`
		Width    float64 `yaml:"width"`
		Height   float64 `yaml:"height"`
		StartX   float64 `yaml:"start_x"`
		SpacingX float64 `yaml:"spacing_x"`
		StartY   float64 `yaml:"start_y"`
		MaxVX    float64 `yaml:"max_vx"`
		MaxVY    float64 `yaml:"max_vy"`
	} `yaml:"enemy"`
	Platforms   []Rect           `yaml:"platforms"`
	StompPoints int              `yaml:"stomp_points"`
	WaveBonus   int              `yaml:"wave_bonus"`
	Lives       int              `yaml:"lives"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// CrossyConfig contains all configuration for Crossy Road.
type CrossyConfig struct {
	Bound      float64 `yaml:"bound"`
	WrapAt     float64 `yaml:"wrap_at"`
	Hop        float64 `yaml:"hop"`
	JumpStep   float64 `yaml:"jump_step"`
	JumpHeight float64 `yaml:"jump_height"`
	Road       struct {
		Lanes      []float64 `yaml:"lanes"`
		MinSpeed   float64   `yaml:"min_speed"`
		SpeedRange float64   `yaml:"speed_range"`
		PerLevel   float64   `yaml:"per_level"`
		HitX       float64   `yaml:"hit_x"`
		HitZ       float64   `yaml:"hit_z"`
	} `yaml:"road"`
	Water struct {
		Lanes      []float64 `yaml:"lanes"`
		MinSpeed   float64   `yaml:"min_speed"`
		SpeedRange float64   `yaml:"speed_range"`
		SupportX   float64   `yaml:"support_x"`
	} `yaml:"water"`
	GoalPoints int              `yaml:"goal_points"`
	Lives      int              `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SpaceDefenderConfig contains all configuration for Space Defender.
type SpaceDefenderConfig struct {
	Arena  Size `yaml:"arena"`
	Player struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
		Speed  float64 `yaml:"speed"`
	} `yaml:"player"`
	Bullet ShotConfig `yaml:"bullet"`
	Fire   struct {
		Every      int `yaml:"every"`
		RapidEvery int `yaml:"rapid_every"`
	} `yaml:"fire"`
	Enemy struct {
		Size           Size    `yaml:"size"`
		FastSize       Size    `yaml:"fast_size"`
		SpeedRange     float64 `yaml:"speed_range"`
		FastChance     float64 `yaml:"fast_chance"`
		FastMultiplier float64 `yaml:"fast_multiplier"`
		ToughChance    float64 `yaml:"tough_chance"`
		BasicPoints    int     `yaml:"basic_points"`
		FastPoints     int     `yaml:"fast_points"`
	} `yaml:"enemy"`
	Wave struct {
		Quota           int     `yaml:"quota"`
		QuotaPerWave    float64 `yaml:"quota_per_wave"`
		SpawnInterval   int     `yaml:"spawn_interval"`
		IntervalPerWave int     `yaml:"interval_per_wave"`
		BaseSpeed       float64 `yaml:"base_speed"`
		SpeedPerWave    float64 `yaml:"speed_per_wave"`
		MaxSpeed        float64 `yaml:"max_speed"`
		BonusPerWave    int     `yaml:"bonus_per_wave"`
	} `yaml:"wave"`
	Pickup struct {
		Size           float64 `yaml:"size"`
		Speed          float64 `yaml:"speed"`
		Life           int     `yaml:"life"`
		DropChance     float64 `yaml:"drop_chance"`
		Points         int     `yaml:"points"`
		RapidFireTicks int     `yaml:"rapid_fire_ticks"`
		MaxLives       int     `yaml:"max_lives"`
		MultishotBoost float64 `yaml:"multishot_boost"`
	} `yaml:"pickup"`
	Particles struct {
		OnHit   int     `yaml:"on_hit"`
		OnCrash int     `yaml:"on_crash"`
		Life    int     `yaml:"life"`
		Spread  float64 `yaml:"spread"`
		Gravity float64 `yaml:"gravity"`
	} `yaml:"particles"`
	Lives      int              `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines the difficulty tier and whether per-level
// scaling applies.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`       // false freezes level scaling at level 1
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.3
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
