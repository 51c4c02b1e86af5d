package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
	Meta       MetaConfig       `toml:"meta"`
	Player     PlayerConfig     `toml:"player"`
	Spawn      SpawnConfig      `toml:"spawn"`
	XP         XPConfig         `toml:"xp"`
	Bosses     BossesConfig     `toml:"bosses"`
	Data       DataConfig       `toml:"data"`
	Scripting  ScriptingConfig  `toml:"scripting"`
}

type SimulationConfig struct {
	TickRate    Duration `toml:"tick_rate"`
	Seed        int64    `toml:"seed"`         // 0 = seed from wall clock
	MaxDuration Duration `toml:"max_duration"` // 0 = unbounded
	HardMode    bool     `toml:"hard_mode"`    // honored only when unlocked by meta progression
	MaxWeapons  int      `toml:"max_weapons"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// MetaConfig selects the meta-progression store backend.
type MetaConfig struct {
	Driver          string   `toml:"driver"` // "postgres", "sqlite" or "none"
	DSN             string   `toml:"dsn"`
	MaxOpenConns    int      `toml:"max_open_conns"`
	MaxIdleConns    int      `toml:"max_idle_conns"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
	QueueSize       int      `toml:"queue_size"`
	WriteTimeout    Duration `toml:"write_timeout"`
}

type PlayerConfig struct {
	MaxHealth      float64  `toml:"max_health"`
	Speed          float64  `toml:"speed"`
	Invulnerable   Duration `toml:"invulnerable"`
	PickupRadius   float64  `toml:"pickup_radius"`
	RegenPerSecond float64  `toml:"regen_per_second"`
	Radius         float64  `toml:"radius"`
	Smoothing      Duration `toml:"smoothing"`
	StartWeapon    string   `toml:"start_weapon"`
}

type SpawnConfig struct {
	BaseRatePerSecond     float64  `toml:"base_rate_per_second"`
	IncreasePerTenSeconds float64  `toml:"increase_per_ten_seconds"`
	BurstMin              int      `toml:"burst_min"`
	BurstMax              int      `toml:"burst_max"`
	BurstInterval         Duration `toml:"burst_interval"`
	MaxAlive              int      `toml:"max_alive"`
	ViewWidth             float64  `toml:"view_width"`
	ViewHeight            float64  `toml:"view_height"`
	Padding               float64  `toml:"padding"`
	WeightHorizon         Duration `toml:"weight_horizon"`
	EliteAfter            Duration `toml:"elite_after"`
	EliteChance           float64  `toml:"elite_chance"`
	EliteMultiplier       float64  `toml:"elite_multiplier"`
	DeathWindow           Duration `toml:"death_window"`
}

type XPConfig struct {
	BaseThreshold int     `toml:"base_threshold"`
	GrowthFactor  float64 `toml:"growth_factor"`
	MaxLevel      int     `toml:"max_level"`
	GemSpeed      float64 `toml:"gem_speed"`
	GemAccel      float64 `toml:"gem_accel"`
	GemDecel      float64 `toml:"gem_decel"`
	GemRadius     float64 `toml:"gem_radius"`
}

type BossesConfig struct {
	Warning       Duration        `toml:"warning"`
	ContactTick   Duration        `toml:"contact_tick"`
	SpawnPadding  float64         `toml:"spawn_padding"`
	ChestLifetime Duration        `toml:"chest_lifetime"`
	ChestRadius   float64         `toml:"chest_radius"`
	Schedule      []BossScheduled `toml:"schedule"`
}

// BossScheduled is one timed boss encounter.
type BossScheduled struct {
	At    Duration `toml:"at"`
	Type  string   `toml:"type"`
	Final bool     `toml:"final"`
}

type DataConfig struct {
	YAMLDir string `toml:"yaml_dir"` // empty = built-in content
}

type ScriptingConfig struct {
	ScriptsDir string `toml:"scripts_dir"` // empty = built-in scripts
}

// Duration decodes TOML strings such as "1.5s" or "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func D(v time.Duration) Duration { return Duration{Duration: v} }

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values that would make the simulation misbehave mid-run.
func (c *Config) Validate() error {
	var errs []error
	if c.Simulation.TickRate.Duration <= 0 {
		errs = append(errs, errors.New("simulation.tick_rate must be positive"))
	}
	if c.Spawn.BurstMin < 1 || c.Spawn.BurstMax < c.Spawn.BurstMin {
		errs = append(errs, fmt.Errorf("spawn burst range [%d,%d] invalid", c.Spawn.BurstMin, c.Spawn.BurstMax))
	}
	if c.Spawn.MaxAlive < 1 {
		errs = append(errs, errors.New("spawn.max_alive must be at least 1"))
	}
	if c.Spawn.BaseRatePerSecond < 0 || c.Spawn.IncreasePerTenSeconds < 0 {
		errs = append(errs, errors.New("spawn rates must not be negative"))
	}
	if c.Spawn.EliteChance < 0 || c.Spawn.EliteChance > 1 {
		errs = append(errs, fmt.Errorf("spawn.elite_chance %v outside [0,1]", c.Spawn.EliteChance))
	}
	if c.XP.BaseThreshold < 1 || c.XP.GrowthFactor < 1 {
		errs = append(errs, errors.New("xp.base_threshold must be >= 1 and xp.growth_factor >= 1"))
	}
	if c.Player.MaxHealth <= 0 || c.Player.Speed <= 0 {
		errs = append(errs, errors.New("player.max_health and player.speed must be positive"))
	}
	switch c.Meta.Driver {
	case "postgres", "sqlite", "none", "":
	default:
		errs = append(errs, fmt.Errorf("meta.driver %q unknown", c.Meta.Driver))
	}
	for i, b := range c.Bosses.Schedule {
		if b.At.Duration < c.Bosses.Warning.Duration {
			errs = append(errs, fmt.Errorf("bosses.schedule[%d] at %s precedes the warning window", i, b.At))
		}
		if b.Type == "" {
			errs = append(errs, fmt.Errorf("bosses.schedule[%d] has no type", i))
		}
	}
	return errors.Join(errs...)
}

// Default returns the built-in tuning.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:    D(16 * time.Millisecond),
			MaxDuration: D(35 * time.Minute),
			MaxWeapons:  6,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Meta: MetaConfig{
			Driver:          "sqlite",
			DSN:             "file:nightfall-meta.db?_busy_timeout=5000",
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: D(30 * time.Minute),
			QueueSize:       64,
			WriteTimeout:    D(3 * time.Second),
		},
		Player: PlayerConfig{
			MaxHealth:      100,
			Speed:          190,
			Invulnerable:   D(450 * time.Millisecond),
			PickupRadius:   90,
			RegenPerSecond: 0,
			Radius:         12,
			Smoothing:      D(70 * time.Millisecond),
			StartWeapon:    "whip",
		},
		Spawn: SpawnConfig{
			BaseRatePerSecond:     0.6,
			IncreasePerTenSeconds: 0.08,
			BurstMin:              2,
			BurstMax:              5,
			BurstInterval:         D(120 * time.Millisecond),
			MaxAlive:              100,
			ViewWidth:             800,
			ViewHeight:            600,
			Padding:               30,
			WeightHorizon:         D(30 * time.Second),
			EliteAfter:            D(5 * time.Minute),
			EliteChance:           0.04,
			EliteMultiplier:       2.5,
			DeathWindow:           D(120 * time.Millisecond),
		},
		XP: XPConfig{
			BaseThreshold: 6,
			GrowthFactor:  1.3,
			MaxLevel:      50,
			GemSpeed:      320,
			GemAccel:      900,
			GemDecel:      600,
			GemRadius:     8,
		},
		Bosses: BossesConfig{
			Warning:       D(5 * time.Second),
			ContactTick:   D(250 * time.Millisecond),
			SpawnPadding:  60,
			ChestLifetime: D(45 * time.Second),
			ChestRadius:   18,
			Schedule: []BossScheduled{
				{At: D(5 * time.Minute), Type: "bone_dragon"},
				{At: D(10 * time.Minute), Type: "vampire_lord"},
				{At: D(15 * time.Minute), Type: "bone_dragon"},
				{At: D(20 * time.Minute), Type: "vampire_lord"},
				{At: D(30 * time.Minute), Type: "death_itself", Final: true},
			},
		},
	}
}
