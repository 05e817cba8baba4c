// Package config handles simulator configuration loading and management.
package config

import "time"

// Config holds all settings consumed by the movement core and navsim.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Movement   MovementConfig   `yaml:"movement"`
	Combat     CombatConfig     `yaml:"combat"`
	Automation AutomationConfig `yaml:"automation"`
	Map        MapConfig        `yaml:"map"`
	Sim        SimConfig        `yaml:"sim"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig selects server-specific behaviour.
type ServerConfig struct {
	Dialect string `yaml:"dialect"` // "modern" or "legacy"
}

// MovementConfig holds position sync and navigation settings.
type MovementConfig struct {
	DriftThreshold int  `yaml:"drift_threshold"` // 0 = dialect default
	SyncMovement   bool `yaml:"sync_movement"`
	DrawPath       bool `yaml:"draw_path"`
}

// CombatConfig holds targeting and attack settings.
type CombatConfig struct {
	AttackType          int  `yaml:"attack_type"`        // 0..3
	AttackWeaponType    int  `yaml:"attack_weapon_type"` // 1..3
	PvPPolicy           int  `yaml:"pvp_policy"`         // 0..3
	TargetOnlyReachable bool `yaml:"target_only_reachable"`
	TargetDeadPlayers   bool `yaml:"target_dead_players"`
	ServerAttack        bool `yaml:"server_attack"`
	MoveToTargetType    int  `yaml:"move_to_target_type"` // 0..6
	AttackRange         int  `yaml:"attack_range"`        // -1 = from equipment
	PickUpType          int  `yaml:"pick_up_type"`        // 0..6
	UnarmedRange        int  `yaml:"unarmed_range"`       // pixels
	AttackMoving        bool `yaml:"attack_moving"`       // keep attacking while walking
	AttackNext          bool `yaml:"attack_next"`         // keep attacking after target dies
}

// AutomationConfig holds crazy move settings.
type AutomationConfig struct {
	Enabled   bool   `yaml:"enabled"`
	CrazyMove string `yaml:"crazy_move"` // "1".."9" or "a"
	Program   string `yaml:"program"`
}

// MapConfig describes the simulated map.
type MapConfig struct {
	GATPath string `yaml:"gat_path"` // empty = open grid
	GRFPath string `yaml:"grf_path"` // archive holding data/<name>.gat
	Name    string `yaml:"name"`     // map name inside the archive
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Border  bool   `yaml:"border"`
}

// SimConfig holds navsim run settings.
type SimConfig struct {
	Bots     int           `yaml:"bots"`
	Ticks    int           `yaml:"ticks"`
	TickRate time.Duration `yaml:"tick_rate"`
	Seed     uint64        `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Dialect: "modern",
		},
		Movement: MovementConfig{
			DriftThreshold: 0,
			SyncMovement:   false,
			DrawPath:       false,
		},
		Combat: CombatConfig{
			AttackType:          0,
			AttackWeaponType:    1,
			PvPPolicy:           0,
			TargetOnlyReachable: true,
			TargetDeadPlayers:   false,
			ServerAttack:        true,
			MoveToTargetType:    6,
			AttackRange:         -1,
			PickUpType:          3,
			UnarmedRange:        48,
			AttackMoving:        true,
			AttackNext:          false,
		},
		Automation: AutomationConfig{
			Enabled:   false,
			CrazyMove: "1",
			Program:   "mumrsonmdmlon",
		},
		Map: MapConfig{
			GATPath: "",
			GRFPath: "",
			Name:    "",
			Width:   64,
			Height:  64,
			Border:  true,
		},
		Sim: SimConfig{
			Bots:     4,
			Ticks:    200,
			TickRate: 10 * time.Millisecond,
			Seed:     1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
