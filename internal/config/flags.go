package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagMap       = flag.String("map", "", "Path to a GAT file")
	flagGRF       = flag.String("grf", "", "Path to a GRF archive")
	flagMapName   = flag.String("map-name", "", "Map to load from the GRF archive")
	flagBots      = flag.Int("bots", 0, "Number of simulated characters")
	flagTicks     = flag.Int("ticks", 0, "Ticks to simulate")
	flagDialect   = flag.String("dialect", "", "Server dialect (modern, legacy)")
	flagCrazyMove = flag.String("crazy-move", "", "Enable automation with pattern 1-9 or a")
	flagSync      = flag.Bool("sync", false, "Enable movement sync")
	flagWrite     = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWrite
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Movement.DrawPath = true
	}
	if *flagMap != "" {
		cfg.Map.GATPath = *flagMap
	}
	if *flagGRF != "" {
		cfg.Map.GRFPath = *flagGRF
	}
	if *flagMapName != "" {
		cfg.Map.Name = *flagMapName
	}
	if *flagBots > 0 {
		cfg.Sim.Bots = *flagBots
	}
	if *flagTicks > 0 {
		cfg.Sim.Ticks = *flagTicks
	}
	if *flagDialect != "" {
		cfg.Server.Dialect = *flagDialect
	}
	if *flagCrazyMove != "" {
		cfg.Automation.Enabled = true
		cfg.Automation.CrazyMove = *flagCrazyMove
	}
	if *flagSync {
		cfg.Movement.SyncMovement = true
	}
}
