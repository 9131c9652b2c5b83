// Package config defines the configuration structure for the multithread-server.
//
// Configuration is organized into logical sections (Server, Pool) plus the
// logging settings. Defaults come from `default` struct tags applied by
// github.com/creasty/defaults through the generated constructors. The CLI
// overlays flags and MTS_* environment variables through viper and unmarshals
// the result using the `mapstructure` tags.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - TCP listener and static content settings
//	├── Pool           - Worker pool settings
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌───────────────────────┬────────────────┬───────────────────────────────────┐
//	│ Field                 │ Default        │ Description                       │
//	├───────────────────────┼────────────────┼───────────────────────────────────┤
//	│ Address               │ "127.0.0.1"    │ Listen address                    │
//	│ HTTPPort              │ 8000           │ Listen port (0 picks a free port) │
//	│ StaticsFolder         │ "static"       │ Folder holding the served files   │
//	│ SleepDuration         │ 5s             │ Delay applied by GET /sleep       │
//	│ ReadTimeout           │ 10s            │ Deadline for reading one request  │
//	│ ResponseAuthorization │ "Bearer admin" │ Authorization response header     │
//	└───────────────────────┴────────────────┴───────────────────────────────────┘
//
// ResponseAuthorization lets a fronting proxy test its protected routes against
// this server. An empty value disables the header.
//
// # Pool Configuration
//
//	┌──────────────────┬───────────┬──────────────────────────────────────────┐
//	│ Field            │ Default   │ Description                              │
//	├──────────────────┼───────────┼──────────────────────────────────────────┤
//	│ NumWorkers       │ 4         │ Number of workers, must be > 0           │
//	│ FaultPolicy      │ "recover" │ "recover" or "terminate"                 │
//	│ Replenish        │ false     │ Replace workers terminated by a panic    │
//	│ LockOSThread     │ false     │ Pin each worker to its own OS thread     │
//	└──────────────────┴───────────┴──────────────────────────────────────────┘
//
// Validate deliberately accepts any NumWorkers value: a non-positive count is
// rejected by threadpool.New with a PoolCreationError.
//
// # Code Generation
//
// The package uses optgen to generate functional option helpers:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Pool
//
// Generated helpers include:
//
//   - NewConfigurationWithOptionsAndDefaults(...ConfigurationOption) - Create with defaults + options
//   - WithServer(Server), WithPool(Pool), WithLogLevel(string), etc. - Set fields
//   - NewServerWithOptionsAndDefaults, NewPoolWithOptionsAndDefaults - Build one section
//   - DebugMap() - Returns map for debug logging (respects debugmap tags)
//
// # Usage Example
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithPool(*config.NewPoolWithOptionsAndDefaults(
//	        config.WithNumWorkers(8),
//	    )),
//	)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Debug Logging
//
// Fields are tagged `debugmap:"visible"` except ResponseAuthorization, which
// is `debugmap:"sensitive"` and never logged in clear:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
