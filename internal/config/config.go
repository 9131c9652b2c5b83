package config

import (
	"fmt"
	"time"

	"github.com/kubev2v/multithread-server/pkg/threadpool"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Pool

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Configuration struct {
	Server    Server `mapstructure:"server" debugmap:"visible"`
	Pool      Pool   `mapstructure:"pool" debugmap:"visible"`
	LogFormat string `mapstructure:"log-format" debugmap:"visible" default:"console"`
	LogLevel  string `mapstructure:"log-level" debugmap:"visible" default:"debug"`
}

type Server struct {
	Address       string        `mapstructure:"address" debugmap:"visible" default:"127.0.0.1"`
	HTTPPort      int           `mapstructure:"http-port" debugmap:"visible" default:"8000"`
	StaticsFolder string        `mapstructure:"statics-folder" debugmap:"visible" default:"static"`
	SleepDuration time.Duration `mapstructure:"sleep-duration" debugmap:"visible" default:"5s"`
	ReadTimeout   time.Duration `mapstructure:"read-timeout" debugmap:"visible" default:"10s"`
	// ResponseAuthorization is sent as the Authorization header of every
	// response. Empty disables the header.
	ResponseAuthorization string `mapstructure:"response-authorization" debugmap:"sensitive" default:"Bearer admin"`
}

type Pool struct {
	NumWorkers   int    `mapstructure:"num-workers" debugmap:"visible" default:"4"`
	FaultPolicy  string `mapstructure:"fault-policy" debugmap:"visible" default:"recover"`
	Replenish    bool   `mapstructure:"replenish" debugmap:"visible"`
	LockOSThread bool   `mapstructure:"lock-os-thread" debugmap:"visible"`
}

// Validate checks the configuration. The worker count is left to the pool,
// which reports a non-positive size with its own error.
func (c *Configuration) Validate() error {
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be %q or %q", c.LogFormat, LogFormatConsole, LogFormatJSON)
	}

	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.SleepDuration < 0 {
		return fmt.Errorf("sleep duration cannot be negative, got %s", c.Server.SleepDuration)
	}

	if _, err := threadpool.ParseFaultPolicy(c.Pool.FaultPolicy); err != nil {
		return err
	}

	return nil
}

// Addr returns the listen address in host:port form.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.HTTPPort)
}
