package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kubev2v/multithread-server/internal/config"
	"github.com/kubev2v/multithread-server/internal/handlers"
	"github.com/kubev2v/multithread-server/internal/logging"
	"github.com/kubev2v/multithread-server/internal/server"
	"github.com/kubev2v/multithread-server/pkg/threadpool"
)

const (
	envPrefix       = "MTS"
	shutdownTimeout = 10 * time.Second
)

// flagKeys maps every flag to its configuration key.
var flagKeys = map[string]string{
	"address":                "server.address",
	"http-port":              "server.http-port",
	"statics-folder":         "server.statics-folder",
	"sleep-duration":         "server.sleep-duration",
	"read-timeout":           "server.read-timeout",
	"response-authorization": "server.response-authorization",
	"num-workers":            "pool.num-workers",
	"fault-policy":           "pool.fault-policy",
	"replenish":              "pool.replenish",
	"lock-os-thread":         "pool.lock-os-thread",
	"log-format":             "log-format",
	"log-level":              "log-level",
}

func newRootCommand() *cobra.Command {
	defaults := config.NewConfigurationWithOptionsAndDefaults()

	cmd := &cobra.Command{
		Use:               "multithread-server",
		Short:             "HTTP server answering every connection on a fixed-size worker pool",
		SilenceUsage:      true,
		PersistentPreRunE: cobrautil.SyncViperPreRunE(envPrefix),
		RunE:              run,
	}

	registerFlags(cmd.Flags(), defaults)

	return cmd
}

func registerFlags(flags *pflag.FlagSet, defaults *config.Configuration) {
	flags.String("config", "", "Path to a YAML configuration file")
	flags.String("address", defaults.Server.Address, "Listen address")
	flags.Int("http-port", defaults.Server.HTTPPort, "Listen port")
	flags.String("statics-folder", defaults.Server.StaticsFolder, "Folder holding the served files")
	flags.Duration("sleep-duration", defaults.Server.SleepDuration, "Delay applied by GET /sleep")
	flags.Duration("read-timeout", defaults.Server.ReadTimeout, "Deadline for reading one request")
	flags.String("response-authorization", defaults.Server.ResponseAuthorization, "Authorization header sent with every response, empty to disable")
	flags.Int("num-workers", defaults.Pool.NumWorkers, "Number of pool workers")
	flags.String("fault-policy", defaults.Pool.FaultPolicy, "What a worker does after a job panic: recover or terminate")
	flags.Bool("replenish", defaults.Pool.Replenish, "Replace workers terminated by a job panic")
	flags.Bool("lock-os-thread", defaults.Pool.LockOSThread, "Pin each worker to its own OS thread")
	flags.String("log-format", defaults.LogFormat, "Log format: console or json")
	flags.String("log-level", defaults.LogLevel, "Log level")
}

// loadConfiguration merges defaults, the optional config file and the flags
// (which already carry MTS_* environment values).
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	cfg := config.NewConfigurationWithOptionsAndDefaults()

	v := viper.New()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	log := zap.S().Named("main")
	log.Infow("configuration loaded", "config", cfg.DebugMap())

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := threadpool.NewMetrics("multithread_server", "pool")
	if err := metrics.Register(reg); err != nil {
		return fmt.Errorf("failed to register pool metrics: %w", err)
	}

	pool, err := threadpool.New(cfg.Pool.NumWorkers,
		threadpool.WithFaultPolicy(threadpool.FaultPolicy(cfg.Pool.FaultPolicy)),
		threadpool.WithReplenish(cfg.Pool.Replenish),
		threadpool.WithLockOSThread(cfg.Pool.LockOSThread),
		threadpool.WithMetrics(metrics),
	)
	if err != nil {
		log.Errorw("error creating pool", "error", err)
		return err
	}

	router := server.NewRouter(ginMode(cfg), func(router *gin.Engine) {
		handlers.RegisterHandlers(router, handlers.New(cfg.Server.StaticsFolder, cfg.Server.SleepDuration, reg))
	})
	srv := server.NewServer(cfg.Server, pool, router)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	color.New(color.FgGreen, color.Bold).Fprintf(os.Stderr, "Server running on %s with %d workers\n", cfg.Server.Addr(), pool.Size())

	err = g.Wait()

	log.Info("Shutting down.")
	pool.Close()

	return err
}

func ginMode(cfg *config.Configuration) string {
	if cfg.LogFormat == config.LogFormatJSON {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}
