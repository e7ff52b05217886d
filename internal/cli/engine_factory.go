package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// SampleName is the name the demo automaton is registered under.
const SampleName = "sample"

// App bundles everything a command needs: configuration, logger, metrics,
// history and the session manager with the sample automaton registered.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
	History  ports.HistoryStore
	Manager  *session.Manager
	Sample   *automata.Automaton

	healthCheck func(context.Context) error
	closers     []io.Closer
}

// NewApp wires an App from cfg. The caller must Close it.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{
		Config:   cfg,
		Registry: prometheus.NewRegistry(),
	}

	app.Logger = createLogger(cfg.Log, app)
	app.Metrics = observability.NewMetrics(app.Registry)

	history, err := createHistory(ctx, cfg.History, app)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.History = history

	opts := app.AutomatonOptions()
	app.Manager = session.NewManager(history,
		session.WithLogger(app.Logger),
		session.WithAutomatonOptions(opts...),
	)

	sample, err := dsl.Sample(append(opts, automata.WithName(SampleName))...).Build()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("error building sample automaton: %w", err)
	}
	if err := app.Manager.Register(ctx, SampleName, sample); err != nil {
		app.Close()
		return nil, err
	}
	app.Sample = sample

	app.Logger.Debug("application ready",
		"history", cfg.History.Backend,
		"max_states", cfg.Limits.MaxStates,
		"max_transitions", cfg.Limits.MaxTransitions)
	return app, nil
}

// AutomatonOptions returns the options every automaton of this App is built with.
func (a *App) AutomatonOptions() []automata.Option {
	hooks := observability.Chain(
		a.Metrics.Hooks(),
		observability.LoggingHooks(a.Logger),
	)
	return []automata.Option{
		automata.WithLimits(a.Config.Limits),
		automata.WithLogger(a.Logger),
		automata.WithLifecycleHooks(hooks),
	}
}

// HealthCheck reports whether the history backend is reachable.
func (a *App) HealthCheck(ctx context.Context) error {
	if a.healthCheck == nil {
		return nil
	}
	return a.healthCheck(ctx)
}

// Close releases the history backend and the log file, in reverse order of acquisition.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func createLogger(cfg config.LogConfig, app *App) *slog.Logger {
	level := logging.ParseLevel(cfg.Level)
	if cfg.File == "" {
		return logging.New(level)
	}
	logger, closer := logging.NewFile(logging.FileOptions{
		Path:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
	}, level)
	app.closers = append(app.closers, closer)
	return logger
}

func createHistory(ctx context.Context, cfg config.HistoryConfig, app *App) (ports.HistoryStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return memory.NewStore(memory.WithMaxEntries(cfg.MaxEntries)), nil
	case "redis":
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithTTL(cfg.TTL),
			redis.WithMaxEntries(cfg.MaxEntries),
		)
		app.closers = append(app.closers, store)
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		app.healthCheck = store.Ping
		return store, nil
	default:
		return nil, fmt.Errorf("unknown history backend: %s", cfg.Backend)
	}
}
