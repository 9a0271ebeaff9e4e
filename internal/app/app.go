package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/specialistvlad/modelbind/internal/config"
	"github.com/specialistvlad/modelbind/internal/ctxlog"
	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/overlay"
	"github.com/specialistvlad/modelbind/internal/registry"
	"github.com/specialistvlad/modelbind/internal/render"
	"github.com/specialistvlad/modelbind/internal/series"
	"github.com/specialistvlad/modelbind/internal/session"
)

// ErrNoSession is returned by operations that need a loaded model.
var ErrNoSession = fault.Errorf(fault.Config, "session", "no model loaded")

// App encapsulates the application's dependencies, configuration, and
// current session. All session access goes through the App mutex.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	catalog *registry.Registry
	config  *config.Config
	metrics *metrics

	mu       sync.Mutex
	session  *session.Session
	dataPath string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and catalog. When no
// modules are given, CoreModules are registered.
func NewApp(outW, logW io.Writer, cfg *config.Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	catalog := registry.New()
	if len(modules) == 0 {
		modules = CoreModules
	}
	for _, mod := range modules {
		mod.Register(catalog)
	}
	logger.Debug("All model modules registered.", "count", len(modules), "models", catalog.Names())

	return &App{
		outW:    outW,
		logger:  logger,
		catalog: catalog,
		config:  cfg,
		metrics: newMetrics(),
	}
}

// Catalog returns the application's model catalog.
func (a *App) Catalog() *registry.Registry { return a.catalog }

// Config returns the application configuration.
func (a *App) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Context attaches the application logger to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Open loads the series at dataPath into a fresh instance of modelName. The
// current session is replaced only when the whole pipeline succeeds.
func (a *App) Open(ctx context.Context, modelName, dataPath string) error {
	ctx = a.Context(ctx)
	path := a.resolve(dataPath, a.config.DataDir)

	s, err := a.open(ctx, modelName, path)
	a.metrics.observe(a.metrics.loads, err)
	if err != nil {
		a.logger.Error("Failed to open model.", "model", modelName, "data", path, "error", err)
		return err
	}

	a.mu.Lock()
	a.session = s
	a.dataPath = path
	a.mu.Unlock()

	a.metrics.renders.Inc()
	a.logger.Info("Model loaded.", "model", modelName, "data", path, "session", s.ID())
	return nil
}

func (a *App) open(ctx context.Context, modelName, path string) (*session.Session, error) {
	data, err := series.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return session.Open(ctx, a.catalog, modelName, data, session.WithFormat(a.config.NumberFormat()))
}

// Session returns the current session, or nil.
func (a *App) Session() *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// withSession runs fn with the session while holding the lock.
func (a *App) withSession(fn func(s *session.Session) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return ErrNoSession
	}
	return fn(a.session)
}

// Eval evaluates a script against the current session.
func (a *App) Eval(ctx context.Context, src string) (*overlay.Result, error) {
	ctx = a.Context(ctx)
	var res *overlay.Result
	err := a.withSession(func(s *session.Session) (err error) {
		res, err = s.Eval(ctx, src)
		return err
	})
	a.afterEval(err)
	return res, err
}

// EvalFile evaluates the script at path. Relative paths that do not exist
// are looked up in the scripts directory.
func (a *App) EvalFile(ctx context.Context, path string) (*overlay.Result, error) {
	ctx = a.Context(ctx)
	path = a.resolve(path, a.config.ScriptsDir)
	var res *overlay.Result
	err := a.withSession(func(s *session.Session) (err error) {
		res, err = s.EvalFile(ctx, path)
		return err
	})
	a.afterEval(err)
	return res, err
}

func (a *App) afterEval(err error) {
	a.metrics.observe(a.metrics.evals, err)
	if err != nil {
		a.logger.Warn("Script evaluation failed.", "kind", fault.KindOf(err).String(), "error", err)
		return
	}
	a.metrics.renders.Inc()
}

// Rerun runs the current model again.
func (a *App) Rerun(ctx context.Context) error {
	ctx = a.Context(ctx)
	err := a.withSession(func(s *session.Session) error { return s.Rerun(ctx) })
	if err == nil {
		a.metrics.renders.Inc()
	}
	return err
}

// TSV returns the current rendering as tab-separated text.
func (a *App) TSV() (string, error) {
	var out string
	err := a.withSession(func(s *session.Session) error {
		out = s.TSV()
		return nil
	})
	return out, err
}

// Publish pushes the current rendering to sink.
func (a *App) Publish(sink render.Sink) error {
	return a.withSession(func(s *session.Session) error { return s.Publish(sink) })
}

// Derived returns the names of the derived variables.
func (a *App) Derived() ([]string, error) {
	var names []string
	err := a.withSession(func(s *session.Session) error {
		names = s.Derived()
		return nil
	})
	return names, err
}

// printTSV writes the current rendering to the output writer.
func (a *App) printTSV() error {
	tsv, err := a.TSV()
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.outW, tsv)
	return err
}

// resolve returns path unchanged when it exists or is absolute. Otherwise,
// if the file exists under dir, that location is returned.
func (a *App) resolve(path, dir string) string {
	if path == "" || filepath.IsAbs(path) || dir == "" {
		return path
	}
	if _, err := os.Stat(path); err == nil || !errors.Is(err, os.ErrNotExist) {
		return path
	}
	candidate := filepath.Join(dir, path)
	if _, err := os.Stat(candidate); err == nil {
		a.logger.Debug("Resolved relative path.", "path", path, "resolved", candidate)
		return candidate
	}
	return path
}
