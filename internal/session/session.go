// Package session owns one loaded model instance together with its bound
// attributes, derived variables and the latest rendering.
//
// A Session is created by Open, which runs the whole load pipeline:
// instantiate the model, discover its attributes, bind the series data, run
// the model once and render. Later script evaluations and explicit reruns
// re-render from scratch. A Session is not safe for concurrent use.
package session

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/specialistvlad/modelbind/internal/binding"
	"github.com/specialistvlad/modelbind/internal/ctxlog"
	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/model"
	"github.com/specialistvlad/modelbind/internal/overlay"
	"github.com/specialistvlad/modelbind/internal/registry"
	"github.com/specialistvlad/modelbind/internal/render"
	"github.com/specialistvlad/modelbind/internal/script"
	"github.com/specialistvlad/modelbind/internal/series"
	"github.com/zclconf/go-cty/cty"
)

// Option configures a Session.
type Option func(*Session)

// WithFormat sets the number format used for rendering.
func WithFormat(f render.NumberFormat) Option {
	return func(s *Session) { s.format = f }
}

// WithEngine replaces the script engine factory.
func WithEngine(f script.Factory) Option {
	return func(s *Session) { s.newEngine = f }
}

// WithID sets the session identifier instead of a random one.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session is one model and data pair.
type Session struct {
	id        string
	modelName string
	model     model.Model
	attrs     *binding.Registry
	periods   series.Periods
	overlay   *overlay.Overlay
	format    render.NumberFormat
	newEngine script.Factory
	table     *render.Table
}

// Open instantiates modelName from catalog, binds data into it, runs it and
// renders the result.
func Open(ctx context.Context, catalog *registry.Registry, modelName string, data *series.Data, opts ...Option) (*Session, error) {
	s := &Session{
		id:        uuid.NewString(),
		modelName: modelName,
		format:    render.DefaultFormat,
		newEngine: script.NewFactory(modelName),
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx = ctxlog.With(ctx, "session", s.id, "model", modelName)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Opening session.")

	m, err := catalog.NewModel(modelName)
	if err != nil {
		return nil, err
	}
	attrs, err := binding.Discover(m)
	if err != nil {
		return nil, err
	}
	if err := binding.Bind(ctx, attrs, data); err != nil {
		return nil, err
	}

	s.model = m
	s.attrs = attrs
	s.periods = append(series.Periods(nil), data.Periods...)
	s.overlay = overlay.New(attrs, s.newEngine)

	if err := s.run(ctx); err != nil {
		return nil, err
	}
	s.render()

	logger.Info("Session opened.", "attributes", attrs.Len(), "periods", len(s.periods))
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// ModelName returns the catalog name of the loaded model.
func (s *Session) ModelName() string { return s.modelName }

// Periods returns the period labels.
func (s *Session) Periods() series.Periods { return append(series.Periods(nil), s.periods...) }

// Eval runs a script against the session and re-renders on success. On
// failure nothing changes and the previous rendering stays current.
func (s *Session) Eval(ctx context.Context, src string) (*overlay.Result, error) {
	ctx = ctxlog.With(ctx, "session", s.id)
	res, err := s.overlay.Evaluate(ctx, src)
	if err != nil {
		return nil, err
	}
	s.render()
	return res, nil
}

// EvalFile reads a script from path and evaluates it.
func (s *Session) EvalFile(ctx context.Context, path string) (*overlay.Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.New(fault.IO, "read script", err)
	}
	ctxlog.FromContext(ctx).Debug("Evaluating script file.", "path", path, "bytes", len(src))
	return s.Eval(ctx, string(src))
}

// Rerun runs the model again on the current bound values and re-renders.
func (s *Session) Rerun(ctx context.Context) error {
	ctx = ctxlog.With(ctx, "session", s.id)
	if err := s.run(ctx); err != nil {
		return err
	}
	s.render()
	return nil
}

// Table returns the latest rendering.
func (s *Session) Table() *render.Table { return s.table }

// TSV returns the latest rendering as tab-separated text.
func (s *Session) TSV() string { return s.table.TSV() }

// Publish pushes the latest rendering to a table widget.
func (s *Session) Publish(sink render.Sink) error {
	if err := s.table.Publish(sink); err != nil {
		return fault.New(fault.IO, "publish", err)
	}
	return nil
}

// Derived returns the derived variable names in insertion order.
func (s *Session) Derived() []string { return s.overlay.Derived().Names() }

// Value returns the current value of a bound attribute or derived variable.
func (s *Session) Value(name string) (cty.Value, bool) {
	if a, ok := s.attrs.Lookup(name); ok {
		return binding.Value(a), true
	}
	return s.overlay.Derived().Get(name)
}

// run calls the model once. A panic inside the model is returned as an error.
func (s *Session) run(ctx context.Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("model %s panicked: %v", s.modelName, p)
		}
	}()

	if err := s.model.Run(); err != nil {
		return fmt.Errorf("model %s: %w", s.modelName, err)
	}
	ctxlog.FromContext(ctx).Debug("Model run complete.")
	return nil
}

// render rebuilds the table: bound attributes in registry order without the
// period count, then derived variables in insertion order.
func (s *Session) render() {
	var sources []render.Source
	for _, a := range s.attrs.All() {
		if a.Kind == model.ScalarCount {
			continue
		}
		sources = append(sources, render.Source{Name: a.Name, Value: binding.Value(a)})
	}
	s.overlay.Derived().Each(func(name string, v cty.Value) {
		sources = append(sources, render.Source{Name: name, Value: v})
	})
	s.table = render.Build(s.periods, sources, s.format)
}
