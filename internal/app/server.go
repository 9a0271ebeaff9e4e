package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/session"
	"github.com/specialistvlad/modelbind/internal/sink"
)

// maxScriptBytes bounds POST /script bodies.
const maxScriptBytes = 1 << 20

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// tableResponse is the JSON form of the current table.
type tableResponse struct {
	Session string     `json:"session"`
	Model   string     `json:"model"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// evalResponse summarizes a successful script evaluation.
type evalResponse struct {
	Updated   []string `json:"updated"`
	Derived   []string `json:"derived"`
	Discarded []string `json:"discarded"`
}

// Handler returns the HTTP surface of the App.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", a.healthHandler)
	r.Method(http.MethodGet, "/metrics", a.metrics.handler())

	r.Get("/table", a.tableTSVHandler)
	r.Get("/table.json", a.tableJSONHandler)
	r.Get("/table.xlsx", a.tableXLSXHandler)
	r.Post("/script", a.scriptHandler)
	r.Post("/rerun", a.rerunHandler)
	return r
}

// healthHandler reports liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) tableTSVHandler(w http.ResponseWriter, r *http.Request) {
	tsv, err := a.TSV()
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	io.WriteString(w, tsv)
}

func (a *App) tableJSONHandler(w http.ResponseWriter, r *http.Request) {
	mem := sink.NewMemory()
	var resp tableResponse
	err := a.withSession(func(s *session.Session) error {
		if err := s.Publish(mem); err != nil {
			return err
		}
		resp = tableResponse{Session: s.ID(), Model: s.ModelName()}
		return nil
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	resp.Columns = mem.Columns()
	resp.Rows = mem.Rows()
	render.JSON(w, r, resp)
}

// tableXLSXHandler builds the workbook from one session snapshot so the sheet
// name and the table always belong to the same model.
func (a *App) tableXLSXHandler(w http.ResponseWriter, r *http.Request) {
	var (
		x    *sink.XLSX
		name string
	)
	err := a.withSession(func(s *session.Session) error {
		name = s.ModelName()
		var err error
		if x, err = sink.NewXLSX(name); err != nil {
			return err
		}
		return s.Publish(x)
	})
	if x != nil {
		defer x.Close()
	}
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	if err := x.Write(w); err != nil {
		a.logger.Error("Failed to stream workbook.", "error", err)
	}
}

func (a *App) scriptHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxScriptBytes))
	if err != nil {
		a.writeError(w, r, fault.New(fault.IO, "read body", err))
		return
	}
	res, err := a.Eval(r.Context(), string(body))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	render.JSON(w, r, evalResponse{Updated: res.Updated, Derived: res.Derived, Discarded: res.Discarded})
}

func (a *App) rerunHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Rerun(r.Context()); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps an error kind to a status code.
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	kind := fault.KindOf(err)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNoSession):
		status = http.StatusConflict
	case kind == fault.Script || kind == fault.Binding:
		status = http.StatusUnprocessableEntity
	case kind == fault.IO && r.Method == http.MethodPost:
		status = http.StatusBadRequest
	}
	resp := errorResponse{Error: err.Error()}
	if kind != 0 {
		resp.Kind = kind.String()
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// Serve runs the HTTP surface on addr until ctx is done, then shuts down
// gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fault.New(fault.IO, "listen", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("HTTP server shut down gracefully.")
	return nil
}
