package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/modelbind/internal/fault"
)

// watchDebounce groups the burst of events an editor produces on save.
const watchDebounce = 100 * time.Millisecond

// Watch evaluates scriptPath against a freshly loaded model every time the
// file is written, printing the table after each successful evaluation. It
// returns when ctx is done.
func (a *App) Watch(ctx context.Context, modelName, dataPath, scriptPath string) error {
	ctx = a.Context(ctx)
	path, err := filepath.Abs(a.resolve(scriptPath, a.config.ScriptsDir))
	if err != nil {
		return fault.New(fault.IO, scriptPath, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fault.New(fault.IO, "watch", err)
	}
	defer w.Close()
	// Watch the directory, editors often replace the file instead of writing it.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fault.New(fault.IO, filepath.Dir(path), err)
	}

	if err := a.Open(ctx, modelName, dataPath); err != nil {
		return err
	}
	if err := a.evaluate(ctx, path); err != nil {
		fmt.Fprintf(a.outW, "error: %v\n", err)
	}
	a.logger.Info("Watching script.", "path", path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("Watch stopped.")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			a.logger.Debug("Script changed.", "event", ev.Op.String())
			pending = time.After(watchDebounce)
		case <-pending:
			pending = nil
			if err := a.reevaluate(ctx, modelName, dataPath, path); err != nil {
				fmt.Fprintf(a.outW, "error: %v\n", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("Watcher error.", "error", err)
		}
	}
}

// reevaluate reloads the model, then evaluates the script.
func (a *App) reevaluate(ctx context.Context, modelName, dataPath, scriptPath string) error {
	if err := a.Open(ctx, modelName, dataPath); err != nil {
		return err
	}
	return a.evaluate(ctx, scriptPath)
}

// evaluate runs the script against the current session and prints the table.
func (a *App) evaluate(ctx context.Context, scriptPath string) error {
	if _, err := a.EvalFile(ctx, scriptPath); err != nil {
		return err
	}
	return a.printTSV()
}
