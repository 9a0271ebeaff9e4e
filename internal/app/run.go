package app

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/modelbind/internal/sink"
)

// RunOptions configures a batch run.
type RunOptions struct {
	Model   string
	Data    string
	Scripts []string // script files, evaluated first
	Exec    []string // inline scripts, evaluated after the files
	XLSX    string   // optional workbook output path
	Widget  string   // optional socket.io table widget URL
}

// Run loads the model, evaluates every script in order and prints the final
// table. It stops at the first failing script.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "model", opts.Model, "data", opts.Data)

	if err := a.Open(ctx, opts.Model, opts.Data); err != nil {
		return err
	}
	for _, path := range opts.Scripts {
		if _, err := a.EvalFile(ctx, path); err != nil {
			return fmt.Errorf("script %s: %w", path, err)
		}
	}
	for i, src := range opts.Exec {
		if _, err := a.Eval(ctx, src); err != nil {
			return fmt.Errorf("inline script %d: %w", i+1, err)
		}
	}

	if err := a.printTSV(); err != nil {
		return err
	}
	if opts.XLSX != "" {
		if err := a.saveXLSX(opts.XLSX); err != nil {
			return err
		}
	}
	if opts.Widget != "" {
		if err := a.publishWidget(ctx, opts.Widget); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) saveXLSX(path string) error {
	x, err := sink.NewXLSX(a.Session().ModelName())
	if err != nil {
		return err
	}
	defer x.Close()

	if err := a.Publish(x); err != nil {
		return err
	}
	if err := x.SaveAs(path); err != nil {
		return err
	}
	a.logger.Info("Workbook written.", "path", path)
	return nil
}

func (a *App) publishWidget(ctx context.Context, url string) error {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	w, err := sink.Dial(dialCtx, url, sink.SocketIOOptions{})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := a.Publish(w); err != nil {
		return err
	}
	a.logger.Info("Table published to widget.", "url", url)
	return nil
}
