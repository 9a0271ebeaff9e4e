package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/specialistvlad/modelbind/internal/script"
)

const replHelp = `Enter script statements, e.g. total = sum(revenue)
Commands:
  :run    run the model again and print the table
  :tsv    print the table
  :vars   list derived variables
  :help   show this help
  :quit   leave
`

// REPL loads the model and reads ad hoc scripts from the terminal until EOF,
// Ctrl-C or :quit. A failing script is reported and the session stays as it
// was.
func (a *App) REPL(ctx context.Context, modelName, dataPath string) error {
	ctx = a.Context(ctx)
	if err := a.Open(ctx, modelName, dataPath); err != nil {
		return err
	}
	if err := a.printTSV(); err != nil {
		return err
	}

	lin := liner.NewLiner()
	defer lin.Close()
	lin.SetCtrlCAborts(true)
	lin.SetCompleter(a.complete)

	for {
		line, err := lin.Prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(a.outW)
				return nil
			}
			return fmt.Errorf("unexpected error reading prompt: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lin.AppendHistory(line)

		quit, err := a.execLine(ctx, line)
		if err != nil {
			fmt.Fprintf(a.outW, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// execLine handles one REPL input line.
func (a *App) execLine(ctx context.Context, line string) (quit bool, err error) {
	cmd := strings.TrimSpace(line)
	switch cmd {
	case ":quit", ":q", ":exit":
		return true, nil
	case ":help":
		_, err := io.WriteString(a.outW, replHelp)
		return false, err
	case ":tsv":
		return false, a.printTSV()
	case ":run":
		if err := a.Rerun(ctx); err != nil {
			return false, err
		}
		return false, a.printTSV()
	case ":vars":
		names, err := a.Derived()
		if err != nil {
			return false, err
		}
		_, err = fmt.Fprintln(a.outW, strings.Join(names, " "))
		return false, err
	}
	if strings.HasPrefix(cmd, ":") {
		return false, fmt.Errorf("unknown command %s, try :help", cmd)
	}

	if _, err := a.Eval(ctx, line); err != nil {
		return false, err
	}
	return false, a.printTSV()
}

// complete offers row names, function names and commands matching the last
// word of line.
func (a *App) complete(line string) []string {
	start := strings.LastIndexAny(line, " ;=([,+-*/") + 1
	head, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	candidates := []string{":run", ":tsv", ":vars", ":help", ":quit"}
	for name := range script.Functions() {
		candidates = append(candidates, name)
	}
	if s := a.Session(); s != nil {
		for _, row := range s.Table().Rows {
			candidates = append(candidates, row.Label)
		}
	}
	sort.Strings(candidates)

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) {
			out = append(out, head+c)
		}
	}
	return out
}
