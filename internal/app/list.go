package app

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/specialistvlad/modelbind/internal/fsutil"
)

// ScriptExt is the file extension of script files.
const ScriptExt = ".hcl"

// Listing is the content of the catalog and the working directories.
type Listing struct {
	Models  []string
	Data    []string
	Scripts []string
}

// List collects model names, data files and script files. Missing
// directories yield empty lists. Paths are relative to their directory.
func (a *App) List() (*Listing, error) {
	data, err := listDir(a.config.DataDir, a.config.DataExt)
	if err != nil {
		return nil, err
	}
	scripts, err := listDir(a.config.ScriptsDir, ScriptExt)
	if err != nil {
		return nil, err
	}
	return &Listing{
		Models:  a.catalog.Names(),
		Data:    data,
		Scripts: scripts,
	}, nil
}

// PrintList writes the listing to the output writer.
func (a *App) PrintList() error {
	l, err := a.List()
	if err != nil {
		return err
	}
	section := func(title, dir string, items []string) {
		if dir != "" {
			title = fmt.Sprintf("%s (%s)", title, dir)
		}
		fmt.Fprintf(a.outW, "%s:\n", title)
		if len(items) == 0 {
			fmt.Fprintln(a.outW, "  (none)")
		}
		for _, it := range items {
			fmt.Fprintf(a.outW, "  %s\n", it)
		}
	}
	section("Models", "", l.Models)
	section("Data", a.config.DataDir, l.Data)
	section("Scripts", a.config.ScriptsDir, l.Scripts)
	return nil
}

func listDir(dir, ext string) ([]string, error) {
	paths, err := fsutil.FindFiles(dir, ext)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fault.New(fault.IO, dir, err)
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			rel = p
		}
		out = append(out, rel)
	}
	return out, nil
}
