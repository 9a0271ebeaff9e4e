package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/specialistvlad/modelbind/internal/app"
	"github.com/specialistvlad/modelbind/internal/config"
	"github.com/specialistvlad/modelbind/internal/registry"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError marks a command-line mistake, reported with exit code 2.
func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// failure marks a command that ran and failed, reported with exit code 1.
func failure(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	dataDir    string
	scriptsDir string
}

// env carries what commands need once the root pre-run has finished.
type env struct {
	outW    io.Writer
	errW    io.Writer
	modules []registry.Module
	flags   globalFlags
	app     *app.App
}

// Execute parses args and runs the selected command. Every returned error is
// an *ExitError. Help output ends with a nil error.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, modules ...registry.Module) error {
	e := &env{outW: outW, errW: errW, modules: modules}
	root := newRootCommand(e)
	root.SetArgs(args)
	root.SetOut(outW)
	root.SetErr(errW)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra reports itself is a parsing problem.
	return usageError(err)
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "modelbind",
		Short: "Bind period series to computation models and script them",
		Long: `modelbind loads period-indexed series into a computation model, runs it,
and lets scripts read and update the bound values or add derived rows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&e.flags.configPath, "config", "", "Path to a YAML configuration file.")
	pf.StringVar(&e.flags.logLevel, "log-level", "", "Logging level: debug, info, warn or error.")
	pf.StringVar(&e.flags.logFormat, "log-format", "", "Log output format: text or json.")
	pf.StringVar(&e.flags.dataDir, "data-dir", "", "Directory searched for data files.")
	pf.StringVar(&e.flags.scriptsDir, "scripts-dir", "", "Directory searched for script files.")

	root.AddCommand(
		newRunCommand(e),
		newReplCommand(e),
		newWatchCommand(e),
		newServeCommand(e),
		newListCommand(e),
	)
	return root
}

// setup resolves the configuration and builds the App. Flags set on the
// command line override every other source.
func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.flags.configPath)
	if err != nil {
		return usageError(err)
	}

	flags := cmd.Flags()
	override := func(name string, target *string, value string) {
		if flags.Changed(name) {
			*target = value
		}
	}
	override("log-level", &cfg.LogLevel, e.flags.logLevel)
	override("log-format", &cfg.LogFormat, e.flags.logFormat)
	override("data-dir", &cfg.DataDir, e.flags.dataDir)
	override("scripts-dir", &cfg.ScriptsDir, e.flags.scriptsDir)
	if flags.Lookup("addr") != nil {
		override("addr", &cfg.ListenAddr, flags.Lookup("addr").Value.String())
	}
	if flags.Lookup("widget") != nil {
		override("widget", &cfg.WidgetURL, flags.Lookup("widget").Value.String())
	}

	if err := cfg.Validate(); err != nil {
		return usageError(err)
	}

	e.app = app.NewApp(e.outW, e.errW, cfg, e.modules...)
	e.app.Logger().Debug("CLI setup finished.", "command", cmd.Name())
	return nil
}
