package cli

import (
	"github.com/spf13/cobra"
	"github.com/specialistvlad/modelbind/internal/app"
)

// modelFlags are the flags every model-loading command takes.
type modelFlags struct {
	model string
	data  string
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Name of the model to load (see 'list').")
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "Path to the series data file.")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("data")
}

func newRunCommand(e *env) *cobra.Command {
	var (
		mf      modelFlags
		scripts []string
		execs   []string
		xlsx    string
		widget  string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a model, evaluate scripts and print the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return failure(e.app.Run(cmd.Context(), app.RunOptions{
				Model:   mf.model,
				Data:    mf.data,
				Scripts: scripts,
				Exec:    execs,
				XLSX:    xlsx,
				Widget:  e.app.Config().WidgetURL,
			}))
		},
	}
	mf.register(cmd)
	cmd.Flags().StringArrayVarP(&scripts, "script", "s", nil, "Script file to evaluate; may be repeated.")
	cmd.Flags().StringArrayVarP(&execs, "exec", "e", nil, "Inline script to evaluate after the files; may be repeated.")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "Also write the table to this workbook.")
	cmd.Flags().StringVar(&widget, "widget", "", "Publish the table to the socket.io widget at this URL.")
	return cmd
}

func newReplCommand(e *env) *cobra.Command {
	var mf modelFlags
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Load a model and evaluate scripts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return failure(e.app.REPL(cmd.Context(), mf.model, mf.data))
		},
	}
	mf.register(cmd)
	return cmd
}

func newWatchCommand(e *env) *cobra.Command {
	var (
		mf     modelFlags
		script string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate a script every time it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return failure(e.app.Watch(cmd.Context(), mf.model, mf.data, script))
		},
	}
	mf.register(cmd)
	cmd.Flags().StringVarP(&script, "script", "s", "", "Script file to watch.")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func newServeCommand(e *env) *cobra.Command {
	var (
		mf   modelFlags
		addr string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the table and accept scripts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := e.app.Open(ctx, mf.model, mf.data); err != nil {
				return failure(err)
			}
			return failure(e.app.Serve(ctx, e.app.Config().ListenAddr))
		},
	}
	mf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, e.g. :8080.")
	return cmd
}

func newListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List models, data files and scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return failure(e.app.PrintList())
		},
	}
}
