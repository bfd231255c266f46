package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/app"
	"github.com/five82/folio/internal/version"
)

// newRootCmd builds the command tree. Persistent flags are shared by the TUI
// and the headless commands.
func newRootCmd() *cobra.Command {
	var opts app.Options
	var rtl bool

	root := &cobra.Command{
		Use:           "folio",
		Short:         "folio browses a remote book collection in the terminal",
		Long:          "folio fetches the book collection once at startup and lets you filter it by title.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if rtl {
				opts.Direction = "rtl"
			}
			opts.TimeoutSet = cmd.Flags().Changed("timeout")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/folio/config.toml)")
	flags.StringVar(&opts.Endpoint, "endpoint", "", "books API endpoint")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "request timeout, 0 disables it (default from config, 30s)")
	flags.StringVar(&opts.Theme, "theme", "", "color theme: Blossom, Nightfox or Slate")
	flags.StringVar(&opts.Direction, "direction", "", "initial text direction: ltr or rtl")
	flags.BoolVar(&rtl, "rtl", false, "start in right-to-left mode (same as --direction rtl)")
	flags.StringVar(&opts.LogFile, "log-file", "", "diagnostic log file (default ~/.local/state/folio/folio.log)")
	flags.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newListCmd(&opts), newLogsCmd(&opts), newVersionCmd())
	return root
}

func newListCmd(opts *app.Options) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print matching books without starting the TUI",
		Long:  "Fetch the collection once, filter it by title and print one \"id<TAB>title\" line per book. Example:\n  folio list --search kite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.List(cmd.Context(), *opts, query, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "case-insensitive title filter")
	return cmd
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the diagnostic log",
		Long:  "The TUI owns the terminal, so diagnostics go to a log file. Example:\n  folio logs -n 20 --level error",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minLevel, err := logrus.ParseLevel(level)
			if err != nil {
				return err
			}
			return app.Logs(*opts, lines, minLevel, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of entries to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level: debug, info, warning or error")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version.Version)
		},
	}
}
