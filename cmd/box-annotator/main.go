package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	boxannotator "github.com/menta2k/box-annotator"
)

type rootOptions struct {
	verbose bool
	logJSON bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "box-annotator",
		Short:         "Draw, move and export labelled bounding boxes over images",
		Version:       boxannotator.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addLoggingFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(newReplayCmd(opts))
	cmd.AddCommand(newInfoCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

func addLoggingFlags(fs *pflag.FlagSet, opts *rootOptions) {
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&opts.logJSON, "log-json", false, "log as JSON instead of text")
}

// logger returns a structured slog.Logger writing to stderr
func (o *rootOptions) logger() *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	if o.logJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, hopts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, hopts))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
