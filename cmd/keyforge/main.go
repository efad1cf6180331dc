package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/internal/cli"
	kferrors "github.com/matzehuels/keyforge/pkg/errors"
)

// Exit statuses. Interrupted builds follow the shell's 128+SIGINT rule.
const (
	exitFailure     = 1
	exitBadInput    = 2
	exitInterrupted = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		code := exitCode(err)
		if code != exitInterrupted {
			fmt.Fprintln(os.Stderr, kferrors.UserMessage(err))
		}
		os.Exit(code)
	}
}

// exitCode maps a command error to the process exit status. Rejected specs,
// labels and config files exit with 2 so scripts can tell them apart from
// geometry failures.
func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case strings.HasPrefix(string(kferrors.GetCode(err)), "INVALID_"):
		return exitBadInput
	}
	return exitFailure
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-stage build timings")

	// --verbose is only parsed once cobra runs, so the level is applied just
	// before the root hook attaches the logger to the command context.
	attachLogger := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return attachLogger(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
