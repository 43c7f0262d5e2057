package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/drf-protocol/drf-go/cmd/drf/interactive"
	drflog "github.com/drf-protocol/drf-go/pkg/log"
)

// RunRepl starts the interactive prompt.
func RunRepl(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := CommonOptions{}
	addCommonFlags(fs, &opts)

	if err := fs.Parse(args); err != nil {
		if isHelp(err) {
			fmt.Fprintln(stdout, "\nUsage: drf repl [-trace file] [-log-level lvl] [-config file]")
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	env, err := setup(fs, &opts, drflog.SourceREPL, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.close()

	session, err := interactive.New(env.tracer)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	env.logger.Info("session ended", "session", env.tracer.SessionID(), "accepted", len(session.History()))
	return exitSuccess
}
