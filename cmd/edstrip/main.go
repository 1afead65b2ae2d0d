package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/edstrip/internal/mcptools"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// exitError carries a non-zero exit status that is not an error message,
// such as the number of files that did not pass.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	var ee *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func newRootCmd() *cobra.Command {
	mcptools.SetVersion(version)

	var gf globalFlags
	rootCmd := newStripCmd(&gf)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVarP(&gf.config, "config", "c", "", "config file (default: ./edstrip.yml or ./edstrip.yaml)")
	rootCmd.PersistentFlags().StringVar(&gf.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&gf.logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(
		newLanguagesCmd(),
		newMCPCmd(&gf),
		newServeCmd(&gf),
		newVersionCmd(),
	)
	return rootCmd
}
