package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// dotEnvFile is loaded from the working directory when present.
const dotEnvFile = ".env"

func main() {
	env := DefaultEnv()

	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintln(env.Stderr, "warning:", err)
	}

	flags, args, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		fmt.Fprintln(env.Stderr, "Run 'mdmark --help' for usage.")
		os.Exit(exitCodeFor(err))
	}

	setMaxProcs(flags.common.verbose, env.Stderr)

	ctx, stop := notifyContext(context.Background())
	err = execute(ctx, flags, args, env)
	stop()
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// setMaxProcs configures GOMAXPROCS, logging the decision when verbose.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	logf := func(string, ...any) {}
	if verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}
