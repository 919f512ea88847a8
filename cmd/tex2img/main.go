// Command tex2img batch-renders LaTeX equation files to SVG and PNG images.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, fs, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	if flags.help {
		fs.PrintDefaults()
		os.Exit(ExitSuccess)
	}
	if flags.version {
		fmt.Println("tex2img " + Version)
		os.Exit(ExitSuccess)
	}

	logger := newLogger(os.Stderr, flags.common)

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(logger.Debugf))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, flags, fs, logger); err != nil {
		logger.Error(err.Error() + hintFor(err, flags.common.config))
		os.Exit(exitCodeFor(err))
	}
}
