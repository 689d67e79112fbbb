// Package main is the entry point for the notebookview CLI.
//
// notebookview converts a Jupyter notebook into a standalone HTML page and,
// unless told otherwise, serves the page's directory over local HTTP until
// interrupted.
//
// Usage:
//
//	notebookview                           # convert Athletes.ipynb and serve on :8000
//	notebookview analysis.ipynb -p 9000    # convert another notebook, serve on :9000
//	notebookview analysis.ipynb --no-serve # only write notebook_view.html
//	notebookview --version                 # show version info
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// cancel on SIGINT/SIGTERM; the server shuts down when ctx is done
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Cobra already prints the error, just exit with code 1
		stop()
		os.Exit(1)
	}
}
