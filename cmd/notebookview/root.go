package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/notebookview"
	"github.com/jpalmerr/notebookview/config"
)

const (
	defaultNotebook = "Athletes.ipynb"
	defaultOutput   = "notebook_view.html"
	defaultPort     = 8000
)

// rootOptions holds the parsed command-line flags.
type rootOptions struct {
	output     string
	port       int
	noServe    bool
	configPath string
	verbose    bool
}

// newRootCmd builds the command. A fresh command per call keeps flag state
// from leaking between tests.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "notebookview [notebook]",
		Short: "Convert a Jupyter notebook to HTML and serve it",
		Long: `notebookview converts a Jupyter notebook into a single, self-contained
HTML page and serves it over local HTTP.

The page has a styled header, descriptive sections, the rendered notebook
cells and a "back to top" control. Header and section texts can be replaced
with a YAML file passed via --config.

Example:
  notebookview Athletes.ipynb
  notebookview analysis.ipynb -o analysis.html -p 9000
  notebookview analysis.ipynb --no-serve -c page.yaml`,
		Args:    cobra.MaximumNArgs(1),
		Version: version,
		// errors after flag parsing are runtime failures, not usage mistakes
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("notebookview {{.Version}}\n  commit: %s\n  built:  %s\n", commit, date))

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "output HTML file path")
	cmd.Flags().IntVarP(&opts.port, "port", "p", defaultPort, "port number to serve on")
	cmd.Flags().BoolVar(&opts.noServe, "no-serve", false, "don't start the web server after conversion")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML page config file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// newLogger creates a JSON logger for CLI use.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func run(cmd *cobra.Command, args []string, opts *rootOptions) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	notebookPath := defaultNotebook
	if len(args) == 1 {
		notebookPath = args[0]
	}

	// a missing notebook is reported, not treated as a failure
	if _, err := os.Stat(notebookPath); errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(out, "❌ Error: Notebook file '%s' not found!\n", notebookPath)
		return nil
	}

	page := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		page = loaded
		logger.Debug("config loaded", "path", opts.configPath, "sections", len(page.Sections))
	}

	conv, err := notebookview.New(
		notebookview.WithPage(page),
		notebookview.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create converter: %w", err)
	}

	_, _ = fmt.Fprintf(out, "🔄 Converting %s to HTML...\n", notebookPath)
	if _, err := conv.ConvertFile(notebookPath, opts.output); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	_, _ = fmt.Fprintf(out, "✅ HTML file created: %s\n", opts.output)

	if opts.noServe {
		return nil
	}

	_, _ = fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 50))
	return serve(cmd, out, logger, opts)
}

func serve(cmd *cobra.Command, out io.Writer, logger *slog.Logger, opts *rootOptions) error {
	srv, err := notebookview.NewServer(notebookview.ServerConfig{
		FilePath: opts.output,
		Port:     opts.port,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Start(cmd.Context()); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	_, _ = fmt.Fprintf(out, "🌐 Serving notebook at %s\n", srv.URL())
	_, _ = fmt.Fprintln(out, "📌 Press Ctrl+C to stop the server")

	<-srv.Done()
	_, _ = fmt.Fprintln(out, "\n⛔ Server stopped")
	return nil
}
