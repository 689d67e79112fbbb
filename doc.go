// Package notebookview converts a Jupyter notebook into a single,
// self-contained HTML page and can serve that page over local HTTP.
//
// # Quick Start
//
// Convert a notebook and serve the result until interrupted:
//
//	conv, _ := notebookview.New()
//	if _, err := conv.ConvertFile("Athletes.ipynb", "notebook_view.html"); err != nil {
//	    return err
//	}
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	notebookview.Serve(ctx, notebookview.ServerConfig{FilePath: "notebook_view.html", Port: 8000}, nil)
//
// # Configuration
//
// The header, descriptive sections and highlight style come from a
// [config.Config], usually loaded from YAML:
//
//	cfg, err := config.Load("page.yaml")
//	conv, err := notebookview.New(
//	    notebookview.WithPage(cfg),
//	    notebookview.WithHighlightStyle("monokai"),
//	)
//
// # Output
//
// The page inlines its stylesheet and script; it references nothing
// outside itself. Conversion is deterministic, so converting an unchanged
// notebook rewrites an identical file.
//
// Markdown cells are rendered as GitHub-flavoured markdown, code cells are
// syntax highlighted, and outputs are rendered with the richest MIME type
// available. Both nbformat 3 and 4 notebooks are accepted.
//
// # Errors
//
// Failures wrap one of [ErrNotFound], [ErrParse], [ErrIO] or
// [ErrAddressInUse]; test for them with errors.Is.
//
// # Architecture
//
// notebookview consists of several packages:
//
//   - notebook: nbformat reader with version 3 upgrade
//   - internal/render: cell and output rendering
//   - page: embedded page template and stylesheet
//   - config: YAML page configuration
//   - internal/server: static file server with the HTML content-type override
//
// The internal packages are not part of the public API and may change
// without notice.
package notebookview
