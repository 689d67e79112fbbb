package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jpalmerr/notebookview"
	"github.com/jpalmerr/notebookview/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dir, err := os.MkdirTemp("", "notebookview-demo")
	if err != nil {
		slog.Error("failed to create temp dir", "error", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	// write a sample notebook (see sample_notebook.go)
	nbPath := filepath.Join(dir, "demo.ipynb")
	if err := os.WriteFile(nbPath, []byte(sampleNotebook), 0o644); err != nil {
		slog.Error("failed to write sample notebook", "error", err)
		os.Exit(1)
	}

	page := config.Default()
	page.Title = "notebookview demo"
	page.Heading = "📓 notebookview demo"
	page.Subtitle = "Markdown, highlighted code, rich outputs and a coloured traceback"
	page.Sections = []config.Section{
		{Heading: "📊 What's inside", Text: "One notebook exercising every cell and output type the renderer supports."},
	}

	conv, err := notebookview.New(
		notebookview.WithPage(page),
		notebookview.WithHighlightStyle("monokai"),
		notebookview.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to create converter", "error", err)
		os.Exit(1)
	}

	outPath := filepath.Join(dir, "demo.html")
	if _, err := conv.ConvertFile(nbPath, outPath); err != nil {
		slog.Error("failed to convert notebook", "error", err)
		os.Exit(1)
	}

	srv, err := notebookview.NewServer(notebookview.ServerConfig{FilePath: outPath, Port: 8080}, logger)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	// set up graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   notebookview Demo                                   ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080/demo.html                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	<-srv.Done()
}
