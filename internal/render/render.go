package render

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/jpalmerr/notebookview/notebook"
)

const (
	// DefaultStyle is the syntax highlighting style used when none is configured.
	DefaultStyle = "friendly"

	// DefaultLanguage is the highlighting language used when the notebook
	// metadata names none that is recognised.
	DefaultLanguage = "python"
)

// Body is a rendered notebook: an HTML fragment to be embedded verbatim in a page.
type Body string

// Renderer converts notebooks into HTML fragments.
//
// A Renderer holds no per-notebook state and may be reused.
type Renderer struct {
	markdown  goldmark.Markdown
	formatter *chromahtml.Formatter
	style     *chroma.Style
	language  string
	logger    *slog.Logger
}

// rendererConfig holds mutable state during Renderer construction.
type rendererConfig struct {
	style    string
	language string
	logger   *slog.Logger
}

// Option configures a [Renderer].
type Option func(*rendererConfig) error

// WithStyle selects the syntax highlighting style by name (e.g. "friendly",
// "monokai", "github").
func WithStyle(name string) Option {
	return func(cfg *rendererConfig) error {
		if name == "" {
			return errors.New("highlight style cannot be empty")
		}
		cfg.style = name
		return nil
	}
}

// WithLanguage sets the fallback highlighting language for notebooks whose
// metadata names no recognised language.
func WithLanguage(lang string) Option {
	return func(cfg *rendererConfig) error {
		cfg.language = lang
		return nil
	}
}

// WithLogger sets the logger used for skipped outputs and cells.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *rendererConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// New creates a [Renderer].
//
// Returns an error if the highlight style is unknown.
func New(opts ...Option) (*Renderer, error) {
	cfg := &rendererConfig{
		style:    DefaultStyle,
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	style, ok := styles.Registry[cfg.style]
	if !ok {
		return nil, fmt.Errorf("unknown highlight style %q", cfg.style)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			// notebooks routinely embed raw HTML in markdown cells
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		style:     style,
		language:  cfg.language,
		logger:    logger,
	}, nil
}

// Render converts every cell of nb into the classic notebook markup.
func (r *Renderer) Render(nb *notebook.Notebook) (Body, error) {
	if nb == nil {
		return "", errors.New("notebook is nil")
	}

	lexer := r.lexerFor(nb.Metadata.Languages())

	var b strings.Builder
	b.WriteString(`<div id="notebook-container" class="container notebook-container">` + "\n")

	for i, cell := range nb.Cells {
		var err error
		switch cell.Type {
		case notebook.CellMarkdown:
			err = r.renderMarkdownCell(&b, cell)
		case notebook.CellCode:
			err = r.renderCodeCell(&b, cell, lexer)
		case notebook.CellRaw:
			r.renderRawCell(&b, cell, i)
		}
		if err != nil {
			return "", fmt.Errorf("cells[%d]: %w", i, err)
		}
	}

	b.WriteString("</div>\n")

	linked, err := linkHeadings(b.String())
	if err != nil {
		return "", err
	}
	return Body(linked), nil
}

// Stylesheet returns the CSS rules for the configured highlight style.
func (r *Renderer) Stylesheet() (string, error) {
	var b strings.Builder
	if err := r.formatter.WriteCSS(&b, r.style); err != nil {
		return "", fmt.Errorf("failed to write highlight CSS: %w", err)
	}
	return b.String(), nil
}

// lexerFor returns the first lexer known for the candidate languages,
// then the configured fallback, then plain text.
func (r *Renderer) lexerFor(candidates []string) chroma.Lexer {
	names := append(append([]string{}, candidates...), r.language)
	for _, name := range names {
		if name == "" {
			continue
		}
		if l := lexers.Get(name); l != nil {
			return chroma.Coalesce(l)
		}
	}
	return chroma.Coalesce(lexers.Fallback)
}

func (r *Renderer) renderMarkdownCell(b *strings.Builder, cell notebook.Cell) error {
	src := resolveAttachments(cell.Source.String(), cell.Attachments)

	rendered, err := r.renderMarkdown(src)
	if err != nil {
		return err
	}

	b.WriteString(`<div class="cell border-box-sizing text_cell rendered">` + "\n")
	b.WriteString(`<div class="prompt input_prompt">` + "\n</div>\n")
	b.WriteString(`<div class="inner_cell">` + "\n")
	b.WriteString(`<div class="text_cell_render border-box-sizing rendered_html">` + "\n")
	b.WriteString(rendered)
	b.WriteString("</div>\n</div>\n</div>\n")
	return nil
}

func (r *Renderer) renderMarkdown(src string) (string, error) {
	var buf strings.Builder
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderCodeCell(b *strings.Builder, cell notebook.Cell, lexer chroma.Lexer) error {
	highlighted, err := r.highlight(cell.Source.String(), lexer)
	if err != nil {
		return err
	}

	b.WriteString(`<div class="cell border-box-sizing code_cell rendered">` + "\n")
	b.WriteString(`<div class="input">` + "\n")
	fmt.Fprintf(b, `<div class="prompt input_prompt">In [%s]:</div>`+"\n", executionCount(cell.ExecutionCount))
	b.WriteString(`<div class="inner_cell">` + "\n")
	b.WriteString(`<div class="input_area">` + "\n")
	fmt.Fprintf(b, `<div class="highlight hl-%s">`, lexerClass(lexer))
	b.WriteString(highlighted)
	b.WriteString("</div>\n</div>\n</div>\n</div>\n")

	if len(cell.Outputs) > 0 {
		if err := r.renderOutputs(b, cell.Outputs); err != nil {
			return err
		}
	}

	b.WriteString("</div>\n")
	return nil
}

func (r *Renderer) highlight(src string, lexer chroma.Lexer) (string, error) {
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise source: %w", err)
	}
	var buf strings.Builder
	if err := r.formatter.Format(&buf, r.style, it); err != nil {
		return "", fmt.Errorf("failed to highlight source: %w", err)
	}
	return buf.String(), nil
}

// renderRawCell passes raw cells through only when they target HTML.
func (r *Renderer) renderRawCell(b *strings.Builder, cell notebook.Cell, index int) {
	mime := cell.RawMimeType()
	if mime != "text/html" {
		r.logger.Debug("raw cell skipped", "cell", index, "raw_mimetype", mime)
		return
	}
	b.WriteString(cell.Source.String())
	b.WriteString("\n")
}

func lexerClass(lexer chroma.Lexer) string {
	return strings.ToLower(strings.Join(strings.Fields(lexer.Config().Name), "-"))
}

func executionCount(n *int) string {
	if n == nil {
		return " "
	}
	return fmt.Sprintf("%d", *n)
}
