package render

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/jpalmerr/notebookview/notebook"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(append([]Option{WithLogger(testLogger())}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

// renderDoc parses a notebook, renders it and returns the body as a document.
func renderDoc(t *testing.T, r *Renderer, nbJSON string) (*goquery.Document, Body) {
	t.Helper()
	nb, err := notebook.Parse([]byte(nbJSON))
	if err != nil {
		t.Fatalf("notebook.Parse() error = %v", err)
	}
	body, err := r.Render(nb)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	return doc, body
}

func notebookJSON(cells string) string {
	return `{"nbformat": 4, "nbformat_minor": 5,
		"metadata": {"language_info": {"name": "python"}},
		"cells": [` + cells + `]}`
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New(WithStyle("no-such-style"))
	if err == nil {
		t.Fatal("New() expected error for unknown style, got nil")
	}
	if !strings.Contains(err.Error(), "unknown highlight style") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New(WithStyle("")); err == nil {
		t.Error("New(WithStyle(\"\")) expected error, got nil")
	}
	if _, err := New(WithLogger(nil)); err == nil {
		t.Error("New(WithLogger(nil)) expected error, got nil")
	}
}

func TestRender_NilNotebook(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Render(nil); err == nil {
		t.Fatal("Render(nil) expected error, got nil")
	}
}

func TestRender_MarkdownCell(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(
		`{"cell_type": "markdown", "metadata": {}, "source": ["# Overview\n", "\n", "hello"]}`,
	))

	cell := doc.Find(".text_cell .text_cell_render")
	if cell.Length() != 1 {
		t.Fatalf("expected 1 rendered markdown cell, got %d", cell.Length())
	}
	if got := strings.TrimSpace(cell.Find("p").Text()); got != "hello" {
		t.Errorf("paragraph text = %q, want %q", got, "hello")
	}

	h1 := cell.Find("h1")
	if id, _ := h1.Attr("id"); id != "overview" {
		t.Errorf("heading id = %q, want %q", id, "overview")
	}
	if href, _ := h1.Find("a.anchor-link").Attr("href"); href != "#overview" {
		t.Errorf("anchor href = %q, want %q", href, "#overview")
	}
}

func TestRender_DuplicateHeadingsGetUniqueIDs(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(`
		{"cell_type": "markdown", "metadata": {}, "source": "## Results"},
		{"cell_type": "markdown", "metadata": {}, "source": "## Results"},
		{"cell_type": "markdown", "metadata": {}, "source": "## Results"}`,
	))

	var ids []string
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})

	want := []string{"results", "results-1", "results-2"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("heading ids = %v, want %v", ids, want)
	}
}

func TestRender_CodeCellWithOutputs(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(`
		{"cell_type": "code", "metadata": {}, "execution_count": 3,
		 "source": ["import sys\n", "print(len(sys.argv))"],
		 "outputs": [
		   {"output_type": "stream", "name": "stdout", "text": ["1\n"]},
		   {"output_type": "execute_result", "execution_count": 3, "metadata": {},
		    "data": {"text/plain": ["42"]}}
		 ]}`,
	))

	if got := doc.Find(".code_cell .input_prompt").Text(); got != "In [3]:" {
		t.Errorf("input prompt = %q, want %q", got, "In [3]:")
	}
	if doc.Find(".input_area .highlight.hl-python").Length() != 1 {
		t.Error("expected python highlight block")
	}
	if !strings.Contains(doc.Find(".input_area").Text(), "print(len(sys.argv))") {
		t.Errorf("source missing from input area: %q", doc.Find(".input_area").Text())
	}

	if got := strings.TrimSpace(doc.Find(".output_stdout pre").Text()); got != "1" {
		t.Errorf("stdout = %q, want %q", got, "1")
	}
	if got := doc.Find(".output_prompt").Text(); got != "Out[3]:" {
		t.Errorf("output prompt = %q, want %q", got, "Out[3]:")
	}
	if got := doc.Find(".output_execute_result pre").Text(); got != "42" {
		t.Errorf("execute result = %q, want %q", got, "42")
	}
}

func TestRender_UnexecutedCodeCell(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(
		`{"cell_type": "code", "metadata": {}, "execution_count": null, "source": "x = 1", "outputs": []}`,
	))

	if got := doc.Find(".input_prompt").Text(); got != "In [ ]:" {
		t.Errorf("input prompt = %q, want %q", got, "In [ ]:")
	}
	if doc.Find(".output_wrapper").Length() != 0 {
		t.Error("cell without outputs should have no output wrapper")
	}
}

func TestRender_MimePriority(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(`
		{"cell_type": "code", "metadata": {}, "execution_count": 1, "source": "df",
		 "outputs": [
		   {"output_type": "execute_result", "execution_count": 1, "metadata": {},
		    "data": {"text/plain": ["plain repr"], "text/html": ["<table class=\"dataframe\"><tr><td>cell</td></tr></table>"]}},
		   {"output_type": "display_data", "metadata": {"image/png": {"width": 120}},
		    "data": {"text/plain": ["<Figure>"], "image/png": "iVBORw0K\nGgo=\n"}}
		 ]}`,
	))

	htmlOut := doc.Find(".output_html.output_execute_result")
	if htmlOut.Find("table.dataframe td").Text() != "cell" {
		t.Errorf("expected dataframe table in html output, got %q", htmlOut.Text())
	}
	if strings.Contains(doc.Text(), "plain repr") {
		t.Error("text/plain should not be rendered when text/html is available")
	}

	img := doc.Find(".output_png img")
	if src, _ := img.Attr("src"); src != "data:image/png;base64,iVBORw0KGgo=" {
		t.Errorf("img src = %q", src)
	}
	if width, _ := img.Attr("width"); width != "120" {
		t.Errorf("img width = %q, want 120", width)
	}
	if strings.Contains(doc.Text(), "<Figure>") {
		t.Error("text/plain should not be rendered when image/png is available")
	}
}

func TestRender_MarkdownAndLatexOutputs(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(`
		{"cell_type": "code", "metadata": {}, "execution_count": 1, "source": "show()",
		 "outputs": [
		   {"output_type": "display_data", "metadata": {}, "data": {"text/markdown": "**bold**"}},
		   {"output_type": "display_data", "metadata": {}, "data": {"text/latex": "$x < y$"}}
		 ]}`,
	))

	if got := doc.Find(".output_markdown strong").Text(); got != "bold" {
		t.Errorf("markdown output = %q, want %q", got, "bold")
	}
	if got := strings.TrimSpace(doc.Find(".output_latex").Text()); got != "$x < y$" {
		t.Errorf("latex output = %q, want %q", got, "$x < y$")
	}
}

func TestRender_UnrenderableOutputSkipped(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(`
		{"cell_type": "code", "metadata": {}, "execution_count": 1, "source": "w",
		 "outputs": [
		   {"output_type": "display_data", "metadata": {}, "data": {"application/vnd.jupyter.widget-view+json": {"model_id": "x"}}}
		 ]}`,
	))

	if n := doc.Find(".output_area").Length(); n != 0 {
		t.Errorf("expected widget-only output to be skipped, got %d output areas", n)
	}
}

func TestRender_ErrorOutput(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(`
		{"cell_type": "code", "metadata": {}, "execution_count": 2, "source": "1/0",
		 "outputs": [
		   {"output_type": "error", "ename": "ZeroDivisionError", "evalue": "division by zero",
		    "traceback": ["\u001b[0;31mZeroDivisionError\u001b[0m: division by zero"]}
		 ]}`,
	))

	errOut := doc.Find(".output_error pre")
	if got := errOut.Find("span.ansi-red-fg").Text(); got != "ZeroDivisionError" {
		t.Errorf("colored span = %q, want ZeroDivisionError", got)
	}
	if got := errOut.Text(); got != "ZeroDivisionError: division by zero" {
		t.Errorf("traceback text = %q", got)
	}
}

func TestRender_ErrorOutputWithoutTraceback(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(`
		{"cell_type": "code", "metadata": {}, "execution_count": 2, "source": "boom()",
		 "outputs": [{"output_type": "error", "ename": "RuntimeError", "evalue": "boom", "traceback": []}]}`,
	))

	if got := doc.Find(".output_error pre").Text(); got != "RuntimeError: boom" {
		t.Errorf("error text = %q, want %q", got, "RuntimeError: boom")
	}
}

func TestRender_RawCells(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(`
		{"cell_type": "raw", "metadata": {"raw_mimetype": "text/html"}, "source": "<aside id=\"raw-html\">kept</aside>"},
		{"cell_type": "raw", "metadata": {"raw_mimetype": "text/latex"}, "source": "\\section{dropped}"},
		{"cell_type": "raw", "metadata": {}, "source": "also dropped"}`,
	))

	if got := doc.Find("#raw-html").Text(); got != "kept" {
		t.Errorf("html raw cell = %q, want kept", got)
	}
	text := doc.Text()
	if strings.Contains(text, "dropped") {
		t.Errorf("non-html raw cells should be skipped, got %q", text)
	}
}

func TestRender_Attachments(t *testing.T) {
	r := newTestRenderer(t)
	doc, _ := renderDoc(t, r, notebookJSON(`
		{"cell_type": "markdown", "metadata": {}, "source": "![chart](attachment:chart.png)",
		 "attachments": {"chart.png": {"image/png": "QUJD"}}}`,
	))

	src, _ := doc.Find(".text_cell_render img").Attr("src")
	if src != "data:image/png;base64,QUJD" {
		t.Errorf("attachment src = %q", src)
	}
}

func TestRender_LanguageFallback(t *testing.T) {
	r := newTestRenderer(t, WithLanguage("go"))
	doc, _ := renderDoc(t, r, `{"nbformat": 4, "nbformat_minor": 5,
		"metadata": {"kernelspec": {"name": "x", "display_name": "X", "language": "nosuchlanguage"}},
		"cells": [{"cell_type": "code", "metadata": {}, "execution_count": 1, "source": "fmt.Println(1)", "outputs": []}]}`)

	if doc.Find(".highlight.hl-go").Length() != 1 {
		html, _ := doc.Html()
		t.Errorf("expected go highlighting fallback, got %s", html)
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := newTestRenderer(t)
	input := notebookJSON(`
		{"cell_type": "markdown", "metadata": {}, "source": "# A\n\n## A"},
		{"cell_type": "code", "metadata": {}, "execution_count": 1, "source": "x",
		 "outputs": [{"output_type": "execute_result", "execution_count": 1, "metadata": {},
		   "data": {"text/plain": "1", "text/html": "<b>1</b>", "image/png": "QQ=="}}]}`)

	_, first := renderDoc(t, r, input)
	_, second := renderDoc(t, r, input)
	if !bytes.Equal([]byte(first), []byte(second)) {
		t.Error("rendering the same notebook twice produced different output")
	}
}

func TestStylesheet(t *testing.T) {
	r := newTestRenderer(t, WithStyle("monokai"))
	css, err := r.Stylesheet()
	if err != nil {
		t.Fatalf("Stylesheet() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("stylesheet should target .chroma classes, got: %.200s", css)
	}
}
