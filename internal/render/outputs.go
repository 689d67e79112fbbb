package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/jpalmerr/notebookview/notebook"
)

// mimePriority is the order in which display data representations are
// preferred. Types not listed are never rendered.
var mimePriority = []string{
	"text/html",
	"text/markdown",
	"image/svg+xml",
	"text/latex",
	"image/png",
	"image/jpeg",
	"text/plain",
}

// attachmentTypes are the attachment representations usable as <img> sources.
var attachmentTypes = []string{"image/png", "image/jpeg", "image/gif", "image/svg+xml"}

func (r *Renderer) renderOutputs(b *strings.Builder, outputs []notebook.Output) error {
	b.WriteString(`<div class="output_wrapper">` + "\n")
	b.WriteString(`<div class="output">` + "\n")

	for i, out := range outputs {
		inner, err := r.renderOutput(out)
		if err != nil {
			return fmt.Errorf("outputs[%d]: %w", i, err)
		}
		if inner == "" {
			r.logger.Debug("output skipped", "output", i, "output_type", out.Type)
			continue
		}

		b.WriteString(`<div class="output_area">` + "\n")
		if out.Type == notebook.OutputExecuteResult {
			fmt.Fprintf(b, `<div class="prompt output_prompt">Out[%s]:</div>`+"\n", executionCount(out.ExecutionCount))
		} else {
			b.WriteString(`<div class="prompt"></div>` + "\n")
		}
		b.WriteString(inner)
		b.WriteString("</div>\n")
	}

	b.WriteString("</div>\n</div>\n")
	return nil
}

// renderOutput returns the output_subarea markup for a single output, or ""
// if the output has no representation that can be shown.
func (r *Renderer) renderOutput(out notebook.Output) (string, error) {
	switch out.Type {
	case notebook.OutputStream:
		name := out.Name
		if name == "" {
			name = "stdout"
		}
		return fmt.Sprintf(`<div class="output_subarea output_stream output_%s output_text">`+"\n<pre>%s</pre>\n</div>\n",
			html.EscapeString(name), ansiToHTML(out.Text.String())), nil

	case notebook.OutputError:
		text := strings.Join(out.Traceback, "\n")
		if text == "" {
			text = out.EName + ": " + out.EValue
		}
		return fmt.Sprintf(`<div class="output_subarea output_text output_error">`+"\n<pre>%s</pre>\n</div>\n",
			ansiToHTML(text)), nil

	case notebook.OutputDisplayData, notebook.OutputExecuteResult:
		return r.renderData(out)
	}
	return "", nil
}

func (r *Renderer) renderData(out notebook.Output) (string, error) {
	extra := ""
	if out.Type == notebook.OutputExecuteResult {
		extra = " output_execute_result"
	}

	for _, mime := range mimePriority {
		data, ok := out.Data.Text(mime)
		if !ok {
			continue
		}

		switch mime {
		case "text/html":
			return fmt.Sprintf(`<div class="output_html rendered_html output_subarea%s">`+"\n%s\n</div>\n", extra, data), nil

		case "text/markdown":
			rendered, err := r.renderMarkdown(data)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(`<div class="output_markdown rendered_html output_subarea%s">`+"\n%s</div>\n", extra, rendered), nil

		case "image/svg+xml":
			return fmt.Sprintf(`<div class="output_svg output_subarea%s">`+"\n%s\n</div>\n", extra, data), nil

		case "text/latex":
			return fmt.Sprintf(`<div class="output_latex output_subarea%s">`+"\n%s\n</div>\n", extra, html.EscapeString(data)), nil

		case "image/png", "image/jpeg":
			class := "output_png"
			if mime == "image/jpeg" {
				class = "output_jpeg"
			}
			return fmt.Sprintf(`<div class="%s output_subarea%s">`+"\n"+`<img src="%s"%s>`+"\n</div>\n",
				class, extra, dataURI(mime, data), imageSize(out.Metadata, mime)), nil

		case "text/plain":
			return fmt.Sprintf(`<div class="output_text output_subarea%s">`+"\n<pre>%s</pre>\n</div>\n", extra, ansiToHTML(data)), nil
		}
	}
	return "", nil
}

// dataURI builds an inline data URI from base64 payload text, which nbformat
// allows to contain line breaks.
func dataURI(mime, b64 string) string {
	return "data:" + mime + ";base64," + strings.Join(strings.Fields(b64), "")
}

// imageSize returns width/height attributes from per-MIME output metadata.
func imageSize(metadata map[string]any, mime string) string {
	m, ok := metadata[mime].(map[string]any)
	if !ok {
		return ""
	}
	var attrs strings.Builder
	for _, dim := range []string{"width", "height"} {
		if v, ok := m[dim].(float64); ok && v > 0 {
			fmt.Fprintf(&attrs, ` %s="%d"`, dim, int(v))
		}
	}
	return attrs.String()
}

// resolveAttachments rewrites attachment:NAME references in markdown to
// inline data URIs.
func resolveAttachments(src string, attachments map[string]notebook.MimeBundle) string {
	if len(attachments) == 0 {
		return src
	}

	names := make([]string, 0, len(attachments))
	for name := range attachments {
		names = append(names, name)
	}
	// longest first so "a.png" does not clobber "a.png.bak"
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		bundle := attachments[name]
		for _, mime := range attachmentTypes {
			if data, ok := bundle.Text(mime); ok {
				src = strings.ReplaceAll(src, "attachment:"+name, dataURI(mime, data))
				break
			}
		}
	}
	return src
}
