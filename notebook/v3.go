package notebook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// v3Notebook is the nbformat 3 layout: cells live inside worksheets.
type v3Notebook struct {
	Metadata   Metadata `json:"metadata"`
	Worksheets []struct {
		Cells []v3Cell `json:"cells"`
	} `json:"worksheets"`
}

type v3Cell struct {
	Type         string          `json:"cell_type"`
	Source       MultilineString `json:"source"`
	Input        MultilineString `json:"input"`
	Language     string          `json:"language"`
	Level        int             `json:"level"`
	PromptNumber *int            `json:"prompt_number"`
	Metadata     map[string]any  `json:"metadata"`
	Outputs      []v3Output      `json:"outputs"`
}

// v3Output keeps the whole object because legacy outputs store their MIME
// payloads under short top-level keys ("png", "html", "text", ...).
type v3Output map[string]json.RawMessage

// v3MimeKeys maps legacy output keys to MIME types.
var v3MimeKeys = []struct {
	key  string
	mime string
}{
	{"text", "text/plain"},
	{"html", "text/html"},
	{"svg", "image/svg+xml"},
	{"png", "image/png"},
	{"jpeg", "image/jpeg"},
	{"latex", "text/latex"},
	{"json", "application/json"},
	{"javascript", "application/javascript"},
}

func parseV3(data []byte) (*Notebook, error) {
	var old v3Notebook
	if err := json.Unmarshal(data, &old); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	nb := &Notebook{
		Format:      CurrentFormat,
		FormatMinor: 0,
		Metadata:    old.Metadata,
		Cells:       []Cell{},
	}

	for w, ws := range old.Worksheets {
		for i, c := range ws.Cells {
			cell, err := upgradeCell(c)
			if err != nil {
				return nil, fmt.Errorf("worksheets[%d].cells[%d]: %w", w, i, err)
			}
			if nb.Metadata.KernelSpec == nil && c.Language != "" && nb.Metadata.LanguageInfo == nil {
				nb.Metadata.LanguageInfo = &LanguageInfo{Name: c.Language}
			}
			nb.Cells = append(nb.Cells, cell)
		}
	}
	return nb, nil
}

func upgradeCell(c v3Cell) (Cell, error) {
	switch c.Type {
	case "code":
		cell := Cell{
			Type:           CellCode,
			Source:         c.Input,
			Metadata:       c.Metadata,
			ExecutionCount: c.PromptNumber,
			Outputs:        make([]Output, 0, len(c.Outputs)),
		}
		for j, o := range c.Outputs {
			out, err := upgradeOutput(o, c.PromptNumber)
			if err != nil {
				return Cell{}, fmt.Errorf("outputs[%d]: %w", j, err)
			}
			cell.Outputs = append(cell.Outputs, out)
		}
		return cell, nil

	case "heading":
		level := c.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		src := strings.Join(strings.Fields(c.Source.String()), " ")
		return Cell{
			Type:     CellMarkdown,
			Source:   MultilineString(strings.Repeat("#", level) + " " + src),
			Metadata: c.Metadata,
		}, nil

	case "markdown", "html":
		return Cell{Type: CellMarkdown, Source: c.Source, Metadata: c.Metadata}, nil

	case "raw":
		return Cell{Type: CellRaw, Source: c.Source, Metadata: c.Metadata}, nil

	default:
		return Cell{}, fmt.Errorf("%w: unknown cell_type %q", ErrMalformed, c.Type)
	}
}

func upgradeOutput(o v3Output, promptNumber *int) (Output, error) {
	var kind string
	if err := json.Unmarshal(o["output_type"], &kind); err != nil {
		return Output{}, fmt.Errorf("%w: output_type is required", ErrMalformed)
	}

	switch kind {
	case "stream":
		var name string
		if raw, ok := o["stream"]; ok {
			_ = json.Unmarshal(raw, &name)
		}
		if name == "" {
			name = "stdout"
		}
		var text MultilineString
		if raw, ok := o["text"]; ok {
			if err := json.Unmarshal(raw, &text); err != nil {
				return Output{}, fmt.Errorf("%w: stream text: %w", ErrMalformed, err)
			}
		}
		return Output{Type: OutputStream, Name: name, Text: text}, nil

	case "pyout", "display_data":
		out := Output{Type: OutputDisplayData, Data: MimeBundle{}}
		if kind == "pyout" {
			out.Type = OutputExecuteResult
			out.ExecutionCount = promptNumber
			if raw, ok := o["prompt_number"]; ok {
				var n int
				if err := json.Unmarshal(raw, &n); err == nil {
					out.ExecutionCount = &n
				}
			}
		}
		for _, k := range v3MimeKeys {
			if raw, ok := o[k.key]; ok {
				out.Data[k.mime] = raw
			}
		}
		if raw, ok := o["metadata"]; ok {
			_ = json.Unmarshal(raw, &out.Metadata)
		}
		return out, nil

	case "pyerr":
		out := Output{Type: OutputError}
		_ = json.Unmarshal(o["ename"], &out.EName)
		_ = json.Unmarshal(o["evalue"], &out.EValue)
		if raw, ok := o["traceback"]; ok {
			if err := json.Unmarshal(raw, &out.Traceback); err != nil {
				return Output{}, fmt.Errorf("%w: traceback: %w", ErrMalformed, err)
			}
		}
		return out, nil

	default:
		return Output{}, fmt.Errorf("%w: unknown output_type %q", ErrMalformed, kind)
	}
}
