package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMalformed is wrapped by every error caused by invalid notebook data.
var ErrMalformed = errors.New("malformed notebook")

// CurrentFormat is the nbformat major version documents are upgraded to.
const CurrentFormat = 4

// CellType identifies the kind of a notebook cell.
type CellType string

const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
	CellRaw      CellType = "raw"
)

// OutputType identifies the kind of a code cell output.
type OutputType string

const (
	OutputStream        OutputType = "stream"
	OutputDisplayData   OutputType = "display_data"
	OutputExecuteResult OutputType = "execute_result"
	OutputError         OutputType = "error"
)

// Notebook is a parsed nbformat 4 document.
type Notebook struct {
	Format      int      `json:"nbformat"`
	FormatMinor int      `json:"nbformat_minor"`
	Metadata    Metadata `json:"metadata"`
	Cells       []Cell   `json:"cells"`
}

// Metadata holds the notebook-level metadata the renderer cares about.
// Unknown keys are ignored.
type Metadata struct {
	Title        string        `json:"title,omitempty"`
	KernelSpec   *KernelSpec   `json:"kernelspec,omitempty"`
	LanguageInfo *LanguageInfo `json:"language_info,omitempty"`
}

// KernelSpec describes the kernel the notebook was last run with.
type KernelSpec struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language,omitempty"`
}

// LanguageInfo describes the kernel language.
type LanguageInfo struct {
	Name          string `json:"name"`
	PygmentsLexer string `json:"pygments_lexer,omitempty"`
	FileExtension string `json:"file_extension,omitempty"`
}

// Languages returns the candidate highlighting languages for code cells,
// most specific first. Empty values are omitted.
func (m Metadata) Languages() []string {
	var langs []string
	add := func(s string) {
		if s != "" {
			langs = append(langs, s)
		}
	}
	if m.LanguageInfo != nil {
		add(m.LanguageInfo.PygmentsLexer)
		add(m.LanguageInfo.Name)
	}
	if m.KernelSpec != nil {
		add(m.KernelSpec.Language)
	}
	return langs
}

// Cell is a single notebook cell.
type Cell struct {
	Type           CellType              `json:"cell_type"`
	ID             string                `json:"id,omitempty"`
	Source         MultilineString       `json:"source"`
	Metadata       map[string]any        `json:"metadata,omitempty"`
	ExecutionCount *int                  `json:"execution_count,omitempty"`
	Outputs        []Output              `json:"outputs,omitempty"`
	Attachments    map[string]MimeBundle `json:"attachments,omitempty"`
}

// RawMimeType returns the target format of a raw cell, if any.
func (c Cell) RawMimeType() string {
	for _, key := range []string{"raw_mimetype", "format"} {
		if v, ok := c.Metadata[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Output is a single output of a code cell.
type Output struct {
	Type           OutputType      `json:"output_type"`
	Name           string          `json:"name,omitempty"`
	Text           MultilineString `json:"text,omitempty"`
	Data           MimeBundle      `json:"data,omitempty"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
	ExecutionCount *int            `json:"execution_count,omitempty"`
	EName          string          `json:"ename,omitempty"`
	EValue         string          `json:"evalue,omitempty"`
	Traceback      []string        `json:"traceback,omitempty"`
}

// MimeBundle maps MIME types to their raw JSON payload. Textual payloads are
// stored as strings or lists of strings; application/json payloads are
// arbitrary JSON.
type MimeBundle map[string]json.RawMessage

// Text returns the payload for mime as a joined string.
// It reports false if the type is absent or the payload is not textual.
func (b MimeBundle) Text(mime string) (string, bool) {
	raw, ok := b[mime]
	if !ok {
		return "", false
	}
	var s MultilineString
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return string(s), true
}

// MultilineString is a string that nbformat may store as a list of lines.
type MultilineString string

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (s *MultilineString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '[' {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return err
		}
		*s = MultilineString(strings.Join(lines, ""))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = MultilineString(str)
	return nil
}

// String returns the joined text.
func (s MultilineString) String() string {
	return string(s)
}

// Read reads and parses the notebook at path.
func Read(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook: %w", err)
	}
	return Parse(data)
}

// Parse decodes notebook JSON, upgrading older formats to version 4.
func Parse(data []byte) (*Notebook, error) {
	var header struct {
		Format *int `json:"nbformat"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", ErrMalformed, err)
	}
	if header.Format == nil {
		return nil, fmt.Errorf("%w: missing nbformat version", ErrMalformed)
	}

	var (
		nb  *Notebook
		err error
	)
	switch *header.Format {
	case 3:
		nb, err = parseV3(data)
	case 4:
		nb, err = parseV4(data)
	default:
		return nil, fmt.Errorf("%w: unsupported nbformat %d", ErrMalformed, *header.Format)
	}
	if err != nil {
		return nil, err
	}

	if err := nb.validate(); err != nil {
		return nil, err
	}
	return nb, nil
}

func parseV4(data []byte) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &nb, nil
}

// validate checks the cell and output types against the nbformat 4 schema.
func (nb *Notebook) validate() error {
	for i, cell := range nb.Cells {
		switch cell.Type {
		case CellMarkdown, CellRaw:
		case CellCode:
			for j, out := range cell.Outputs {
				switch out.Type {
				case OutputStream, OutputDisplayData, OutputExecuteResult, OutputError:
				default:
					return fmt.Errorf("%w: cells[%d].outputs[%d]: unknown output_type %q",
						ErrMalformed, i, j, out.Type)
				}
			}
		case "":
			return fmt.Errorf("%w: cells[%d]: cell_type is required", ErrMalformed, i)
		default:
			return fmt.Errorf("%w: cells[%d]: unknown cell_type %q", ErrMalformed, i, cell.Type)
		}
	}
	return nil
}
