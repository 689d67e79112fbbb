// Package render converts notebook cells into an HTML body fragment.
//
// The markup follows the classic notebook HTML exporter: each cell becomes a
// div.cell with an input prompt and an inner_cell area, code outputs are
// wrapped in output_wrapper/output_area blocks, and markdown is rendered into
// a rendered_html container. The fragment is meant to be embedded in a page
// that provides the stylesheet; [Renderer.Stylesheet] returns the CSS for
// syntax highlighting.
//
// Rendering is deterministic: the same notebook always yields the same bytes.
package render
