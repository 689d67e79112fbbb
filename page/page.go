// Package page wraps a rendered notebook body in a complete, self-contained
// HTML5 document.
//
// The document skeleton and its stylesheet are embedded at compile time, so
// the produced page has no external asset dependencies: the header, the
// descriptive sections, a "back to top" control and a small smooth-scroll
// script are all inlined.
package page

import (
	"fmt"
	"html/template"
	"io"
)

const templateName = "page.html.tmpl"

var (
	tmpl    = template.Must(template.ParseFS(Assets, "assets/"+templateName))
	baseCSS = mustReadAsset("assets/style.css")
)

func mustReadAsset(name string) string {
	data, err := Assets.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("page: missing embedded asset %s: %v", name, err))
	}
	return string(data)
}

// Section is a static descriptive block shown above the notebook body.
type Section struct {
	Heading string
	Text    string
}

// Content is everything that varies between pages.
//
// Text fields are HTML-escaped. Body and HighlightCSS are trusted output of
// the renderer and are inserted verbatim.
type Content struct {
	Title    string
	Heading  string
	Subtitle string
	Sections []Section

	// Body is the rendered notebook fragment.
	Body string

	// HighlightCSS is appended to the embedded stylesheet.
	HighlightCSS string
}

// view is the template's data. Trusted fields are converted to html/template
// types here so nothing else needs to know about them.
type view struct {
	Title      string
	Heading    string
	Subtitle   string
	Sections   []Section
	Stylesheet template.CSS
	Body       template.HTML
}

// Render writes the complete HTML document for c to w.
func Render(w io.Writer, c Content) error {
	v := view{
		Title:      c.Title,
		Heading:    c.Heading,
		Subtitle:   c.Subtitle,
		Sections:   c.Sections,
		Stylesheet: template.CSS(baseCSS + "\n" + c.HighlightCSS),
		Body:       template.HTML(c.Body),
	}
	if err := tmpl.ExecuteTemplate(w, templateName, v); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// Stylesheet returns the embedded page stylesheet.
func Stylesheet() string {
	return baseCSS
}
