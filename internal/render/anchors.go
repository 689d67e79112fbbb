package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// linkHeadings gives every markdown heading a document-unique id and appends
// a pilcrow anchor link pointing at it.
func linkHeadings(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered body: %w", err)
	}

	used := make(map[string]bool)
	doc.Find(".text_cell_render").Find(headingSelector).Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if id == "" {
			id = strings.Join(strings.Fields(s.Text()), "-")
		}
		if id == "" {
			return
		}

		unique := id
		for n := 1; used[unique]; n++ {
			unique = fmt.Sprintf("%s-%d", id, n)
		}
		used[unique] = true

		s.SetAttr("id", unique)
		s.AppendHtml(`<a class="anchor-link" href="#` + html.EscapeString(unique) + `">¶</a>`)
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialise rendered body: %w", err)
	}
	return out, nil
}
