package page

import "embed"

// Assets is an embedded filesystem containing the page template and its
// stylesheet.
//
// The filesystem structure is:
//
//	assets/
//	  page.html.tmpl - HTML5 document skeleton
//	  style.css      - page, notebook cell and ANSI colour styles
//
//go:embed assets/*
var Assets embed.FS
