// Package assets embeds the stylesheets and page shell templates the
// report artifacts are built from. The screen shell mirrors the published
// site chrome (header banner, navigation strip, sidebar TOC, footer); the
// print shell carries the title page and pagination rules for the PDF.
package assets

import _ "embed"

// ScreenCSS styles the HTML artifact for on-screen reading.
//
//go:embed styles/screen.css
var ScreenCSS string

// PrintCSS styles the HTML handed to the PDF renderer.
//
//go:embed styles/print.css
var PrintCSS string

// PageTemplate is the html/template source for the screen page shell.
//
//go:embed templates/page.html
var PageTemplate string

// PrintTemplate is the html/template source for the print page shell.
//
//go:embed templates/print.html
var PrintTemplate string
