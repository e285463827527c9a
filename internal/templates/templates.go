// Package templates holds the HTML pages served by the label web UI.
package templates

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed index.html.tmpl
var IndexTemplate string

var index = template.Must(template.New("index").Parse(IndexTemplate))

// Label is one rendered label on the index page
type Label struct {
	Text     string
	ImageURL string
}

// IndexData represents data for the index page
type IndexData struct {
	// Base is the article shown in the form
	Base  string
	Count int
	// Requested is the article the user asked for when it was overridden
	Requested  string
	Overridden bool
	// NextNumber is zero when nothing was allocated
	NextNumber int
	Labels     []Label
	PDFURL     string
	Warning    string
}

// WriteIndex renders the index page
func WriteIndex(w io.Writer, data IndexData) error {
	return index.Execute(w, data)
}
