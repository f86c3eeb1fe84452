package render

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/Sternrassler/employee-directory/pkg/screen"
)

//go:embed templates/directory.html
var pageTemplate string

// PageTemplate is the parsed HTML template for the directory screen. It is
// named "directory.html".
var PageTemplate = template.Must(template.New("directory.html").Funcs(template.FuncMap{
	"cells": Cells,
}).Parse(pageTemplate))

// Page is the data passed to PageTemplate.
type Page struct {
	View screen.View

	// Notification, when set, is shown once as an alert.
	Notification string
}

// HTML writes the full page for p.
func HTML(w io.Writer, p Page) error {
	return PageTemplate.Execute(w, p)
}
