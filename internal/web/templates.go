// internal/web/templates.go
package web

import (
	"html/template"
	"path/filepath"
)

// LoadTemplates parses the layout and page templates under templatesDir.
func LoadTemplates(templatesDir string) (*template.Template, error) {
	tmpl := template.New("base").Funcs(template.FuncMap{
		"fmtDistance":  FormatDistance,
		"fmtDuration":  FormatDuration,
		"fmtStartTime": FormatStartTime,
		"orNA":         OrNA,
	})

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts/*.html"))
	if err != nil {
		return nil, err
	}

	pages, err := filepath.Glob(filepath.Join(templatesDir, "pages/*.html"))
	if err != nil {
		return nil, err
	}

	return tmpl.ParseFiles(append(layouts, pages...)...)
}
