package plotpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

// getTemplates returns the parsed templates, loading them once.
func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error

		templates, parseErr = template.New("").ParseFS(templateFS, "templates/*.html")
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})

	return templates, errTemplates
}

// renderTemplate renders a named template with the given data.
func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", fmt.Errorf("loading templates: %w", err)
	}

	var buf bytes.Buffer

	err = tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil //nolint:gosec // templates are trusted embedded assets
}

type pageData struct {
	Title    string
	Subtitle string
	Theme    ThemeConfig
	Content  template.HTML
}

type sectionData struct {
	Title    string
	Subtitle string
	Chart    template.HTML
}
