// Package plotpage renders the HTML report page: themed chart sections built
// from go-echarts components and embedded templates.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

// Renderable is the interface for chart components.
type Renderable interface {
	Render(w io.Writer) error
}

// Section is one chart section of the page.
type Section struct {
	Title    string
	Subtitle string
	Chart    Renderable
}

// Page is a complete report page.
type Page struct {
	Title    string
	Subtitle string
	Theme    Theme
	Sections []Section
}

// NewPage creates a report page with the default theme.
func NewPage(title, subtitle string) *Page {
	return &Page{
		Title:    title,
		Subtitle: subtitle,
		Theme:    ThemeLight,
	}
}

// WithTheme sets the page theme.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as a standalone HTML document.
func (p *Page) Render(w io.Writer) error {
	var sectionsHTML bytes.Buffer

	for _, section := range p.Sections {
		sectionHTML, err := renderSection(section)
		if err != nil {
			return fmt.Errorf("render section %q: %w", section.Title, err)
		}

		sectionsHTML.WriteString(string(sectionHTML))
	}

	html, err := renderTemplate("page.html", pageData{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Theme:    GetThemeConfig(p.Theme),
		Content:  template.HTML(sectionsHTML.String()),
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = w.Write([]byte(html))
	if err != nil {
		return fmt.Errorf("write page: %w", err)
	}

	return nil
}

func renderSection(section Section) (template.HTML, error) {
	return renderTemplate("section.html", sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Chart:    template.HTML(renderChart(section.Chart)),
	})
}

func renderChart(chart Renderable) string {
	if chart == nil {
		return ""
	}

	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return ""
	}

	return extractChartContent(buf.String())
}

// extractChartContent strips the standalone HTML shell that echarts emits,
// leaving only the chart div and its script.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	return html[start:end]
}
