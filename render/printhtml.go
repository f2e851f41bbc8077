package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
)

//go:embed templates/print.html
var templateFS embed.FS

var printTemplate = template.Must(template.New("print.html").Funcs(template.FuncMap{
	"mm": func(v float64) template.CSS {
		return template.CSS(fmt.Sprintf("%.2fmm", v))
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"year": func(iso string) string {
		t, err := time.Parse(time.RFC3339, iso)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%d", t.Year())
	},
	"skillNames": func(skills []RenderableSkill) string {
		names := make([]string, 0, len(skills))
		for _, s := range skills {
			names = append(names, s.SkillName)
		}
		return strings.Join(names, " · ")
	},
}).ParseFS(templateFS, "templates/print.html"))

// printView is the root context of the print template.
type printView struct {
	Title        string
	Colors       ColorScheme
	PageWidthMm  float64
	PageHeightMm float64
	Pages        []Page
}

// WritePortfolioHTML renders the portfolio's laid-out pages as print HTML.
// The PDF exporter loads this exact output in the headless browser, so the
// layout engine runs once and its decisions bind both surfaces.
func WritePortfolioHTML(w io.Writer, doc *RenderablePortfolio) error {
	return printTemplate.Execute(w, printView{
		Title:        doc.PortfolioName,
		Colors:       doc.ColorScheme,
		PageWidthMm:  PageWidthMm,
		PageHeightMm: PageHeightMm,
		Pages:        BuildPages(doc),
	})
}

// WriteCVHTML renders the standalone CV document as print HTML.
func WriteCVHTML(w io.Writer, doc *RenderableCV) error {
	title := "Curriculum Vitae"
	if doc.PersonalHeader != nil {
		title = *doc.PersonalHeader
	}
	return printTemplate.Execute(w, printView{
		Title:        title,
		Colors:       doc.ColorScheme,
		PageWidthMm:  PageWidthMm,
		PageHeightMm: PageHeightMm,
		Pages:        []Page{BuildCVPage(doc)},
	})
}
