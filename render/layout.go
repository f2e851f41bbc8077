package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/arcfolio/backend/models"
)

// Fixed A4 page canvas. All interior geometry is expressed in millimeters;
// PxPerMm converts to device pixels for the on-screen preview only. The
// print step hands millimeter dimensions straight to the PDF engine, so the
// pixel ratio never affects exported output.
const (
	PageWidthMm  = 210.0
	PageHeightMm = 297.0
	PxPerMm      = 3.7795
)

// Minimum height of the technical image block on a detail page.
const minTechHeightMm = 60.0

// PxFromMm converts millimeters to preview pixels.
func PxFromMm(mm float64) float64 {
	return mm * PxPerMm
}

// TwoPageSpread decides whether a project gets a summary+detail spread or a
// single detail page. The predicate is part of the compatibility contract:
// page-count estimates shown before generation depend on it, so it must stay
// exactly
//
//	imageCount > 3 || (hasDetailedText && hasRichData)
//
// where imageCount counts the hero plus gallery images, detailed text means
// any of detailed description / design approach / sustainability features,
// and rich data means a nonzero project value, more than two
// responsibilities, or at least one RIBA stage tag.
func TwoPageSpread(p RenderableProject) bool {
	imageCount := len(p.Images)
	if p.Hero != nil {
		imageCount++
	}
	hasDetailedText := hasText(p.DetailedDescription) ||
		hasText(p.DesignApproach) ||
		hasText(p.SustainabilityFeatures)
	hasRichData := (p.ProjectValue != nil && *p.ProjectValue != 0) ||
		len(p.Responsibilities) > 2 ||
		len(p.RibaStages) > 0
	return imageCount > 3 || (hasDetailedText && hasRichData)
}

func hasText(s *string) bool {
	return s != nil && *s != ""
}

type PageKind string

const (
	PageCover   PageKind = "cover"
	PageSummary PageKind = "summary"
	PageDetail  PageKind = "detail"
	PageCV      PageKind = "cv"
)

// Page is one fixed-size A4 page of the final document. Number is the
// zero-padded global page number; exactly one of the block pointers matching
// Kind is set.
type Page struct {
	Number   string         `json:"number"`
	Kind     PageKind       `json:"kind"`
	WidthMm  float64        `json:"widthMm"`
	HeightMm float64        `json:"heightMm"`
	Margins  models.Margins `json:"margins"`

	Cover   *CoverBlock       `json:"cover,omitempty"`
	Summary *SummaryBlock     `json:"summary,omitempty"`
	Detail  *DetailBlock      `json:"detail,omitempty"`
	CV      *RenderableCVData `json:"cv,omitempty"`
}

// CoverBlock is the centered title block of the first page.
type CoverBlock struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Year     string `json:"year"`
}

// MetaCell is one cell of the summary page's 3-column metadata grid.
type MetaCell struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummaryBlock is the hero page of a two-page spread: full-bleed hero image
// anchored to the top with a footer block overlaid at the bottom.
type SummaryBlock struct {
	Hero         *RenderableImage `json:"hero"`
	HeroHeightMm float64          `json:"heroHeightMm"`
	Title        string           `json:"title"`
	Subtitle     string           `json:"subtitle"`
	Meta         []MetaCell       `json:"meta"`
	Description  string           `json:"description"`
}

// DetailBlock is the workhorse page: top image strip, two-column body and an
// optional technical image at the bottom.
type DetailBlock struct {
	Strip         []RenderableImage `json:"strip"`
	StripHeightMm float64           `json:"stripHeightMm"`

	Responsibilities string   `json:"responsibilities"`
	DesignApproach   string   `json:"designApproach"`
	ProjectData      []string `json:"projectData"`
	Software         []string `json:"software"`
	Sustainability   string   `json:"sustainability"`

	Tech         *RenderableImage `json:"tech,omitempty"`
	TechHeightMm float64          `json:"techHeightMm"`
}

// BuildPages lays the document out page by page: cover first, then each
// project as a spread or a single detail page, then the CV page when
// included. Page numbers are a contiguous zero-padded sequence from 01.
func BuildPages(doc *RenderablePortfolio) []Page {
	counter := 0
	nextNumber := func() string {
		counter++
		return fmt.Sprintf("%02d", counter)
	}

	pages := []Page{{
		Number:   nextNumber(),
		Kind:     PageCover,
		WidthMm:  PageWidthMm,
		HeightMm: PageHeightMm,
		Margins:  doc.Margins,
		Cover:    buildCover(doc),
	}}

	for i := range doc.Projects {
		project := &doc.Projects[i]
		if TwoPageSpread(*project) {
			pages = append(pages, Page{
				Number:   nextNumber(),
				Kind:     PageSummary,
				WidthMm:  PageWidthMm,
				HeightMm: PageHeightMm,
				Margins:  doc.Margins,
				Summary:  buildSummary(project, doc.Settings),
			})
		}
		pages = append(pages, Page{
			Number:   nextNumber(),
			Kind:     PageDetail,
			WidthMm:  PageWidthMm,
			HeightMm: PageHeightMm,
			Margins:  doc.Margins,
			Detail:   buildDetail(project, doc.Settings),
		})
	}

	if doc.IncludeCV && doc.CV != nil {
		pages = append(pages, Page{
			Number:   nextNumber(),
			Kind:     PageCV,
			WidthMm:  PageWidthMm,
			HeightMm: PageHeightMm,
			Margins:  doc.Margins,
			CV:       doc.CV,
		})
	}

	return pages
}

// BuildCVPage lays out the standalone CV document: a single A4 page.
func BuildCVPage(doc *RenderableCV) Page {
	cv := doc.CV
	return Page{
		Number:   "01",
		Kind:     PageCV,
		WidthMm:  PageWidthMm,
		HeightMm: PageHeightMm,
		Margins:  doc.Margins,
		CV:       &cv,
	}
}

func buildCover(doc *RenderablePortfolio) *CoverBlock {
	subtitle := doc.PortfolioName
	if doc.PersonalHeader != nil && *doc.PersonalHeader != "" {
		subtitle = *doc.PersonalHeader
	}
	year := ""
	if t, err := time.Parse(time.RFC3339, doc.CreatedAt); err == nil {
		year = fmt.Sprintf("%d", t.Year())
	}
	return &CoverBlock{Title: "PORTFOLIO", Subtitle: subtitle, Year: year}
}

func buildSummary(p *RenderableProject, sizes LayoutSizes) *SummaryBlock {
	description := p.BriefDescription
	if description == "" && p.DetailedDescription != nil {
		description = *p.DetailedDescription
	}
	return &SummaryBlock{
		Hero:         p.Hero,
		HeroHeightMm: sizes.HeroHeightMm,
		Title:        p.Name,
		Subtitle:     joinNonEmpty(" · ", p.ProjectType, p.Location, yearString(p)),
		Meta: []MetaCell{
			{Label: "Year", Value: yearRange(p)},
			{Label: "Role", Value: dash(p.Role)},
			{Label: "Stages", Value: dash(strings.Join(p.RibaStages, ", "))},
		},
		Description: description,
	}
}

func buildDetail(p *RenderableProject, sizes LayoutSizes) *DetailBlock {
	detail := DetailBlock{
		StripHeightMm:    sizes.StripHeightMm,
		Responsibilities: strings.Join(p.Responsibilities, ". "),
		Software:         p.SoftwareUsed,
	}
	if p.DesignApproach != nil {
		detail.DesignApproach = *p.DesignApproach
	}
	if p.SustainabilityFeatures != nil {
		detail.Sustainability = *p.SustainabilityFeatures
	}

	// Up to two strip images; the template renders the first wider.
	for i, img := range p.Images {
		if i == 2 {
			break
		}
		detail.Strip = append(detail.Strip, img)
	}

	if p.ProjectValue != nil && *p.ProjectValue != 0 {
		detail.ProjectData = append(detail.ProjectData, fmt.Sprintf("£%.1fM", *p.ProjectValue/1_000_000))
	}
	if p.ProjectSize != nil && *p.ProjectSize != 0 {
		detail.ProjectData = append(detail.ProjectData, fmt.Sprintf("%.0fm²", *p.ProjectSize))
	}
	if p.TeamSize != nil && *p.TeamSize != 0 {
		detail.ProjectData = append(detail.ProjectData, fmt.Sprintf("Team of %d", *p.TeamSize))
	}

	if len(p.Images) > 2 {
		tech := p.Images[2]
		detail.Tech = &tech
		detail.TechHeightMm = sizes.TechHeightMm
		if detail.TechHeightMm < minTechHeightMm {
			detail.TechHeightMm = minTechHeightMm
		}
	}

	return &detail
}

func yearString(p *RenderableProject) string {
	if p.YearCompletion != nil {
		return fmt.Sprintf("%d", *p.YearCompletion)
	}
	if p.YearStart != 0 {
		return fmt.Sprintf("%d", p.YearStart)
	}
	return ""
}

func yearRange(p *RenderableProject) string {
	if p.YearStart != 0 && p.YearCompletion != nil {
		return fmt.Sprintf("%d-%d", p.YearStart, *p.YearCompletion)
	}
	return dash(yearString(p))
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
