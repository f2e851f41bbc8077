package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfolio/backend/models"
)

func strPtr(s string) *string { return &s }

func imageProject(imageCount int) RenderableProject {
	var p RenderableProject
	if imageCount > 0 {
		hero := RenderableImage{Path: "/uploads/projects/optimized/hero.jpg"}
		p.Hero = &hero
		imageCount--
	}
	for i := 0; i < imageCount; i++ {
		p.Images = append(p.Images, RenderableImage{Path: "/uploads/projects/optimized/img.jpg"})
	}
	return p
}

func TestTwoPageSpreadImageCountAlone(t *testing.T) {
	assert.True(t, TwoPageSpread(imageProject(4)))
	assert.False(t, TwoPageSpread(imageProject(3)))
}

func TestTwoPageSpreadTextWithoutRichData(t *testing.T) {
	p := imageProject(2)
	p.DetailedDescription = strPtr("a long narrative")
	assert.False(t, TwoPageSpread(p))
}

func TestTwoPageSpreadTextWithRichData(t *testing.T) {
	p := imageProject(2)
	p.DetailedDescription = strPtr("a long narrative")
	value := 2_500_000.0
	p.ProjectValue = &value
	assert.True(t, TwoPageSpread(p))
}

func TestTwoPageSpreadRichDataVariants(t *testing.T) {
	base := imageProject(1)
	base.DesignApproach = strPtr("approach")

	p := base
	p.Responsibilities = []string{"a", "b"}
	assert.False(t, TwoPageSpread(p), "two responsibilities are not rich data")

	p = base
	p.Responsibilities = []string{"a", "b", "c"}
	assert.True(t, TwoPageSpread(p))

	p = base
	p.RibaStages = []string{models.RibaStage3}
	assert.True(t, TwoPageSpread(p))

	p = base
	zero := 0.0
	p.ProjectValue = &zero
	assert.False(t, TwoPageSpread(p), "zero value is not rich data")
}

func TestTwoPageSpreadRichDataWithoutText(t *testing.T) {
	p := imageProject(2)
	value := 1_000_000.0
	p.ProjectValue = &value
	p.RibaStages = []string{models.RibaStage2}
	assert.False(t, TwoPageSpread(p))
}

func testPortfolio(projects ...RenderableProject) *RenderablePortfolio {
	return &RenderablePortfolio{
		PortfolioName: "Selected Works",
		CreatedAt:     "2026-03-01T10:00:00.000Z",
		Margins:       models.DefaultMargins(),
		ColorScheme:   ResolveColorScheme("", nil),
		Projects:      projects,
		Settings:      DefaultLayoutSizes(),
	}
}

func TestBuildPagesNumberingContiguous(t *testing.T) {
	spread := imageProject(5)
	single := imageProject(2)
	doc := testPortfolio(spread, single, spread)
	doc.IncludeCV = true
	doc.CV = &RenderableCVData{PersonalInfo: &RenderablePersonalInfo{Name: "A"}}

	pages := BuildPages(doc)

	kinds := make([]PageKind, 0, len(pages))
	for _, p := range pages {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []PageKind{
		PageCover,
		PageSummary, PageDetail,
		PageDetail,
		PageSummary, PageDetail,
		PageCV,
	}, kinds)

	want := []string{"01", "02", "03", "04", "05", "06", "07"}
	for i, p := range pages {
		assert.Equal(t, want[i], p.Number)
	}
}

func TestBuildPagesCoverAlwaysFirst(t *testing.T) {
	pages := BuildPages(testPortfolio())
	require.Len(t, pages, 1)
	assert.Equal(t, PageCover, pages[0].Kind)
	require.NotNil(t, pages[0].Cover)
	assert.Equal(t, "PORTFOLIO", pages[0].Cover.Title)
	assert.Equal(t, "2026", pages[0].Cover.Year)
}

func TestBuildPagesNoCVPageWhenNotIncluded(t *testing.T) {
	doc := testPortfolio(imageProject(1))
	doc.CV = &RenderableCVData{PersonalInfo: &RenderablePersonalInfo{Name: "A"}}
	doc.IncludeCV = false

	pages := BuildPages(doc)
	for _, p := range pages {
		assert.NotEqual(t, PageCV, p.Kind)
	}
}

func TestBuildDetailTechHeightFloor(t *testing.T) {
	p := imageProject(4) // hero + 3 gallery, so a tech block exists
	sizes := DefaultLayoutSizes()
	sizes.TechHeightMm = 20

	detail := buildDetail(&p, sizes)
	require.NotNil(t, detail.Tech)
	assert.Equal(t, 60.0, detail.TechHeightMm)

	sizes.TechHeightMm = 90
	detail = buildDetail(&p, sizes)
	assert.Equal(t, 90.0, detail.TechHeightMm)
}

func TestBuildDetailStripAndProjectData(t *testing.T) {
	p := imageProject(4)
	value := 2_500_000.0
	size := 1250.0
	team := 6
	p.ProjectValue = &value
	p.ProjectSize = &size
	p.TeamSize = &team

	detail := buildDetail(&p, DefaultLayoutSizes())
	assert.Len(t, detail.Strip, 2)
	assert.Equal(t, []string{"£2.5M", "1250m²", "Team of 6"}, detail.ProjectData)
}

func TestPxFromMm(t *testing.T) {
	assert.InDelta(t, 793.695, PxFromMm(PageWidthMm), 0.001)
}

// The JSON preview and the print HTML are built from the same page list; the
// rendered HTML must show exactly the pages the preview promises.
func TestPrintHTMLAgreesWithPageList(t *testing.T) {
	doc := testPortfolio(imageProject(5), imageProject(2))
	doc.IncludeCV = true
	doc.CV = &RenderableCVData{PersonalInfo: &RenderablePersonalInfo{Name: "A", ProfessionalTitle: "Architect", Email: "a@b.c"}}

	pages := BuildPages(doc)

	var sb strings.Builder
	require.NoError(t, WritePortfolioHTML(&sb, doc))
	html := sb.String()

	assert.Equal(t, len(pages), strings.Count(html, `<div class="page"`))
	for _, p := range pages {
		assert.Contains(t, html, `<div class="page-number">`+p.Number+`</div>`)
	}
}
