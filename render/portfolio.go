package render

import (
	"github.com/arcfolio/backend/models"
	"github.com/google/uuid"
)

// BuildPortfolio produces the renderable portfolio document, or (nil, nil)
// when no portfolio exists for the ID. Links whose project has been deleted
// are skipped.
func (p *Projector) BuildPortfolio(id uuid.UUID) (*RenderablePortfolio, error) {
	portfolio, err := p.db.PortfolioRepo().FindByID(id)
	if err != nil {
		return nil, err
	}
	if portfolio == nil {
		return nil, nil
	}

	appSettings, err := p.db.SettingsRepo().Get()
	if err != nil {
		return nil, err
	}
	settings := DecodePortfolioSettings(portfolio.Settings)

	projects := make([]RenderableProject, 0, len(portfolio.Projects))
	for _, link := range portfolio.Projects {
		if link.Project == nil {
			continue
		}
		projects = append(projects, projectToRenderable(link))
	}

	doc := RenderablePortfolio{
		PortfolioName: portfolio.PortfolioName,
		CreatedAt:     portfolio.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		IncludeCV:     portfolio.CVIncluded,
		Margins:       ResolveMargins(settings.Margins, appSettings),
		ColorScheme:   ResolveColorScheme(settings.ColorScheme, appSettings),
		Projects:      projects,
		Settings:      ResolveLayoutSizes(settings),
	}

	if portfolio.CVIncluded {
		cv, info, err := p.buildCVData()
		if err != nil {
			return nil, err
		}
		doc.CV = cv
		doc.PersonalHeader = personalHeader(info)
	}

	return &doc, nil
}

// projectToRenderable flattens one portfolio link: picks the hero, filters to
// the link's selected asset subset, orders hero first and resolves web paths.
func projectToRenderable(link models.PortfolioProject) RenderableProject {
	project := link.Project

	withFile := make([]models.ProjectAsset, 0, len(project.Assets))
	for _, a := range project.Assets {
		if a.FileName != "" {
			withFile = append(withFile, a)
		}
	}

	// Working set: explicit non-empty subset from the link, else every asset
	// with a file. Assets arrive already in display order.
	selected := withFile
	if len(link.IncludedAssets) > 0 {
		included := make(map[string]bool, len(link.IncludedAssets))
		for _, id := range link.IncludedAssets {
			included[id] = true
		}
		selected = make([]models.ProjectAsset, 0, len(withFile))
		for _, a := range withFile {
			if included[a.ID.String()] {
				selected = append(selected, a)
			}
		}
	}

	hero := pickHero(link, withFile, selected)

	// Hero first, then the rest of the selection in display order. A hero
	// outside the selection still leads but contributes no gallery slot.
	images := make([]RenderableImage, 0, len(selected))
	for _, a := range selected {
		if hero != nil && a.ID == hero.ID {
			continue
		}
		images = append(images, toImage(a))
	}

	rp := RenderableProject{
		ID:                     project.ID.String(),
		Name:                   project.ProjectName,
		Type:                   project.ProjectType,
		Year:                   projectYear(project),
		Brief:                  project.BriefDescription,
		Images:                 images,
		ProjectType:            project.ProjectType,
		Location:               project.Location,
		YearStart:              project.YearStart,
		YearCompletion:         project.YearCompletion,
		ClientName:             project.ClientName,
		PracticeName:           project.PracticeName,
		ProjectValue:           project.ProjectValue,
		ProjectSize:            project.ProjectSize,
		Role:                   project.Role,
		TeamSize:               project.TeamSize,
		Responsibilities:       append([]string{}, project.Responsibilities...),
		RibaStages:             append([]string{}, project.RibaStages...),
		BriefDescription:       project.BriefDescription,
		DetailedDescription:    project.DetailedDescription,
		DesignApproach:         project.DesignApproach,
		KeyChallenges:          project.KeyChallenges,
		SolutionsProvided:      project.SolutionsProvided,
		SustainabilityFeatures: project.SustainabilityFeatures,
		SoftwareUsed:           append([]string{}, project.SoftwareUsed...),
		SkillsDemonstrated:     append([]string{}, project.SkillsDemonstrated...),
	}
	if hero != nil {
		img := toImage(*hero)
		rp.Hero = &img
	}
	return rp
}

// pickHero resolves the hero: per-link override when it names a selected
// asset, else the project's hero-flagged asset, else the first of the
// selection, else none.
func pickHero(link models.PortfolioProject, withFile, selected []models.ProjectAsset) *models.ProjectAsset {
	if link.HeroAssetID != nil {
		for i := range selected {
			if selected[i].ID == *link.HeroAssetID {
				return &selected[i]
			}
		}
	}
	for i := range withFile {
		if withFile[i].IsHeroImage {
			return &withFile[i]
		}
	}
	if len(selected) > 0 {
		return &selected[0]
	}
	return nil
}

func toImage(a models.ProjectAsset) RenderableImage {
	return RenderableImage{
		Path:    ResolveAssetPath(a.FileName, a.FilePath, a.IsImage()),
		Caption: a.Caption,
	}
}

func projectYear(p *models.Project) *int {
	if p.YearCompletion != nil {
		return p.YearCompletion
	}
	if p.YearStart != 0 {
		year := p.YearStart
		return &year
	}
	return nil
}
