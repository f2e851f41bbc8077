package render

import (
	"time"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/models"
)

// Projector builds renderable documents from the data store. It holds no
// state and never caches: every call reflects the store as it is now.
type Projector struct {
	db database.Database
}

func NewProjector(db database.Database) *Projector {
	return &Projector{db: db}
}

// BuildCV produces the standalone CV document with the global color scheme
// and margins resolved.
func (p *Projector) BuildCV() (*RenderableCV, error) {
	cv, info, err := p.buildCVData()
	if err != nil {
		return nil, err
	}

	settings, err := p.db.SettingsRepo().Get()
	if err != nil {
		return nil, err
	}

	return &RenderableCV{
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		PersonalHeader: personalHeader(info),
		ColorScheme:    ResolveColorScheme("", settings),
		Margins:        ResolveMargins(nil, settings),
		CV:             *cv,
	}, nil
}

// buildCVData gathers and flattens the CV entities. Shared with the
// portfolio projection for the cvIncluded case.
func (p *Projector) buildCVData() (*RenderableCVData, *models.PersonalInfo, error) {
	repo := p.db.CVRepo()

	info, err := repo.PersonalInfo()
	if err != nil {
		return nil, nil, err
	}
	experiences, err := repo.Experiences()
	if err != nil {
		return nil, nil, err
	}
	education, err := repo.Education()
	if err != nil {
		return nil, nil, err
	}
	skills, err := repo.Skills()
	if err != nil {
		return nil, nil, err
	}

	cv := RenderableCVData{
		Experiences: make([]RenderableExperience, 0, len(experiences)),
		Education:   make([]RenderableEducation, 0, len(education)),
		Skills:      make([]RenderableSkill, 0, len(skills)),
	}
	if info != nil {
		cv.PersonalInfo = &RenderablePersonalInfo{
			Name:                info.Name,
			ProfessionalTitle:   info.ProfessionalTitle,
			Email:               info.Email,
			Phone:               info.Phone,
			Location:            info.Location,
			LinkedinURL:         info.LinkedinURL,
			WebsiteURL:          info.WebsiteURL,
			ProfessionalSummary: info.ProfessionalSummary,
		}
	}
	for _, e := range experiences {
		cv.Experiences = append(cv.Experiences, RenderableExperience{
			CompanyName:   e.CompanyName,
			PositionTitle: e.PositionTitle,
			Location:      e.Location,
			StartDate:     isoDate(e.StartDate),
			EndDate:       isoDatePtr(e.EndDate),
			Description:   e.Description,
		})
	}
	for _, e := range education {
		cv.Education = append(cv.Education, RenderableEducation{
			InstitutionName: e.InstitutionName,
			DegreeType:      e.DegreeType,
			FieldOfStudy:    e.FieldOfStudy,
			Location:        e.Location,
			StartDate:       isoDate(e.StartDate),
			EndDate:         isoDatePtr(e.EndDate),
			Grade:           e.Grade,
		})
	}
	for _, s := range skills {
		cv.Skills = append(cv.Skills, RenderableSkill{
			Category:         s.Category,
			SkillName:        s.SkillName,
			ProficiencyLevel: s.ProficiencyLevel,
			YearsExperience:  s.YearsExperience,
		})
	}
	return &cv, info, nil
}

func personalHeader(info *models.PersonalInfo) *string {
	if info == nil {
		return nil
	}
	header := info.Name
	if info.ProfessionalTitle != "" {
		if header != "" {
			header += " — " + info.ProfessionalTitle
		} else {
			header = info.ProfessionalTitle
		}
	}
	if header == "" {
		return nil
	}
	return &header
}

func isoDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func isoDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := isoDate(*t)
	return &s
}
