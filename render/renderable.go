// Package render builds the flattened, print-ready projections of CV and
// portfolio data and lays them out into A4 page descriptors. The same
// renderable document and the same layout decisions feed the interactive
// preview, the print HTML route and the PDF export, so all three stay
// pixel-identical by construction.
package render

import (
	"github.com/arcfolio/backend/models"
)

// RenderableImage is an asset resolved to a web path.
type RenderableImage struct {
	Path    string  `json:"path"`
	Caption *string `json:"caption"`
}

// RenderableProject is a project flattened for rendering: hero split out,
// remaining images hero-first ordered and resolved to web paths.
type RenderableProject struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Year   *int              `json:"year"`
	Brief  string            `json:"brief"`
	Hero   *RenderableImage  `json:"hero"`
	Images []RenderableImage `json:"images"`

	ProjectType    string   `json:"projectType"`
	Location       string   `json:"location"`
	YearStart      int      `json:"yearStart"`
	YearCompletion *int     `json:"yearCompletion"`
	ClientName     *string  `json:"clientName"`
	PracticeName   string   `json:"practiceName"`
	ProjectValue   *float64 `json:"projectValue"`
	ProjectSize    *float64 `json:"projectSize"`
	Role           string   `json:"role"`
	TeamSize       *int     `json:"teamSize"`

	Responsibilities []string `json:"responsibilities"`
	RibaStages       []string `json:"ribaStages"`

	BriefDescription       string  `json:"briefDescription"`
	DetailedDescription    *string `json:"detailedDescription"`
	DesignApproach         *string `json:"designApproach"`
	KeyChallenges          *string `json:"keyChallenges"`
	SolutionsProvided      *string `json:"solutionsProvided"`
	SustainabilityFeatures *string `json:"sustainabilityFeatures"`

	SoftwareUsed       []string `json:"softwareUsed"`
	SkillsDemonstrated []string `json:"skillsDemonstrated"`
}

// RenderablePersonalInfo is the profile block of a rendered CV.
type RenderablePersonalInfo struct {
	Name                string  `json:"name"`
	ProfessionalTitle   string  `json:"professionalTitle"`
	Email               string  `json:"email"`
	Phone               *string `json:"phone"`
	Location            *string `json:"location"`
	LinkedinURL         *string `json:"linkedinUrl"`
	WebsiteURL          *string `json:"websiteUrl"`
	ProfessionalSummary *string `json:"professionalSummary"`
}

// RenderableExperience flattens an experience entry; dates are ISO-8601
// strings and an open-ended position has a nil end date.
type RenderableExperience struct {
	CompanyName   string  `json:"companyName"`
	PositionTitle string  `json:"positionTitle"`
	Location      string  `json:"location"`
	StartDate     string  `json:"startDate"`
	EndDate       *string `json:"endDate"`
	Description   string  `json:"description"`
}

type RenderableEducation struct {
	InstitutionName string  `json:"institutionName"`
	DegreeType      string  `json:"degreeType"`
	FieldOfStudy    string  `json:"fieldOfStudy"`
	Location        string  `json:"location"`
	StartDate       string  `json:"startDate"`
	EndDate         *string `json:"endDate"`
	Grade           *string `json:"grade"`
}

type RenderableSkill struct {
	Category         string `json:"category"`
	SkillName        string `json:"skillName"`
	ProficiencyLevel string `json:"proficiencyLevel"`
	YearsExperience  *int   `json:"yearsExperience"`
}

// RenderableCVData is the CV block shared by the standalone CV document and a
// portfolio with cvIncluded set.
type RenderableCVData struct {
	PersonalInfo *RenderablePersonalInfo `json:"personalInfo"`
	Experiences  []RenderableExperience  `json:"experiences"`
	Education    []RenderableEducation   `json:"education"`
	Skills       []RenderableSkill       `json:"skills"`
}

// IsEmpty reports whether there is nothing at all to render.
func (c RenderableCVData) IsEmpty() bool {
	return c.PersonalInfo == nil &&
		len(c.Experiences) == 0 &&
		len(c.Education) == 0 &&
		len(c.Skills) == 0
}

// RenderablePortfolio is the wire contract between the projection, the
// interactive preview and the print pipeline.
type RenderablePortfolio struct {
	PortfolioName  string              `json:"portfolioName"`
	CreatedAt      string              `json:"createdAt"`
	IncludeCV      bool                `json:"includeCV"`
	Margins        models.Margins      `json:"margins"`
	ColorScheme    ColorScheme         `json:"colorScheme"`
	Projects       []RenderableProject `json:"projects"`
	CV             *RenderableCVData   `json:"cv,omitempty"`
	PersonalHeader *string             `json:"personalHeader"`
	Settings       LayoutSizes         `json:"settings"`
}

// RenderableCV is the standalone CV document.
type RenderableCV struct {
	CreatedAt      string           `json:"createdAt"`
	PersonalHeader *string          `json:"personalHeader"`
	ColorScheme    ColorScheme      `json:"colorScheme"`
	Margins        models.Margins   `json:"margins"`
	CV             RenderableCVData `json:"cv"`
}
