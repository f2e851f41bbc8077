package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project types
const (
	ProjectTypeResidential   = "RESIDENTIAL"
	ProjectTypeCommercial    = "COMMERCIAL"
	ProjectTypeCultural      = "CULTURAL"
	ProjectTypeEducational   = "EDUCATIONAL"
	ProjectTypeHealthcare    = "HEALTHCARE"
	ProjectTypeHospitality   = "HOSPITALITY"
	ProjectTypeIndustrial    = "INDUSTRIAL"
	ProjectTypeLandscape     = "LANDSCAPE"
	ProjectTypeMixedUse      = "MIXED_USE"
	ProjectTypePublic        = "PUBLIC"
	ProjectTypeReligious     = "RELIGIOUS"
	ProjectTypeRetail        = "RETAIL"
	ProjectTypeSports        = "SPORTS"
	ProjectTypeTransport     = "TRANSPORT"
	ProjectTypeUrbanPlanning = "URBAN_PLANNING"
	ProjectTypeOther         = "OTHER"
)

// RIBA plan-of-work stages used as project metadata tags
const (
	RibaStage0 = "STAGE_0_STRATEGIC_DEFINITION"
	RibaStage1 = "STAGE_1_PREPARATION_BRIEF"
	RibaStage2 = "STAGE_2_CONCEPT_DESIGN"
	RibaStage3 = "STAGE_3_SPATIAL_COORDINATION"
	RibaStage4 = "STAGE_4_TECHNICAL_DESIGN"
	RibaStage5 = "STAGE_5_MANUFACTURING_CONSTRUCTION"
	RibaStage6 = "STAGE_6_HANDOVER"
	RibaStage7 = "STAGE_7_USE"
)

// ProjectTypes lists every accepted project type value.
var ProjectTypes = []string{
	ProjectTypeResidential, ProjectTypeCommercial, ProjectTypeCultural,
	ProjectTypeEducational, ProjectTypeHealthcare, ProjectTypeHospitality,
	ProjectTypeIndustrial, ProjectTypeLandscape, ProjectTypeMixedUse,
	ProjectTypePublic, ProjectTypeReligious, ProjectTypeRetail,
	ProjectTypeSports, ProjectTypeTransport, ProjectTypeUrbanPlanning,
	ProjectTypeOther,
}

// RibaStages lists every accepted RIBA stage tag.
var RibaStages = []string{
	RibaStage0, RibaStage1, RibaStage2, RibaStage3,
	RibaStage4, RibaStage5, RibaStage6, RibaStage7,
}

// Project represents an architecture project with its descriptive metadata.
// Assets are exclusively owned and cascade-deleted with the project.
type Project struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectName    string    `json:"projectName" gorm:"type:text;not null"`
	ProjectType    string    `json:"projectType" gorm:"type:text;not null"`
	Location       string    `json:"location" gorm:"type:text;not null"`
	YearStart      int       `json:"yearStart" gorm:"not null"`
	YearCompletion *int      `json:"yearCompletion"`
	ClientName     *string   `json:"clientName" gorm:"type:text"`
	PracticeName   string    `json:"practiceName" gorm:"type:text;not null"`
	ProjectValue   *float64  `json:"projectValue"`
	ProjectSize    *float64  `json:"projectSize"`

	Role             string                      `json:"role" gorm:"type:text;not null"`
	TeamSize         *int                        `json:"teamSize"`
	Responsibilities datatypes.JSONSlice[string] `json:"responsibilities"`
	RibaStages       datatypes.JSONSlice[string] `json:"ribaStages"`

	BriefDescription       string  `json:"briefDescription" gorm:"type:text;not null"`
	DetailedDescription    *string `json:"detailedDescription" gorm:"type:text"`
	DesignApproach         *string `json:"designApproach" gorm:"type:text"`
	KeyChallenges          *string `json:"keyChallenges" gorm:"type:text"`
	SolutionsProvided      *string `json:"solutionsProvided" gorm:"type:text"`
	SustainabilityFeatures *string `json:"sustainabilityFeatures" gorm:"type:text"`

	SoftwareUsed       datatypes.JSONSlice[string] `json:"softwareUsed"`
	SkillsDemonstrated datatypes.JSONSlice[string] `json:"skillsDemonstrated"`

	IsAcademic       bool                        `json:"isAcademic" gorm:"not null;default:false"`
	IsCompetition    bool                        `json:"isCompetition" gorm:"not null;default:false"`
	AwardsReceived   datatypes.JSONSlice[string] `json:"awardsReceived"`
	FeaturedPriority int                         `json:"featuredPriority" gorm:"not null;default:5"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Assets []ProjectAsset `json:"assets,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
