package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Skill categories
const (
	SkillCategorySoftware      = "SOFTWARE"
	SkillCategoryTechnical     = "TECHNICAL"
	SkillCategoryDesign        = "DESIGN"
	SkillCategoryManagement    = "MANAGEMENT"
	SkillCategoryCommunication = "COMMUNICATION"
	SkillCategoryOther         = "OTHER"
)

// Proficiency levels, ordinal from basic to expert
const (
	ProficiencyBasic        = "BASIC"
	ProficiencyIntermediate = "INTERMEDIATE"
	ProficiencyAdvanced     = "ADVANCED"
	ProficiencyExpert       = "EXPERT"
)

// PersonalInfo is the per-install profile. A single record is upserted at
// process start with placeholder defaults; read paths never create it.
type PersonalInfo struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name                string    `json:"name" gorm:"type:text;not null"`
	ProfessionalTitle   string    `json:"professionalTitle" gorm:"type:text;not null"`
	ArbNumber           *string   `json:"arbNumber" gorm:"type:text"`
	Email               string    `json:"email" gorm:"type:text;not null"`
	Phone               *string   `json:"phone" gorm:"type:text"`
	Location            *string   `json:"location" gorm:"type:text"`
	LinkedinURL         *string   `json:"linkedinUrl" gorm:"type:text"`
	WebsiteURL          *string   `json:"websiteUrl" gorm:"type:text"`
	ProfessionalSummary *string   `json:"professionalSummary" gorm:"type:text"`
	CareerObjectives    *string   `json:"careerObjectives" gorm:"type:text"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (p *PersonalInfo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CVExperience is an employment entry, ordered by DisplayOrder. An open-ended
// position has IsCurrent=true and a nil EndDate.
type CVExperience struct {
	ID              uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyName     string                      `json:"companyName" gorm:"type:text;not null"`
	PositionTitle   string                      `json:"positionTitle" gorm:"type:text;not null"`
	Location        string                      `json:"location" gorm:"type:text;not null"`
	StartDate       time.Time                   `json:"startDate" gorm:"not null"`
	EndDate         *time.Time                  `json:"endDate"`
	IsCurrent       bool                        `json:"isCurrent" gorm:"not null;default:false"`
	Description     string                      `json:"description" gorm:"type:text;not null"`
	KeyProjects     datatypes.JSONSlice[string] `json:"keyProjects"`
	KeyAchievements datatypes.JSONSlice[string] `json:"keyAchievements"`
	DisplayOrder    int                         `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt       time.Time                   `json:"createdAt"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}

func (e *CVExperience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// CVEducation is an education entry, ordered by DisplayOrder.
type CVEducation struct {
	ID                 uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	InstitutionName    string                      `json:"institutionName" gorm:"type:text;not null"`
	DegreeType         string                      `json:"degreeType" gorm:"type:text;not null"`
	FieldOfStudy       string                      `json:"fieldOfStudy" gorm:"type:text;not null"`
	Location           string                      `json:"location" gorm:"type:text;not null"`
	StartDate          time.Time                   `json:"startDate" gorm:"not null"`
	EndDate            *time.Time                  `json:"endDate"`
	Grade              *string                     `json:"grade" gorm:"type:text"`
	RelevantCoursework datatypes.JSONSlice[string] `json:"relevantCoursework"`
	DisplayOrder       int                         `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt          time.Time                   `json:"createdAt"`
	UpdatedAt          time.Time                   `json:"updatedAt"`
}

func (e *CVEducation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// CVSkill is a skill entry, ordered by (Category, DisplayOrder).
type CVSkill struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Category         string    `json:"category" gorm:"type:text;not null"`
	SkillName        string    `json:"skillName" gorm:"type:text;not null"`
	ProficiencyLevel string    `json:"proficiencyLevel" gorm:"type:text;not null"`
	YearsExperience  *int      `json:"yearsExperience"`
	DisplayOrder     int       `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (s *CVSkill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
