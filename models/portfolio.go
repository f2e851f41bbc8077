package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Portfolio types. SAMPLE is a short composition (guideline: at most 12 pages),
// FULL has no page guideline.
const (
	PortfolioTypeSample = "SAMPLE"
	PortfolioTypeFull   = "FULL"
)

// PortfolioTemplate is a named style bundle a portfolio may reference.
type PortfolioTemplate struct {
	ID           uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string            `json:"name" gorm:"type:text;not null"`
	Description  *string           `json:"description" gorm:"type:text"`
	FontConfig   datatypes.JSONMap `json:"fontConfig"`
	ColorScheme  string            `json:"colorScheme" gorm:"type:text;not null;default:classic"`
	PageLayout   datatypes.JSONMap `json:"pageLayout"`
	MarginConfig datatypes.JSONMap `json:"marginConfig"`
	IsDefault    bool              `json:"isDefault" gorm:"not null;default:false"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (t *PortfolioTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Portfolio is a named composition of projects. It references projects and
// assets by ID without owning them; deleting a project leaves any link to it
// dangling, and dangling links are skipped at render time.
type Portfolio struct {
	ID            uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	PortfolioName string             `json:"portfolioName" gorm:"type:text;not null"`
	PortfolioType string             `json:"portfolioType" gorm:"type:text;not null"`
	TemplateID    *uuid.UUID         `json:"templateId" gorm:"type:uuid"`
	Template      *PortfolioTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	CVIncluded    bool               `json:"cvIncluded" gorm:"not null;default:false"`

	// Free-form display settings: color scheme override, margins, layout
	// heights. Resolved against AppSettings and hard-coded defaults by the
	// render package.
	Settings datatypes.JSONMap `json:"settings"`

	// Set after a successful PDF generation.
	FilePath *string `json:"filePath" gorm:"type:text"`
	FileSize *int64  `json:"fileSize"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Projects []PortfolioProject `json:"projects,omitempty" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Portfolio) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PortfolioProject links a portfolio to a project in display order, with an
// optional explicit subset of asset IDs and an optional hero override.
type PortfolioProject struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	PortfolioID    uuid.UUID                   `json:"portfolioId" gorm:"type:uuid;not null;index"`
	ProjectID      uuid.UUID                   `json:"projectId" gorm:"type:uuid;not null"`
	Project        *Project                    `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	DisplayOrder   int                         `json:"displayOrder" gorm:"not null;default:0"`
	IncludedAssets datatypes.JSONSlice[string] `json:"includedAssets"`
	HeroAssetID    *uuid.UUID                  `json:"heroAssetId" gorm:"type:uuid"`
	CreatedAt      time.Time                   `json:"createdAt"`
}

func (p *PortfolioProject) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
