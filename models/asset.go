package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset types
const (
	AssetTypeImage      = "IMAGE"
	AssetTypeDrawing    = "DRAWING"
	AssetTypeDiagram    = "DIAGRAM"
	AssetTypeModelPhoto = "MODEL_PHOTO"
	AssetTypeRender     = "RENDER"
	AssetTypeSketch     = "SKETCH"
)

// Drawing types (drawing assets only)
const (
	DrawingTypePlan        = "PLAN"
	DrawingTypeSection     = "SECTION"
	DrawingTypeElevation   = "ELEVATION"
	DrawingTypeDetail      = "DETAIL"
	DrawingTypeAxonometric = "AXONOMETRIC"
	DrawingTypePerspective = "PERSPECTIVE"
	DrawingTypeSitePlan    = "SITE_PLAN"
)

// Preferred layout sizes
const (
	AssetSizeFullPage      = "FULL_PAGE"
	AssetSizeHalfPage      = "HALF_PAGE"
	AssetSizeQuarterPage   = "QUARTER_PAGE"
	AssetSizeThirdPage     = "THIRD_PAGE"
	AssetSizeTwoThirdsPage = "TWO_THIRDS_PAGE"
)

// ProjectAsset is a file attached to a project. At most one asset per project
// carries IsHeroImage=true; AssetRepo.SetHero maintains that invariant.
type ProjectAsset struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `json:"projectId" gorm:"type:uuid;not null;index"`
	AssetType string    `json:"assetType" gorm:"type:text;not null"`

	FilePath string `json:"filePath" gorm:"type:text;not null"`
	FileName string `json:"fileName" gorm:"type:text;not null"`
	FileSize int64  `json:"fileSize" gorm:"not null"`
	MimeType string `json:"mimeType" gorm:"type:text;not null"`
	Width    *int   `json:"width"`
	Height   *int   `json:"height"`

	Title   *string `json:"title" gorm:"type:text"`
	Caption *string `json:"caption" gorm:"type:text"`

	// Drawing-specific metadata
	DrawingType *string `json:"drawingType" gorm:"type:text"`
	Scale       *string `json:"scale" gorm:"type:text"`
	Stage       *string `json:"stage" gorm:"type:text"`

	DisplayOrder  int      `json:"displayOrder" gorm:"not null;default:0"`
	IsHeroImage   bool     `json:"isHeroImage" gorm:"not null;default:false"`
	PreferredSize *string  `json:"preferredSize" gorm:"type:text"`
	CanBeCropped  bool     `json:"canBeCropped" gorm:"not null;default:true"`
	FocalPointX   *float64 `json:"focalPointX"`
	FocalPointY   *float64 `json:"focalPointY"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *ProjectAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsImage reports whether the asset stores an image rather than a document.
func (a ProjectAsset) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}
