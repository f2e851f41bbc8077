package models

import (
	"time"

	"gorm.io/datatypes"
)

// Color scheme keys
const (
	ColorSchemeClassic     = "classic"
	ColorSchemeModernBlue  = "modernBlue"
	ColorSchemeWarmMinimal = "warmMinimal"
)

// ColorSchemes lists every accepted color scheme key.
var ColorSchemes = []string{ColorSchemeClassic, ColorSchemeModernBlue, ColorSchemeWarmMinimal}

// AppSettingsID is the fixed primary key of the settings singleton.
const AppSettingsID = "global"

// Margins are page margins in millimeters (valid range 0-40 per side).
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// DefaultMargins returns the hard-coded 15mm fallback.
func DefaultMargins() Margins {
	return Margins{Top: 15, Bottom: 15, Left: 15, Right: 15}
}

// AppSettings is the process-wide display settings singleton, upserted at
// startup and used as the fallback tier below per-portfolio overrides.
type AppSettings struct {
	ID          string                      `json:"id" gorm:"primaryKey"`
	ColorScheme string                      `json:"colorScheme" gorm:"type:text;not null;default:classic"`
	Margins     datatypes.JSONType[Margins] `json:"margins"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}
