package render

import (
	"gorm.io/datatypes"

	"github.com/arcfolio/backend/models"
)

// ColorScheme is the resolved palette shipped in renderable documents.
type ColorScheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Text      string `json:"text"`
	Light     string `json:"light"`
}

// LayoutSizes are the configurable block heights of the layout engine, in
// millimeters.
type LayoutSizes struct {
	HeroHeightMm  float64 `json:"heroHeightMm"`
	StripHeightMm float64 `json:"stripHeightMm"`
	TechHeightMm  float64 `json:"techHeightMm"`
	ThumbHeightMm float64 `json:"thumbHeightMm"`
}

var colorSchemes = map[string]ColorScheme{
	models.ColorSchemeClassic:     {Primary: "#000", Secondary: "#666", Accent: "#DC2626", Text: "#000", Light: "#F5F5F5"},
	models.ColorSchemeModernBlue:  {Primary: "#000", Secondary: "#666", Accent: "#2563EB", Text: "#000", Light: "#F5F5F5"},
	models.ColorSchemeWarmMinimal: {Primary: "#000", Secondary: "#666", Accent: "#EA580C", Text: "#000", Light: "#F5F5F5"},
}

// DefaultLayoutSizes returns the hard-coded fallback heights.
func DefaultLayoutSizes() LayoutSizes {
	return LayoutSizes{HeroHeightMm: 200, StripHeightMm: 120, TechHeightMm: 120, ThumbHeightMm: 40}
}

// ResolveColorScheme resolves the palette with explicit precedence: the
// per-document override key, else the global AppSettings key, else classic.
// Unknown keys fall through to the next tier.
func ResolveColorScheme(override string, global *models.AppSettings) ColorScheme {
	if scheme, ok := colorSchemes[override]; ok {
		return scheme
	}
	if global != nil {
		if scheme, ok := colorSchemes[global.ColorScheme]; ok {
			return scheme
		}
	}
	return colorSchemes[models.ColorSchemeClassic]
}

// ResolveMargins resolves page margins: per-document override, else global
// AppSettings, else 15mm all sides. A zero or negative side in an override
// falls back to the default for that side, matching how the original system
// coerced malformed stored values.
func ResolveMargins(override *models.Margins, global *models.AppSettings) models.Margins {
	if override != nil {
		return fillMargins(*override)
	}
	if global != nil {
		if m := global.Margins.Data(); m != (models.Margins{}) {
			return fillMargins(m)
		}
	}
	return models.DefaultMargins()
}

func fillMargins(m models.Margins) models.Margins {
	defaults := models.DefaultMargins()
	if m.Top <= 0 {
		m.Top = defaults.Top
	}
	if m.Bottom <= 0 {
		m.Bottom = defaults.Bottom
	}
	if m.Left <= 0 {
		m.Left = defaults.Left
	}
	if m.Right <= 0 {
		m.Right = defaults.Right
	}
	return m
}

// PortfolioSettings is the typed view of a portfolio's free-form settings
// blob, decoded leniently the way the original treated its JSON column.
type PortfolioSettings struct {
	ColorScheme string
	Margins     *models.Margins
	Sizes       LayoutSizes
	HasSizes    [4]bool
}

// DecodePortfolioSettings extracts the known keys from a settings blob.
func DecodePortfolioSettings(blob datatypes.JSONMap) PortfolioSettings {
	var s PortfolioSettings
	if blob == nil {
		return s
	}
	if v, ok := blob["colorScheme"].(string); ok {
		s.ColorScheme = v
	}
	if raw, ok := blob["margins"].(map[string]any); ok {
		m := models.Margins{
			Top:    toFloat(raw["top"]),
			Bottom: toFloat(raw["bottom"]),
			Left:   toFloat(raw["left"]),
			Right:  toFloat(raw["right"]),
		}
		s.Margins = &m
	}
	if v, ok := blob["heroHeightMm"]; ok {
		s.Sizes.HeroHeightMm = toFloat(v)
		s.HasSizes[0] = true
	}
	if v, ok := blob["stripHeightMm"]; ok {
		s.Sizes.StripHeightMm = toFloat(v)
		s.HasSizes[1] = true
	}
	if v, ok := blob["techHeightMm"]; ok {
		s.Sizes.TechHeightMm = toFloat(v)
		s.HasSizes[2] = true
	}
	if v, ok := blob["thumbHeightMm"]; ok {
		s.Sizes.ThumbHeightMm = toFloat(v)
		s.HasSizes[3] = true
	}
	return s
}

// ResolveLayoutSizes overlays per-portfolio height overrides on the defaults.
func ResolveLayoutSizes(s PortfolioSettings) LayoutSizes {
	sizes := DefaultLayoutSizes()
	if s.HasSizes[0] && s.Sizes.HeroHeightMm > 0 {
		sizes.HeroHeightMm = s.Sizes.HeroHeightMm
	}
	if s.HasSizes[1] && s.Sizes.StripHeightMm > 0 {
		sizes.StripHeightMm = s.Sizes.StripHeightMm
	}
	if s.HasSizes[2] && s.Sizes.TechHeightMm > 0 {
		sizes.TechHeightMm = s.Sizes.TechHeightMm
	}
	if s.HasSizes[3] && s.Sizes.ThumbHeightMm > 0 {
		sizes.ThumbHeightMm = s.Sizes.ThumbHeightMm
	}
	return sizes
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
