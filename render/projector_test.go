package render

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/models"
)

func setupTestDB(t *testing.T, name string) (*gorm.DB, database.Database) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Bootstrap(db))
	return db, database.New(db)
}

func seedProject(t *testing.T, db *gorm.DB, assetCount int, heroIndex int) (*models.Project, []models.ProjectAsset) {
	project := models.Project{
		ProjectName:      "Riverside Gallery",
		ProjectType:      models.ProjectTypeCultural,
		Location:         "Bristol, UK",
		YearStart:        2022,
		PracticeName:     "Studio North",
		Role:             "Project Architect",
		BriefDescription: "A riverside gallery and workshop.",
	}
	require.NoError(t, db.Create(&project).Error)

	assets := make([]models.ProjectAsset, 0, assetCount)
	for i := 0; i < assetCount; i++ {
		asset := models.ProjectAsset{
			ProjectID:    project.ID,
			AssetType:    models.AssetTypeImage,
			FilePath:     fmt.Sprintf("/uploads/projects/optimized/img-%d.jpg", i),
			FileName:     fmt.Sprintf("img-%d.jpg", i),
			FileSize:     1024,
			MimeType:     "image/jpeg",
			DisplayOrder: i,
			IsHeroImage:  i == heroIndex,
		}
		require.NoError(t, db.Create(&asset).Error)
		assets = append(assets, asset)
	}
	return &project, assets
}

func seedPortfolio(t *testing.T, db *gorm.DB, link models.PortfolioProject) *models.Portfolio {
	portfolio := models.Portfolio{
		PortfolioName: "Selected Works",
		PortfolioType: models.PortfolioTypeSample,
	}
	require.NoError(t, db.Create(&portfolio).Error)
	link.PortfolioID = portfolio.ID
	require.NoError(t, db.Create(&link).Error)
	return &portfolio
}

func TestBuildPortfolioMissing(t *testing.T) {
	_, d := setupTestDB(t, t.Name())
	doc, err := NewProjector(d).BuildPortfolio(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestBuildPortfolioAllAssetsHeroFirst(t *testing.T) {
	db, d := setupTestDB(t, t.Name())
	project, assets := seedProject(t, db, 3, 1)
	portfolio := seedPortfolio(t, db, models.PortfolioProject{ProjectID: project.ID})

	doc, err := NewProjector(d).BuildPortfolio(portfolio.ID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Len(t, doc.Projects, 1)

	p := doc.Projects[0]
	require.NotNil(t, p.Hero)
	assert.Equal(t, "/uploads/projects/optimized/"+assets[1].FileName, p.Hero.Path)

	// Remaining assets in display order, hero excluded from the gallery.
	require.Len(t, p.Images, 2)
	assert.Equal(t, "/uploads/projects/optimized/"+assets[0].FileName, p.Images[0].Path)
	assert.Equal(t, "/uploads/projects/optimized/"+assets[2].FileName, p.Images[1].Path)
}

func TestBuildPortfolioIncludedSubsetAndHeroOverride(t *testing.T) {
	db, d := setupTestDB(t, t.Name())
	project, assets := seedProject(t, db, 4, 0)
	heroID := assets[3].ID
	portfolio := seedPortfolio(t, db, models.PortfolioProject{
		ProjectID:      project.ID,
		IncludedAssets: datatypes.NewJSONSlice([]string{assets[2].ID.String(), assets[3].ID.String()}),
		HeroAssetID:    &heroID,
	})

	doc, err := NewProjector(d).BuildPortfolio(portfolio.ID)
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)

	p := doc.Projects[0]
	require.NotNil(t, p.Hero)
	assert.Equal(t, "/uploads/projects/optimized/"+assets[3].FileName, p.Hero.Path)
	require.Len(t, p.Images, 1)
	assert.Equal(t, "/uploads/projects/optimized/"+assets[2].FileName, p.Images[0].Path)
}

func TestBuildPortfolioHeroOverrideOutsideSelectionIgnored(t *testing.T) {
	db, d := setupTestDB(t, t.Name())
	project, assets := seedProject(t, db, 3, -1)
	heroID := assets[0].ID
	portfolio := seedPortfolio(t, db, models.PortfolioProject{
		ProjectID:      project.ID,
		IncludedAssets: datatypes.NewJSONSlice([]string{assets[1].ID.String(), assets[2].ID.String()}),
		HeroAssetID:    &heroID,
	})

	doc, err := NewProjector(d).BuildPortfolio(portfolio.ID)
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)

	// No hero flag anywhere and the override is outside the selection, so the
	// first selected asset leads.
	p := doc.Projects[0]
	require.NotNil(t, p.Hero)
	assert.Equal(t, "/uploads/projects/optimized/"+assets[1].FileName, p.Hero.Path)
}

func TestBuildPortfolioSkipsDanglingLinks(t *testing.T) {
	db, d := setupTestDB(t, t.Name())
	portfolio := seedPortfolio(t, db, models.PortfolioProject{ProjectID: uuid.New()})

	doc, err := NewProjector(d).BuildPortfolio(portfolio.ID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Projects)
}

func TestBuildPortfolioJoinsCVWhenIncluded(t *testing.T) {
	db, d := setupTestDB(t, t.Name())
	portfolio := models.Portfolio{
		PortfolioName: "With CV",
		PortfolioType: models.PortfolioTypeFull,
		CVIncluded:    true,
	}
	require.NoError(t, db.Create(&portfolio).Error)

	doc, err := NewProjector(d).BuildPortfolio(portfolio.ID)
	require.NoError(t, err)
	require.NotNil(t, doc.CV)
	require.NotNil(t, doc.PersonalHeader)
	assert.Equal(t, "Your Name — Architect", *doc.PersonalHeader)

	portfolio.CVIncluded = false
	require.NoError(t, db.Save(&portfolio).Error)
	doc, err = NewProjector(d).BuildPortfolio(portfolio.ID)
	require.NoError(t, err)
	assert.Nil(t, doc.CV)
}

func TestBuildCVDefaults(t *testing.T) {
	_, d := setupTestDB(t, t.Name())

	doc, err := NewProjector(d).BuildCV()
	require.NoError(t, err)
	require.NotNil(t, doc.CV.PersonalInfo)
	assert.False(t, doc.CV.IsEmpty())
	assert.Equal(t, models.DefaultMargins(), doc.Margins)
	assert.Equal(t, "#DC2626", doc.ColorScheme.Accent)
}
