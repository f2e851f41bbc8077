package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arcfolio/backend/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func createProject(t *testing.T, db *gorm.DB) *models.Project {
	project := models.Project{
		ProjectName:      "Hillside House",
		ProjectType:      models.ProjectTypeResidential,
		Location:         "Bath, UK",
		YearStart:        2021,
		PracticeName:     "Studio North",
		Role:             "Architect",
		BriefDescription: "A hillside family house.",
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func createAsset(t *testing.T, repo *AssetRepo, projectID uuid.UUID) *models.ProjectAsset {
	asset := models.ProjectAsset{
		ProjectID: projectID,
		AssetType: models.AssetTypeImage,
		FilePath:  "/uploads/projects/optimized/a.jpg",
		FileName:  "a.jpg",
		FileSize:  100,
		MimeType:  "image/jpeg",
	}
	require.NoError(t, repo.Add(&asset))
	return &asset
}

func heroCount(t *testing.T, db *gorm.DB, projectID uuid.UUID) int64 {
	var count int64
	err := db.Model(&models.ProjectAsset{}).
		Where("project_id = ? AND is_hero_image = ?", projectID, true).
		Count(&count).Error
	require.NoError(t, err)
	return count
}

func TestAssetAddAssignsNextDisplayOrder(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewAssetRepo(db)
	project := createProject(t, db)

	first := createAsset(t, repo, project.ID)
	second := createAsset(t, repo, project.ID)
	third := createAsset(t, repo, project.ID)

	assert.Equal(t, 0, first.DisplayOrder)
	assert.Equal(t, 1, second.DisplayOrder)
	assert.Equal(t, 2, third.DisplayOrder)
}

func TestSetHeroIsExclusive(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewAssetRepo(db)
	project := createProject(t, db)

	a := createAsset(t, repo, project.ID)
	b := createAsset(t, repo, project.ID)
	c := createAsset(t, repo, project.ID)

	for _, id := range []uuid.UUID{a.ID, b.ID, c.ID, a.ID} {
		updated, err := repo.SetHero(id)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.True(t, updated.IsHeroImage)
		assert.Equal(t, int64(1), heroCount(t, db, project.ID), "exactly one hero after every call")
	}

	final, err := repo.FindByID(a.ID)
	require.NoError(t, err)
	assert.True(t, final.IsHeroImage)
}

func TestSetHeroLeavesOtherProjectsAlone(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewAssetRepo(db)
	first := createProject(t, db)
	second := createProject(t, db)

	a := createAsset(t, repo, first.ID)
	b := createAsset(t, repo, second.ID)

	_, err := repo.SetHero(a.ID)
	require.NoError(t, err)
	_, err = repo.SetHero(b.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), heroCount(t, db, first.ID))
	assert.Equal(t, int64(1), heroCount(t, db, second.ID))
}

func TestSetHeroMissingAsset(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewAssetRepo(db)

	asset, err := repo.SetHero(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, asset)
}

func TestAssetReorder(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewAssetRepo(db)
	project := createProject(t, db)

	a := createAsset(t, repo, project.ID)
	b := createAsset(t, repo, project.ID)

	err := repo.Reorder([]AssetOrder{
		{ID: a.ID, DisplayOrder: 1},
		{ID: b.ID, DisplayOrder: 0},
	})
	require.NoError(t, err)

	assets, err := repo.FindByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, b.ID, assets[0].ID)
	assert.Equal(t, a.ID, assets[1].ID)
}

func TestProjectDeleteCascadesAssets(t *testing.T) {
	db := setupTestDB(t, t.Name())
	assetRepo := NewAssetRepo(db)
	projectRepo := NewProjectRepo(db)
	project := createProject(t, db)
	createAsset(t, assetRepo, project.ID)
	createAsset(t, assetRepo, project.ID)

	require.NoError(t, projectRepo.Delete(project.ID))

	var count int64
	require.NoError(t, db.Model(&models.ProjectAsset{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
