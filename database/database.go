package database

import (
	"github.com/arcfolio/backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db            *gorm.DB
	projectRepo   *ProjectRepo
	assetRepo     *AssetRepo
	cvRepo        *CVRepo
	portfolioRepo *PortfolioRepo
	settingsRepo  *SettingsRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:            db,
		projectRepo:   NewProjectRepo(db),
		assetRepo:     NewAssetRepo(db),
		cvRepo:        NewCVRepo(db),
		portfolioRepo: NewPortfolioRepo(db),
		settingsRepo:  NewSettingsRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) AssetRepo() *AssetRepo {
	return d.assetRepo
}

func (d Database) CVRepo() *CVRepo {
	return d.cvRepo
}

func (d Database) PortfolioRepo() *PortfolioRepo {
	return d.portfolioRepo
}

func (d Database) SettingsRepo() *SettingsRepo {
	return d.settingsRepo
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.ProjectAsset{},
		&models.PersonalInfo{},
		&models.CVExperience{},
		&models.CVEducation{},
		&models.CVSkill{},
		&models.PortfolioTemplate{},
		&models.Portfolio{},
		&models.PortfolioProject{},
		&models.AppSettings{},
	)
}
