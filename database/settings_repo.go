package database

import (
	"errors"

	"github.com/arcfolio/backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) *SettingsRepo {
	return &SettingsRepo{db}
}

// Get returns the global settings record. Bootstrap guarantees it exists, but
// a missing record still resolves to nil rather than an error.
func (r *SettingsRepo) Get() (*models.AppSettings, error) {
	var settings models.AppSettings
	err := r.db.First(&settings, "id = ?", models.AppSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update saves the global settings record.
func (r *SettingsRepo) Update(settings *models.AppSettings) error {
	settings.ID = models.AppSettingsID
	return r.db.Save(settings).Error
}

// Bootstrap idempotently creates the singleton rows the rest of the system
// assumes exist: global AppSettings and a placeholder PersonalInfo profile.
// Running it at process start removes the create-on-first-read races the read
// paths would otherwise need to handle.
func Bootstrap(db *gorm.DB) error {
	settings := models.AppSettings{
		ID:          models.AppSettingsID,
		ColorScheme: models.ColorSchemeClassic,
		Margins:     datatypes.NewJSONType(models.DefaultMargins()),
	}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.PersonalInfo{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		location := "London, UK"
		info := models.PersonalInfo{
			Name:              "Your Name",
			ProfessionalTitle: "Architect",
			Email:             "email@example.com",
			Location:          &location,
		}
		if err := db.Create(&info).Error; err != nil {
			return err
		}
	}
	return nil
}
