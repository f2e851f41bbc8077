package database

import (
	"errors"

	"github.com/arcfolio/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetRepo struct {
	db *gorm.DB
}

func NewAssetRepo(db *gorm.DB) *AssetRepo {
	return &AssetRepo{db}
}

// FindByID returns an asset by its ID, or nil when absent.
func (r *AssetRepo) FindByID(id uuid.UUID) (*models.ProjectAsset, error) {
	var asset models.ProjectAsset
	err := r.db.First(&asset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindByProject returns a project's assets in display order.
func (r *AssetRepo) FindByProject(projectID uuid.UUID) ([]*models.ProjectAsset, error) {
	var assets []*models.ProjectAsset
	err := r.db.
		Where("project_id = ?", projectID).
		Order("display_order asc").
		Find(&assets).Error
	return assets, err
}

// Add inserts a new asset at the end of the project's display order.
func (r *AssetRepo) Add(asset *models.ProjectAsset) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder *int
		err := tx.Model(&models.ProjectAsset{}).
			Where("project_id = ?", asset.ProjectID).
			Select("max(display_order)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}
		if maxOrder != nil {
			asset.DisplayOrder = *maxOrder + 1
		} else {
			asset.DisplayOrder = 0
		}
		return tx.Create(asset).Error
	})
}

// Update updates an existing asset in the database
func (r *AssetRepo) Update(asset *models.ProjectAsset) error {
	return r.db.Save(asset).Error
}

// Delete removes an asset from the database by id
func (r *AssetRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProjectAsset{}, "id = ?", id).Error
}

// AssetOrder pairs an asset ID with its new display order.
type AssetOrder struct {
	ID           uuid.UUID
	DisplayOrder int
}

// Reorder applies a batch of display-order updates in one transaction.
func (r *AssetRepo) Reorder(orders []AssetOrder) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			err := tx.Model(&models.ProjectAsset{}).
				Where("id = ?", o.ID).
				Update("display_order", o.DisplayOrder).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SetHero marks the asset as its project's hero image. The clear and the set
// run in one transaction so the project never holds two heroes, even under
// concurrent requests. Returns the updated asset, or nil when it does not
// exist.
func (r *AssetRepo) SetHero(id uuid.UUID) (*models.ProjectAsset, error) {
	var asset models.ProjectAsset
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asset, "id = ?", id).Error; err != nil {
			return err
		}
		err := tx.Model(&models.ProjectAsset{}).
			Where("project_id = ? AND is_hero_image = ?", asset.ProjectID, true).
			Update("is_hero_image", false).Error
		if err != nil {
			return err
		}
		if err := tx.Model(&asset).Update("is_hero_image", true).Error; err != nil {
			return err
		}
		asset.IsHeroImage = true
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}
