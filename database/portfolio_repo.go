package database

import (
	"errors"

	"github.com/arcfolio/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PortfolioRepo struct {
	db *gorm.DB
}

func NewPortfolioRepo(db *gorm.DB) *PortfolioRepo {
	return &PortfolioRepo{db}
}

// FindAll returns all portfolios, newest first, without project links.
func (r *PortfolioRepo) FindAll() ([]*models.Portfolio, error) {
	var portfolios []*models.Portfolio
	err := r.db.Order("created_at desc").Find(&portfolios).Error
	return portfolios, err
}

// FindByID returns a portfolio with its template and its project links in
// display order, each link carrying the project and its assets in display
// order. Links whose project has been deleted keep a nil Project; callers
// skip them. Returns nil when the portfolio does not exist.
func (r *PortfolioRepo) FindByID(id uuid.UUID) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := r.db.
		Preload("Template").
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Preload("Projects.Project.Assets", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		First(&portfolio, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// Add inserts a portfolio together with its project links.
func (r *PortfolioRepo) Add(portfolio *models.Portfolio) error {
	return r.db.Create(portfolio).Error
}

// Update saves portfolio fields and replaces its project links when the
// portfolio carries any.
func (r *PortfolioRepo) Update(portfolio *models.Portfolio) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		links := portfolio.Projects
		portfolio.Projects = nil
		if err := tx.Omit("Projects").Save(portfolio).Error; err != nil {
			return err
		}
		if links == nil {
			return nil
		}
		if err := tx.Where("portfolio_id = ?", portfolio.ID).Delete(&models.PortfolioProject{}).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].ID = uuid.Nil
			links[i].PortfolioID = portfolio.ID
			if err := tx.Create(&links[i]).Error; err != nil {
				return err
			}
		}
		portfolio.Projects = links
		return nil
	})
}

// Delete removes a portfolio and its project links.
func (r *PortfolioRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.PortfolioProject{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Portfolio{}, "id = ?", id).Error
	})
}

// RecordOutput persists the generated PDF path and size on the portfolio.
func (r *PortfolioRepo) RecordOutput(id uuid.UUID, filePath string, fileSize int64) error {
	return r.db.Model(&models.Portfolio{}).
		Where("id = ?", id).
		Updates(map[string]any{"file_path": filePath, "file_size": fileSize}).Error
}
