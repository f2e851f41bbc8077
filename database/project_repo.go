package database

import (
	"errors"
	"fmt"

	"github.com/arcfolio/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ProjectFilter narrows FindAll results. Zero values mean "no constraint".
type ProjectFilter struct {
	ProjectType   string
	IsAcademic    *bool
	IsCompetition *bool
	YearStart     int
	YearEnd       int
	Search        string
}

// ProjectPage controls pagination and ordering of FindAll.
type ProjectPage struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// FindAll returns projects matching the filter, with assets preloaded in
// display order, plus the total count before pagination.
func (r *ProjectRepo) FindAll(filter ProjectFilter, page ProjectPage) ([]*models.Project, int64, error) {
	query := r.db.Model(&models.Project{})

	if filter.ProjectType != "" {
		query = query.Where("project_type = ?", filter.ProjectType)
	}
	if filter.IsAcademic != nil {
		query = query.Where("is_academic = ?", *filter.IsAcademic)
	}
	if filter.IsCompetition != nil {
		query = query.Where("is_competition = ?", *filter.IsCompetition)
	}
	if filter.YearStart > 0 {
		query = query.Where("year_start >= ?", filter.YearStart)
	}
	if filter.YearEnd > 0 {
		query = query.Where("year_completion <= ?", filter.YearEnd)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"project_name LIKE ? OR location LIKE ? OR brief_description LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 || page.Limit > 100 {
		page.Limit = 20
	}
	sortBy := page.SortBy
	switch sortBy {
	case "", "featuredPriority":
		sortBy = "featured_priority"
	case "projectName":
		sortBy = "project_name"
	case "yearStart":
		sortBy = "year_start"
	case "yearCompletion":
		sortBy = "year_completion"
	case "createdAt":
		sortBy = "created_at"
	default:
		sortBy = "featured_priority"
	}
	order := "asc"
	if page.SortOrder == "desc" {
		order = "desc"
	}

	var projects []*models.Project
	err := query.
		Preload("Assets", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Order(fmt.Sprintf("%s %s", sortBy, order)).
		Offset((page.Page - 1) * page.Limit).
		Limit(page.Limit).
		Find(&projects).Error
	return projects, total, err
}

// FindByID returns a project with its assets in display order, or nil when
// no project exists for the ID.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Assets", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project; its assets cascade with it.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectAsset{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
