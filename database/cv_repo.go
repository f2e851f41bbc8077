package database

import (
	"errors"

	"github.com/arcfolio/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CVRepo covers the CV entities: personal info, experience, education, skills.
type CVRepo struct {
	db *gorm.DB
}

func NewCVRepo(db *gorm.DB) *CVRepo {
	return &CVRepo{db}
}

// PersonalInfo returns the profile record, or nil when none exists yet.
func (r *CVRepo) PersonalInfo() (*models.PersonalInfo, error) {
	var info models.PersonalInfo
	err := r.db.First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// SavePersonalInfo updates the existing profile record or creates it.
func (r *CVRepo) SavePersonalInfo(info *models.PersonalInfo) error {
	return r.db.Save(info).Error
}

// Experiences returns all experience entries ordered by display order.
func (r *CVRepo) Experiences() ([]*models.CVExperience, error) {
	var experiences []*models.CVExperience
	err := r.db.Order("display_order asc").Find(&experiences).Error
	return experiences, err
}

func (r *CVRepo) FindExperience(id uuid.UUID) (*models.CVExperience, error) {
	var experience models.CVExperience
	err := r.db.First(&experience, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

func (r *CVRepo) AddExperience(experience *models.CVExperience) error {
	return r.db.Create(experience).Error
}

func (r *CVRepo) UpdateExperience(experience *models.CVExperience) error {
	return r.db.Save(experience).Error
}

func (r *CVRepo) DeleteExperience(id uuid.UUID) error {
	return r.db.Delete(&models.CVExperience{}, "id = ?", id).Error
}

// Education returns all education entries ordered by display order.
func (r *CVRepo) Education() ([]*models.CVEducation, error) {
	var education []*models.CVEducation
	err := r.db.Order("display_order asc").Find(&education).Error
	return education, err
}

func (r *CVRepo) FindEducation(id uuid.UUID) (*models.CVEducation, error) {
	var education models.CVEducation
	err := r.db.First(&education, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &education, nil
}

func (r *CVRepo) AddEducation(education *models.CVEducation) error {
	return r.db.Create(education).Error
}

func (r *CVRepo) UpdateEducation(education *models.CVEducation) error {
	return r.db.Save(education).Error
}

func (r *CVRepo) DeleteEducation(id uuid.UUID) error {
	return r.db.Delete(&models.CVEducation{}, "id = ?", id).Error
}

// Skills returns all skill entries ordered by category then display order.
func (r *CVRepo) Skills() ([]*models.CVSkill, error) {
	var skills []*models.CVSkill
	err := r.db.Order("category asc, display_order asc").Find(&skills).Error
	return skills, err
}

func (r *CVRepo) FindSkill(id uuid.UUID) (*models.CVSkill, error) {
	var skill models.CVSkill
	err := r.db.First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *CVRepo) AddSkill(skill *models.CVSkill) error {
	return r.db.Create(skill).Error
}

func (r *CVRepo) UpdateSkill(skill *models.CVSkill) error {
	return r.db.Save(skill).Error
}

func (r *CVRepo) DeleteSkill(id uuid.UUID) error {
	return r.db.Delete(&models.CVSkill{}, "id = ?", id).Error
}
