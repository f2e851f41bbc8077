package database

import (
	"github.com/arcfolio/backend/models"
)

// EntityCounts is a snapshot of record counts per entity.
type EntityCounts struct {
	Projects    int64 `json:"projects"`
	Assets      int64 `json:"assets"`
	Experiences int64 `json:"experiences"`
	Education   int64 `json:"education"`
	Skills      int64 `json:"skills"`
	Portfolios  int64 `json:"portfolios"`
	Total       int64 `json:"total"`
}

// Stats counts the records of every content entity.
func (d Database) Stats() (EntityCounts, error) {
	var counts EntityCounts
	tallies := []struct {
		model any
		dst   *int64
	}{
		{&models.Project{}, &counts.Projects},
		{&models.ProjectAsset{}, &counts.Assets},
		{&models.CVExperience{}, &counts.Experiences},
		{&models.CVEducation{}, &counts.Education},
		{&models.CVSkill{}, &counts.Skills},
		{&models.Portfolio{}, &counts.Portfolios},
	}
	for _, t := range tallies {
		if err := d.db.Model(t.model).Count(t.dst).Error; err != nil {
			return EntityCounts{}, err
		}
	}
	counts.Total = counts.Projects + counts.Assets + counts.Experiences +
		counts.Education + counts.Skills + counts.Portfolios
	return counts, nil
}
