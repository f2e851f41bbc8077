package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/models"
	"github.com/arcfolio/backend/pdf"
)

func TestGetStatsCountsEveryEntity(t *testing.T) {
	db, d := setupTestDB(t, t.Name())

	project := models.Project{
		ProjectName:      "Harbour Baths",
		ProjectType:      models.ProjectTypePublic,
		Location:         "Hull, UK",
		YearStart:        2021,
		PracticeName:     "Studio North",
		Role:             "Architect",
		BriefDescription: "Tidal baths on the harbour edge.",
	}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, db.Create(&models.ProjectAsset{
		ProjectID: project.ID,
		AssetType: models.AssetTypeImage,
		FilePath:  "/uploads/projects/optimized/baths.jpg",
		FileName:  "baths.jpg",
		FileSize:  100,
		MimeType:  "image/jpeg",
	}).Error)
	require.NoError(t, db.Create(&models.CVSkill{
		Category:         models.SkillCategorySoftware,
		SkillName:        "Rhino",
		ProficiencyLevel: models.ProficiencyIntermediate,
	}).Error)

	r := newRouter(d, pdf.NewGenerator(d, nil, t.TempDir(), "http://127.0.0.1:8080", 1, 0))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var counts database.EntityCounts
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &counts))

	assert.Equal(t, int64(1), counts.Projects)
	assert.Equal(t, int64(1), counts.Assets)
	assert.Equal(t, int64(0), counts.Experiences)
	assert.Equal(t, int64(1), counts.Skills)
	assert.Equal(t, int64(3), counts.Total)
}
