package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/models"
)

func projectRouter(d database.Database) *chi.Mux {
	h := newProjectHandler(d.ProjectRepo(), d.AssetRepo())
	r := chi.NewRouter()
	r.Get("/api/projects", h.getAllProjects())
	r.Post("/api/projects", h.createProject())
	r.Get("/api/projects/{projectID}", h.getProject())
	r.Delete("/api/projects/{projectID}", h.deleteProject())
	return r
}

const validProjectBody = `{
	"projectName": "Riverside Gallery",
	"projectType": "CULTURAL",
	"location": "Bristol, UK",
	"yearStart": 2022,
	"practiceName": "Studio North",
	"role": "Project Architect",
	"briefDescription": "A riverside gallery and workshop."
}`

func TestCreateProjectAndGet(t *testing.T) {
	_, d := setupTestDB(t, t.Name())
	r := projectRouter(d)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(validProjectBody)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Project
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEqual(t, uuid.Nil, created.ID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/"+created.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.Project
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "Riverside Gallery", fetched.ProjectName)
}

func TestCreateProjectValidation(t *testing.T) {
	_, d := setupTestDB(t, t.Name())
	r := projectRouter(d)

	rec := httptest.NewRecorder()
	body := strings.Replace(validProjectBody, `"Riverside Gallery"`, `""`, 1)
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "projectName", env.Field)

	rec = httptest.NewRecorder()
	body = strings.Replace(validProjectBody, `"CULTURAL"`, `"CASTLE"`, 1)
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env = decodeEnvelope(t, rec)
	assert.Equal(t, "projectType", env.Field)
}

func TestGetProjectNotFound(t *testing.T) {
	_, d := setupTestDB(t, t.Name())
	r := projectRouter(d)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAllProjectsPaginationEnvelope(t *testing.T) {
	_, d := setupTestDB(t, t.Name())
	r := projectRouter(d)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(validProjectBody)))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects?limit=2&page=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var data ProjectCollection
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(3), data.Total)
	assert.Len(t, data.Projects, 2)
	assert.Equal(t, 2, data.Limit)
}

func TestDeleteProject(t *testing.T) {
	db, d := setupTestDB(t, t.Name())
	r := projectRouter(d)

	project := models.Project{
		ProjectName:      "Doomed",
		ProjectType:      models.ProjectTypeOther,
		Location:         "Leeds, UK",
		YearStart:        2019,
		PracticeName:     "Studio North",
		Role:             "Architect",
		BriefDescription: "To be removed.",
	}
	require.NoError(t, db.Create(&project).Error)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/projects/"+project.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/"+project.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
