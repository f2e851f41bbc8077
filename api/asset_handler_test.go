package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/models"
	"github.com/arcfolio/backend/pdf"
)

func uploadRouter(d database.Database, uploadsDir string) *chi.Mux {
	return newRouter(d, pdf.NewGenerator(d, nil, uploadsDir, "http://127.0.0.1:8080", 1, 0),
		withConfig(map[string]string{"UPLOADS_DIR": uploadsDir}))
}

func createUploadProject(t *testing.T, db *gorm.DB) *models.Project {
	project := models.Project{
		ProjectName:      "Corn Exchange",
		ProjectType:      models.ProjectTypeCommercial,
		Location:         "Leeds, UK",
		YearStart:        2018,
		PracticeName:     "Studio North",
		Role:             "Architect",
		BriefDescription: "Market hall refurbishment.",
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func multipartBody(t *testing.T, field string, names ...string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("file content for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadAssetStoresFile(t *testing.T) {
	db, d := setupTestDB(t, t.Name())
	uploadsDir := t.TempDir()
	r := uploadRouter(d, uploadsDir)
	project := createUploadProject(t, db)

	body, contentType := multipartBody(t, "file", "ground-floor-plan.png")
	req := httptest.NewRequest(http.MethodPost, "/api/assets/upload/"+project.ID.String(), body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created assetResponse
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &created))

	assert.Equal(t, "image/png", created.MimeType)
	assert.Equal(t, models.AssetTypeDrawing, created.AssetType)
	assert.Contains(t, created.URL, "/uploads/projects/optimized/")

	onDisk := filepath.Join(uploadsDir, "projects", "optimized", created.FileName)
	_, err := os.Stat(onDisk)
	require.NoError(t, err)
}

func TestUploadMultipleAssetsPartialFailure(t *testing.T) {
	db, d := setupTestDB(t, t.Name())
	r := uploadRouter(d, t.TempDir())
	project := createUploadProject(t, db)

	body, contentType := multipartBody(t, "files", "site-photo.png", "notes.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/assets/upload-multiple/"+project.ID.String(), body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result multiUploadResult
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &result))

	require.Len(t, result.Uploaded, 1)
	assert.Equal(t, "image/png", result.Uploaded[0].MimeType)
	assert.Equal(t, 0, result.Uploaded[0].DisplayOrder)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "notes.txt", result.Errors[0].File)

	assets, err := d.AssetRepo().FindByProject(project.ID)
	require.NoError(t, err)
	assert.Len(t, assets, 1)
}

func TestUploadMultipleAssetsValidation(t *testing.T) {
	db, d := setupTestDB(t, t.Name())
	r := uploadRouter(d, t.TempDir())

	body, contentType := multipartBody(t, "files", "site-photo.png")
	req := httptest.NewRequest(http.MethodPost, "/api/assets/upload-multiple/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	project := createUploadProject(t, db)
	body, contentType = multipartBody(t, "attachments", "site-photo.png")
	req = httptest.NewRequest(http.MethodPost, "/api/assets/upload-multiple/"+project.ID.String(), body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "files", env.Field)
}
