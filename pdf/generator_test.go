package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/errs"
	"github.com/arcfolio/backend/models"
)

type fakeBrowser struct {
	calls int
	data  []byte
	err   error
	url   string
}

func (f *fakeBrowser) PrintToPDF(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	f.url = url
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func setupTestDB(t *testing.T, name string, bootstrap bool) (*gorm.DB, database.Database) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	if bootstrap {
		require.NoError(t, database.Bootstrap(db))
	}
	return db, database.New(db)
}

func newTestGenerator(d database.Database, browser Browser, uploadsDir string) *Generator {
	return NewGenerator(d, browser, uploadsDir, "http://127.0.0.1:8080", 2, time.Minute)
}

func seedPortfolioWithProject(t *testing.T, db *gorm.DB) *models.Portfolio {
	project := models.Project{
		ProjectName:      "Civic Hall",
		ProjectType:      models.ProjectTypePublic,
		Location:         "Leeds, UK",
		YearStart:        2020,
		PracticeName:     "Studio North",
		Role:             "Architect",
		BriefDescription: "A refurbished civic hall.",
	}
	require.NoError(t, db.Create(&project).Error)
	asset := models.ProjectAsset{
		ProjectID: project.ID,
		AssetType: models.AssetTypeImage,
		FilePath:  "/uploads/projects/optimized/hall.jpg",
		FileName:  "hall.jpg",
		FileSize:  100,
		MimeType:  "image/jpeg",
	}
	require.NoError(t, db.Create(&asset).Error)

	portfolio := models.Portfolio{
		PortfolioName: "Civic Works",
		PortfolioType: models.PortfolioTypeSample,
	}
	require.NoError(t, db.Create(&portfolio).Error)
	link := models.PortfolioProject{PortfolioID: portfolio.ID, ProjectID: project.ID}
	require.NoError(t, db.Create(&link).Error)
	return &portfolio
}

func TestGenerateCVEmptyGuardNeverLaunchesBrowser(t *testing.T) {
	_, d := setupTestDB(t, t.Name(), false) // no bootstrap: CV has no content
	browser := &fakeBrowser{data: []byte("%PDF-1.7")}
	g := newTestGenerator(d, browser, t.TempDir())

	_, err := g.GenerateCV(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsEmptyDocument(err))
	assert.Equal(t, 0, browser.calls)
}

func TestGeneratePortfolioMissing(t *testing.T) {
	_, d := setupTestDB(t, t.Name(), true)
	browser := &fakeBrowser{data: []byte("%PDF-1.7")}
	g := newTestGenerator(d, browser, t.TempDir())

	_, err := g.GeneratePortfolio(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, 0, browser.calls)
}

func TestGeneratePortfolioEmptyGuard(t *testing.T) {
	db, d := setupTestDB(t, t.Name(), true)
	portfolio := models.Portfolio{
		PortfolioName: "Empty",
		PortfolioType: models.PortfolioTypeSample,
	}
	require.NoError(t, db.Create(&portfolio).Error)

	browser := &fakeBrowser{data: []byte("%PDF-1.7")}
	g := newTestGenerator(d, browser, t.TempDir())

	_, err := g.GeneratePortfolio(context.Background(), portfolio.ID)
	require.Error(t, err)
	assert.True(t, errs.IsEmptyDocument(err))
	assert.Equal(t, 0, browser.calls)
}

func TestGeneratePortfolioWritesFileAndRecordsOutput(t *testing.T) {
	db, d := setupTestDB(t, t.Name(), true)
	portfolio := seedPortfolioWithProject(t, db)

	pdfBytes := []byte("%PDF-1.7 fake content")
	browser := &fakeBrowser{data: pdfBytes}
	uploadsDir := t.TempDir()
	g := newTestGenerator(d, browser, uploadsDir)

	result, err := g.GeneratePortfolio(context.Background(), portfolio.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, browser.calls)
	assert.Equal(t, "http://127.0.0.1:8080/print/portfolio/"+portfolio.ID.String(), browser.url)
	assert.Equal(t, "/uploads/portfolios/"+portfolio.ID.String()+".pdf", result.FilePath)
	assert.Equal(t, int64(len(pdfBytes)), result.FileSize)

	written, err := os.ReadFile(filepath.Join(uploadsDir, "portfolios", portfolio.ID.String()+".pdf"))
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, written)

	stored, err := d.PortfolioRepo().FindByID(portfolio.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.FilePath)
	assert.Equal(t, result.FilePath, *stored.FilePath)
	require.NotNil(t, stored.FileSize)
	assert.Equal(t, result.FileSize, *stored.FileSize)

	assert.Empty(t, g.inflight)
}

func TestLockEntryRemovedWhenIdle(t *testing.T) {
	_, d := setupTestDB(t, t.Name(), false)
	g := newTestGenerator(d, &fakeBrowser{}, t.TempDir())

	first := g.lock("portfolio:a")

	released := make(chan struct{})
	go func() {
		second := g.lock("portfolio:a")
		second()
		close(released)
	}()

	first()
	<-released

	assert.Empty(t, g.inflight)
}

func TestGeneratePortfolioBrowserMissing(t *testing.T) {
	db, d := setupTestDB(t, t.Name(), true)
	portfolio := seedPortfolioWithProject(t, db)

	browser := &fakeBrowser{err: errors.New(`exec: "google-chrome": executable file not found in $PATH`)}
	g := newTestGenerator(d, browser, t.TempDir())

	_, err := g.GeneratePortfolio(context.Background(), portfolio.ID)
	require.Error(t, err)
	assert.True(t, errs.IsRenderDependencyMissing(err))
}

func TestGeneratePortfolioGenericFailure(t *testing.T) {
	db, d := setupTestDB(t, t.Name(), true)
	portfolio := seedPortfolioWithProject(t, db)

	browser := &fakeBrowser{err: errors.New("net::ERR_CONNECTION_REFUSED")}
	g := newTestGenerator(d, browser, t.TempDir())

	_, err := g.GeneratePortfolio(context.Background(), portfolio.ID)
	require.Error(t, err)
	assert.False(t, errs.IsRenderDependencyMissing(err))
	assert.True(t, errors.Is(err, errs.ErrRenderFailed))

	stored, findErr := d.PortfolioRepo().FindByID(portfolio.ID)
	require.NoError(t, findErr)
	assert.Nil(t, stored.FilePath, "failed generation must not record output")
}

func TestGenerateCVWritesTimestampedFile(t *testing.T) {
	db, d := setupTestDB(t, t.Name(), true)
	require.NoError(t, db.Create(&models.CVSkill{
		Category:         models.SkillCategorySoftware,
		SkillName:        "Revit",
		ProficiencyLevel: models.ProficiencyAdvanced,
	}).Error)

	pdfBytes := []byte("%PDF-1.7 cv")
	browser := &fakeBrowser{data: pdfBytes}
	uploadsDir := t.TempDir()
	g := newTestGenerator(d, browser, uploadsDir)

	result, err := g.GenerateCV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/print/cv", browser.url)

	entries, err := os.ReadDir(filepath.Join(uploadsDir, "cv"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/uploads/cv/"+entries[0].Name(), result.FilePath)
}
