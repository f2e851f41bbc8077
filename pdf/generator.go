// Package pdf orchestrates PDF export: it preflights the renderable
// document, drives a headless browser to the in-app print route and writes
// the result under the uploads directory.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/errs"
	"github.com/arcfolio/backend/render"
)

// Result describes a generated PDF: its public web path and size in bytes.
type Result struct {
	FilePath string `json:"filePath"`
	FileSize int64  `json:"fileSize"`
}

// Generator serializes generation per document and caps the number of
// concurrent browser instances, since each print spawns a full Chrome.
type Generator struct {
	logger     zerolog.Logger
	projector  *render.Projector
	portfolios *database.PortfolioRepo
	browser    Browser
	uploadsDir string
	baseURL    string
	timeout    time.Duration

	sem      *semaphore.Weighted
	mu       sync.Mutex
	inflight map[string]*docLock
}

// docLock is a per-document mutex with a holder count, so the inflight map
// entry can be dropped once the last holder releases it.
type docLock struct {
	mu      sync.Mutex
	holders int
}

func NewGenerator(db database.Database, browser Browser, uploadsDir, baseURL string, maxConcurrent int64, timeout time.Duration) *Generator {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Generator{
		logger:     log.With().Str("handlerName", "pdfGenerator").Logger(),
		projector:  render.NewProjector(db),
		portfolios: db.PortfolioRepo(),
		browser:    browser,
		uploadsDir: uploadsDir,
		baseURL:    baseURL,
		timeout:    timeout,
		sem:        semaphore.NewWeighted(maxConcurrent),
		inflight:   make(map[string]*docLock),
	}
}

// GeneratePortfolio renders the portfolio's print route to PDF and records
// the output path and size on the portfolio record.
func (g *Generator) GeneratePortfolio(ctx context.Context, id uuid.UUID) (Result, error) {
	unlock := g.lock("portfolio:" + id.String())
	defer unlock()

	// Preflight: rebuild the document before any browser work so a missing
	// or empty portfolio never costs a Chrome launch.
	doc, err := g.projector.BuildPortfolio(id)
	if err != nil {
		return Result{}, errs.NewDatabaseError("load", "portfolio", err)
	}
	if doc == nil {
		return Result{}, errs.NewNotFound("portfolio")
	}
	if len(doc.Projects) == 0 && (doc.CV == nil || doc.CV.IsEmpty()) {
		return Result{}, errs.NewEmptyDocumentError("portfolio")
	}

	fileName := id.String() + ".pdf"
	url := fmt.Sprintf("%s/print/portfolio/%s", g.baseURL, id)

	result, err := g.print(ctx, url, "portfolios", fileName)
	if err != nil {
		return Result{}, err
	}

	if err := g.portfolios.RecordOutput(id, result.FilePath, result.FileSize); err != nil {
		return Result{}, errs.NewDatabaseError("record output on", "portfolio", err)
	}

	g.logger.Info().
		Str("portfolioId", id.String()).
		Str("filePath", result.FilePath).
		Int64("fileSize", result.FileSize).
		Msg("Generated portfolio PDF")
	return result, nil
}

// GenerateCV renders the standalone CV print route to PDF. Output files are
// keyed by timestamp so repeated generations never overwrite each other, and
// nothing is persisted back to the store.
func (g *Generator) GenerateCV(ctx context.Context) (Result, error) {
	unlock := g.lock("cv")
	defer unlock()

	doc, err := g.projector.BuildCV()
	if err != nil {
		return Result{}, errs.NewDatabaseError("load", "CV", err)
	}
	if doc.CV.IsEmpty() {
		return Result{}, errs.NewEmptyDocumentError("CV")
	}

	fileName := fmt.Sprintf("cv-%d.pdf", time.Now().UnixMilli())
	url := g.baseURL + "/print/cv"

	result, err := g.print(ctx, url, "cv", fileName)
	if err != nil {
		return Result{}, err
	}

	g.logger.Info().
		Str("filePath", result.FilePath).
		Int64("fileSize", result.FileSize).
		Msg("Generated CV PDF")
	return result, nil
}

// print runs the browser under the global cap and writes the PDF under
// <uploads>/<subDir>/<fileName>.
func (g *Generator) print(ctx context.Context, url, subDir, fileName string) (Result, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return Result{}, errs.NewRenderError("document", err)
	}
	defer g.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	buf, err := g.browser.PrintToPDF(ctx, url)
	if err != nil {
		if isBrowserMissing(err) {
			return Result{}, errs.NewRenderDependencyError(err)
		}
		return Result{}, errs.NewRenderError("document", err)
	}

	outDir := filepath.Join(g.uploadsDir, subDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, errs.NewRenderError("document", err)
	}
	outPath := filepath.Join(outDir, fileName)
	if err := os.WriteFile(outPath, buf, 0o644); err != nil {
		return Result{}, errs.NewRenderError("document", err)
	}

	return Result{
		FilePath: "/uploads/" + subDir + "/" + fileName,
		FileSize: int64(len(buf)),
	}, nil
}

// lock serializes generation per document key. Concurrent requests for the
// same document queue instead of racing on the output file; the map entry is
// removed when the last holder releases it.
func (g *Generator) lock(key string) func() {
	g.mu.Lock()
	l, ok := g.inflight[key]
	if !ok {
		l = &docLock{}
		g.inflight[key] = l
	}
	l.holders++
	g.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		g.mu.Lock()
		l.holders--
		if l.holders == 0 {
			delete(g.inflight, key)
		}
		g.mu.Unlock()
	}
}
