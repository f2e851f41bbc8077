package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/errs"
	"github.com/arcfolio/backend/models"
	"github.com/arcfolio/backend/pdf"
	"github.com/arcfolio/backend/render"
)

type portfolioHandler struct {
	responder     Responder
	logger        zerolog.Logger
	portfolioRepo *database.PortfolioRepo
	projector     *render.Projector
	generator     *pdf.Generator
}

func newPortfolioHandler(portfolioRepo *database.PortfolioRepo, projector *render.Projector, generator *pdf.Generator) portfolioHandler {
	logger := log.With().Str("handlerName", "portfolioHandler").Logger()

	return portfolioHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		portfolioRepo: portfolioRepo,
		projector:     projector,
		generator:     generator,
	}
}

// portfolioInput is the create/update request body. A nil Projects slice on
// update leaves the existing project links alone; an empty one clears them.
type portfolioInput struct {
	PortfolioName string                  `json:"portfolioName" validate:"required"`
	PortfolioType string                  `json:"portfolioType" validate:"required,oneof=SAMPLE FULL"`
	TemplateID    *uuid.UUID              `json:"templateId"`
	CVIncluded    bool                    `json:"cvIncluded"`
	Settings      map[string]any          `json:"settings"`
	Projects      []portfolioProjectInput `json:"projects" validate:"omitempty,dive"`
}

type portfolioProjectInput struct {
	ProjectID      uuid.UUID  `json:"projectId" validate:"required"`
	DisplayOrder   int        `json:"displayOrder"`
	IncludedAssets []string   `json:"includedAssets"`
	HeroAssetID    *uuid.UUID `json:"heroAssetId"`
}

func (in portfolioInput) toLinks() []models.PortfolioProject {
	if in.Projects == nil {
		return nil
	}
	links := make([]models.PortfolioProject, 0, len(in.Projects))
	for _, p := range in.Projects {
		links = append(links, models.PortfolioProject{
			ProjectID:      p.ProjectID,
			DisplayOrder:   p.DisplayOrder,
			IncludedAssets: datatypes.NewJSONSlice(p.IncludedAssets),
			HeroAssetID:    p.HeroAssetID,
		})
	}
	return links
}

// getAllPortfolios retrieves all portfolios, newest first
func (h portfolioHandler) getAllPortfolios() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolios, err := h.portfolioRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolios", err))
			return
		}
		if portfolios == nil {
			portfolios = []*models.Portfolio{}
		}
		h.responder.WriteData(w, http.StatusOK, portfolios)
	}
}

// getPortfolio retrieves a portfolio with its project links
func (h portfolioHandler) getPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, err := parseID(r, "portfolioID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		portfolio, err := h.portfolioRepo.FindByID(portfolioID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio", err))
			return
		}
		if portfolio == nil {
			h.responder.WriteError(w, errs.NewNotFound("portfolio"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, portfolio)
	}
}

// createPortfolio creates a portfolio together with its project links
func (h portfolioHandler) createPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input portfolioInput
		if err := decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := checkStruct(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		portfolio := models.Portfolio{
			PortfolioName: input.PortfolioName,
			PortfolioType: input.PortfolioType,
			TemplateID:    input.TemplateID,
			CVIncluded:    input.CVIncluded,
			Settings:      datatypes.JSONMap(input.Settings),
			Projects:      input.toLinks(),
		}
		if err := h.portfolioRepo.Add(&portfolio); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "portfolio", err))
			return
		}

		created, err := h.portfolioRepo.FindByID(portfolio.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio", err))
			return
		}

		h.responder.WriteData(w, http.StatusCreated, created)
	}
}

// updatePortfolio updates a portfolio and replaces its links when provided
func (h portfolioHandler) updatePortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, err := parseID(r, "portfolioID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.portfolioRepo.FindByID(portfolioID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("portfolio"))
			return
		}

		var input portfolioInput
		if err := decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := checkStruct(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		portfolio := models.Portfolio{
			ID:            portfolioID,
			PortfolioName: input.PortfolioName,
			PortfolioType: input.PortfolioType,
			TemplateID:    input.TemplateID,
			CVIncluded:    input.CVIncluded,
			Settings:      datatypes.JSONMap(input.Settings),
			FilePath:      existing.FilePath,
			FileSize:      existing.FileSize,
			CreatedAt:     existing.CreatedAt,
			Projects:      input.toLinks(),
		}
		if err := h.portfolioRepo.Update(&portfolio); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "portfolio", err))
			return
		}

		updated, err := h.portfolioRepo.FindByID(portfolioID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, updated)
	}
}

// deletePortfolio deletes a portfolio and its project links
func (h portfolioHandler) deletePortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, err := parseID(r, "portfolioID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.portfolioRepo.FindByID(portfolioID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("portfolio"))
			return
		}

		if err := h.portfolioRepo.Delete(portfolioID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "portfolio", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, map[string]string{
			"message": "portfolio deleted",
		})
	}
}

// getRenderable retrieves the print-ready portfolio projection
func (h portfolioHandler) getRenderable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, err := parseID(r, "portfolioID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		doc, err := h.projector.BuildPortfolio(portfolioID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("build", "portfolio document", err))
			return
		}
		if doc == nil {
			h.responder.WriteError(w, errs.NewNotFound("portfolio"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, doc)
	}
}

// generatePDF exports the portfolio as a PDF file
func (h portfolioHandler) generatePDF() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, err := parseID(r, "portfolioID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.generator.GeneratePortfolio(r.Context(), portfolioID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, result)
	}
}
