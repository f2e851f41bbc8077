package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arcfolio/backend/render"
)

// printHandler serves the server-rendered A4 print HTML the PDF exporter
// loads in headless Chrome. Responses are HTML, not the JSON envelope.
type printHandler struct {
	responder Responder
	logger    zerolog.Logger
	projector *render.Projector
}

func newPrintHandler(projector *render.Projector) printHandler {
	logger := log.With().Str("handlerName", "printHandler").Logger()

	return printHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projector: projector,
	}
}

func (h printHandler) printPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, err := parseID(r, "portfolioID")
		if err != nil {
			http.Error(w, "invalid portfolio id", http.StatusBadRequest)
			return
		}

		doc, err := h.projector.BuildPortfolio(portfolioID)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to build portfolio document")
			http.Error(w, "failed to build document", http.StatusInternalServerError)
			return
		}
		if doc == nil {
			http.Error(w, "portfolio not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.WritePortfolioHTML(w, doc); err != nil {
			h.logger.Error().Err(err).Msg("failed to render print HTML")
		}
	}
}

func (h printHandler) printCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.projector.BuildCV()
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to build CV document")
			http.Error(w, "failed to build document", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.WriteCVHTML(w, doc); err != nil {
			h.logger.Error().Err(err).Msg("failed to render print HTML")
		}
	}
}
