package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arcfolio/backend/database"
)

type statsHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
}

func newStatsHandler(db database.Database) statsHandler {
	logger := log.With().Str("handlerName", "statsHandler").Logger()

	return statsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

// getStats returns record counts per entity for the dashboard.
func (h statsHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := h.db.Stats()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "records", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, counts)
	}
}
