package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/models"
)

type settingsHandler struct {
	responder    Responder
	logger       zerolog.Logger
	settingsRepo *database.SettingsRepo
}

func newSettingsHandler(settingsRepo *database.SettingsRepo) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		settingsRepo: settingsRepo,
	}
}

// settingsInput is the update body; margins are millimeters, 0-40 per side.
type settingsInput struct {
	ColorScheme string       `json:"colorScheme" validate:"required,oneof=classic modernBlue warmMinimal"`
	Margins     marginsInput `json:"margins" validate:"required"`
}

type marginsInput struct {
	Top    float64 `json:"top" validate:"min=0,max=40"`
	Bottom float64 `json:"bottom" validate:"min=0,max=40"`
	Left   float64 `json:"left" validate:"min=0,max=40"`
	Right  float64 `json:"right" validate:"min=0,max=40"`
}

type settingsResponse struct {
	ColorScheme string         `json:"colorScheme"`
	Margins     models.Margins `json:"margins"`
}

// getSettings retrieves the global display settings
func (h settingsHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "settings", err))
			return
		}
		if settings == nil {
			// Bootstrap creates the record at startup; resolve defaults anyway.
			h.responder.WriteData(w, http.StatusOK, settingsResponse{
				ColorScheme: models.ColorSchemeClassic,
				Margins:     models.DefaultMargins(),
			})
			return
		}

		h.responder.WriteData(w, http.StatusOK, settingsResponse{
			ColorScheme: settings.ColorScheme,
			Margins:     settings.Margins.Data(),
		})
	}
}

// updateSettings updates the global display settings
func (h settingsHandler) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input settingsInput
		if err := decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := checkStruct(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		settings := models.AppSettings{
			ID:          models.AppSettingsID,
			ColorScheme: input.ColorScheme,
			Margins: datatypes.NewJSONType(models.Margins{
				Top:    input.Margins.Top,
				Bottom: input.Margins.Bottom,
				Left:   input.Margins.Left,
				Right:  input.Margins.Right,
			}),
		}
		if err := h.settingsRepo.Update(&settings); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "settings", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, settingsResponse{
			ColorScheme: settings.ColorScheme,
			Margins:     settings.Margins.Data(),
		})
	}
}
