package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/arcfolio/backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// successEnvelope wraps every successful response body.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorEnvelope wraps every failed response body.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// WriteData writes a success envelope with the given status code.
func (r Responder) WriteData(w http.ResponseWriter, statusCode int, data any) {
	r.writeJSON(w, statusCode, successEnvelope{Success: true, Data: data})
}

// WriteError maps an error onto the error envelope. Unexpected errors become
// a generic 500; internal detail is included only outside production.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		body := errorEnvelope{Success: false, Error: "internal server error"}
		if !inProduction() {
			body.Details = err.Error()
		}
		r.writeJSON(w, http.StatusInternalServerError, body)
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Msg(apiErr.GetFullError())
	}

	r.writeJSON(w, apiErr.StatusCode, errorEnvelope{
		Success: false,
		Error:   apiErr.Error(),
		Field:   apiErr.Field,
		Details: apiErr.Details,
	})
}

func (r Responder) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(body)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func inProduction() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

// decodeBody decodes a JSON request body, normalizing failures to a 400.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewBadRequestError("malformed request body")
	}
	return nil
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
