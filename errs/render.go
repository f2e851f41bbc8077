package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Render pipeline sentinel values. EmptyDocument means a PDF was requested for
// a portfolio/CV with nothing to render; DependencyMissing means the headless
// browser binary could not be located, which operators fix by installing it.
var (
	ErrEmptyDocument           = errors.New("no content available to render")
	ErrRenderDependencyMissing = errors.New("headless browser is not installed")
	ErrRenderFailed            = errors.New("render failed")
)

func NewEmptyDocumentError(document string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEmptyDocument,
		Details:    fmt.Sprintf("%s has no renderable content", document),
	}
}

func NewRenderDependencyError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrRenderDependencyMissing,
		Details:    "Chrome/Chromium could not be found. Install it and make sure it is on PATH",
		Cause:      cause,
	}
}

func NewRenderError(document string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrRenderFailed,
		Details:    fmt.Sprintf("Failed to render %s", document),
		Cause:      cause,
	}
}

func IsEmptyDocument(err error) bool {
	return errors.Is(err, ErrEmptyDocument)
}

func IsRenderDependencyMissing(err error) bool {
	return errors.Is(err, ErrRenderDependencyMissing)
}
