package api

import (
	"fmt"
	"image"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/errs"
	"github.com/arcfolio/backend/models"
	"github.com/arcfolio/backend/render"
)

const maxUploadBytes = 50 << 20

type assetHandler struct {
	responder   Responder
	logger      zerolog.Logger
	assetRepo   *database.AssetRepo
	projectRepo *database.ProjectRepo
	uploadsDir  string
}

func newAssetHandler(assetRepo *database.AssetRepo, projectRepo *database.ProjectRepo, uploadsDir string) assetHandler {
	logger := log.With().Str("handlerName", "assetHandler").Logger()

	return assetHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		assetRepo:   assetRepo,
		projectRepo: projectRepo,
		uploadsDir:  uploadsDir,
	}
}

// assetResponse is an asset plus its resolved public paths.
type assetResponse struct {
	models.ProjectAsset
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

func toAssetResponse(asset *models.ProjectAsset) assetResponse {
	return assetResponse{
		ProjectAsset: *asset,
		URL:          render.ResolveAssetPath(asset.FileName, asset.FilePath, asset.IsImage()),
		ThumbnailURL: render.ResolveThumbnailPath(asset.FileName, asset.IsImage()),
	}
}

// uploadAsset stores an uploaded file and creates its asset record at the end
// of the project's display order.
func (h assetHandler) uploadAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart body"))
			return
		}
		headers := formFiles(r, "file")
		if len(headers) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("validation failed", "file", "is required"))
			return
		}

		resp, err := h.saveUpload(projectID, headers[0], r.FormValue("assetType"), r.FormValue("title"), r.FormValue("caption"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusCreated, resp)
	}
}

// uploadFailure names a file that could not be stored in a batch upload.
type uploadFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type multiUploadResult struct {
	Uploaded []assetResponse `json:"uploaded"`
	Errors   []uploadFailure `json:"errors"`
}

// uploadMultipleAssets stores a batch of files for one project. Files that
// fail are reported per file; the rest still go through.
func (h assetHandler) uploadMultipleAssets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart body"))
			return
		}
		headers := formFiles(r, "files")
		if len(headers) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("validation failed", "files", "is required"))
			return
		}

		result := multiUploadResult{
			Uploaded: make([]assetResponse, 0, len(headers)),
			Errors:   make([]uploadFailure, 0),
		}
		for _, header := range headers {
			resp, err := h.saveUpload(projectID, header, r.FormValue("assetType"), "", "")
			if err != nil {
				result.Errors = append(result.Errors, uploadFailure{File: header.Filename, Error: err.Error()})
				continue
			}
			result.Uploaded = append(result.Uploaded, *resp)
		}

		h.responder.WriteData(w, http.StatusCreated, result)
	}
}

// formFiles returns the parsed multipart file headers for a field.
func formFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

// saveUpload validates, stores and records one uploaded file at the end of
// the project's display order.
func (h assetHandler) saveUpload(projectID uuid.UUID, header *multipart.FileHeader, explicitType, title, caption string) (*assetResponse, error) {
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mime.TypeByExtension(path.Ext(header.Filename))
	}
	isImage := strings.HasPrefix(mimeType, "image/")
	if !isImage && mimeType != "application/pdf" {
		return nil, errs.NewBadRequestErrorWithField("validation failed", "file", "must be an image or a PDF")
	}

	file, err := header.Open()
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to read upload", err)
	}
	defer file.Close()

	fileName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFileName(header.Filename))
	subDir := "projects/originals"
	if isImage {
		subDir = "projects/optimized"
	}
	diskDir := filepath.Join(h.uploadsDir, filepath.FromSlash(subDir))
	if err := os.MkdirAll(diskDir, 0o755); err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to store file", err)
	}
	diskPath := filepath.Join(diskDir, fileName)

	size, err := writeUpload(diskPath, file)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to store file", err)
	}

	asset := models.ProjectAsset{
		ProjectID: projectID,
		AssetType: inferAssetType(explicitType, header.Filename, isImage),
		FilePath:  "/uploads/" + subDir + "/" + fileName,
		FileName:  fileName,
		FileSize:  size,
		MimeType:  mimeType,
	}
	if title != "" {
		asset.Title = &title
	}
	if caption != "" {
		asset.Caption = &caption
	}

	if isImage {
		if width, height, err := probeImageSize(diskPath); err == nil {
			asset.Width = &width
			asset.Height = &height
		} else {
			h.logger.Warn().Err(err).Str("fileName", fileName).Msg("could not probe image dimensions")
		}
	}

	if err := h.assetRepo.Add(&asset); err != nil {
		os.Remove(diskPath)
		return nil, wrapDatabaseError("create", "asset", err)
	}

	resp := toAssetResponse(&asset)
	return &resp, nil
}

// getAsset retrieves an asset with its resolved public paths
func (h assetHandler) getAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID, err := parseID(r, "assetID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		asset, err := h.assetRepo.FindByID(assetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "asset", err))
			return
		}
		if asset == nil {
			h.responder.WriteError(w, errs.NewNotFound("asset"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, toAssetResponse(asset))
	}
}

// assetUpdateInput is the metadata a client may change after upload.
type assetUpdateInput struct {
	AssetType     *string  `json:"assetType"`
	Title         *string  `json:"title"`
	Caption       *string  `json:"caption"`
	DrawingType   *string  `json:"drawingType"`
	Scale         *string  `json:"scale"`
	Stage         *string  `json:"stage"`
	PreferredSize *string  `json:"preferredSize"`
	CanBeCropped  *bool    `json:"canBeCropped"`
	FocalPointX   *float64 `json:"focalPointX"`
	FocalPointY   *float64 `json:"focalPointY"`
}

// updateAsset updates asset metadata; the stored file is untouched.
func (h assetHandler) updateAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID, err := parseID(r, "assetID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		asset, err := h.assetRepo.FindByID(assetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "asset", err))
			return
		}
		if asset == nil {
			h.responder.WriteError(w, errs.NewNotFound("asset"))
			return
		}

		var input assetUpdateInput
		if err := decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if input.AssetType != nil {
			if err := checkVar(*input.AssetType, assetTypeRule, "assetType"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			asset.AssetType = *input.AssetType
		}
		if input.Title != nil {
			asset.Title = input.Title
		}
		if input.Caption != nil {
			asset.Caption = input.Caption
		}
		if input.DrawingType != nil {
			asset.DrawingType = input.DrawingType
		}
		if input.Scale != nil {
			asset.Scale = input.Scale
		}
		if input.Stage != nil {
			asset.Stage = input.Stage
		}
		if input.PreferredSize != nil {
			asset.PreferredSize = input.PreferredSize
		}
		if input.CanBeCropped != nil {
			asset.CanBeCropped = *input.CanBeCropped
		}
		if input.FocalPointX != nil {
			asset.FocalPointX = input.FocalPointX
		}
		if input.FocalPointY != nil {
			asset.FocalPointY = input.FocalPointY
		}

		if err := h.assetRepo.Update(asset); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "asset", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, toAssetResponse(asset))
	}
}

// deleteAsset removes the asset record and best-effort removes its files.
func (h assetHandler) deleteAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID, err := parseID(r, "assetID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		asset, err := h.assetRepo.FindByID(assetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "asset", err))
			return
		}
		if asset == nil {
			h.responder.WriteError(w, errs.NewNotFound("asset"))
			return
		}

		if err := h.assetRepo.Delete(assetID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "asset", err))
			return
		}

		h.removeFiles(asset)

		h.responder.WriteData(w, http.StatusOK, map[string]string{
			"message": "asset deleted",
		})
	}
}

// reorderInput is the batch display-order update body.
type reorderInput struct {
	Assets []struct {
		ID           uuid.UUID `json:"id"`
		DisplayOrder int       `json:"displayOrder"`
	} `json:"assets"`
}

// reorderAssets applies a batch of display-order updates in one transaction
func (h assetHandler) reorderAssets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input reorderInput
		if err := decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(input.Assets) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("validation failed", "assets", "is required"))
			return
		}

		orders := make([]database.AssetOrder, 0, len(input.Assets))
		for _, a := range input.Assets {
			if a.ID == uuid.Nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("validation failed", "assets", "every entry needs an id"))
				return
			}
			orders = append(orders, database.AssetOrder{ID: a.ID, DisplayOrder: a.DisplayOrder})
		}

		if err := h.assetRepo.Reorder(orders); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("reorder", "assets", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, map[string]string{
			"message": "assets reordered",
		})
	}
}

// setHeroAsset marks the asset as its project's hero image
func (h assetHandler) setHeroAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID, err := parseID(r, "assetID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		asset, err := h.assetRepo.SetHero(assetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("set hero on", "asset", err))
			return
		}
		if asset == nil {
			h.responder.WriteError(w, errs.NewNotFound("asset"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, toAssetResponse(asset))
	}
}

func (h assetHandler) removeFiles(asset *models.ProjectAsset) {
	webPath := render.ResolveAssetPath(asset.FileName, asset.FilePath, asset.IsImage())
	paths := []string{webPath}
	if thumb := render.ResolveThumbnailPath(asset.FileName, asset.IsImage()); thumb != "" {
		paths = append(paths, thumb)
	}
	for _, p := range paths {
		rel := strings.TrimPrefix(p, "/uploads/")
		diskPath := filepath.Join(h.uploadsDir, filepath.FromSlash(rel))
		if err := os.Remove(diskPath); err != nil && !os.IsNotExist(err) {
			h.logger.Warn().Err(err).Str("path", diskPath).Msg("could not remove asset file")
		}
	}
}

var assetTypeRule = "oneof=" + strings.Join([]string{
	models.AssetTypeImage, models.AssetTypeDrawing, models.AssetTypeDiagram,
	models.AssetTypeModelPhoto, models.AssetTypeRender, models.AssetTypeSketch,
}, " ")

// inferAssetType picks the asset type: the explicit form value when valid,
// else a guess from the file name, else plain IMAGE.
func inferAssetType(explicit, fileName string, isImage bool) string {
	if explicit != "" && validate.Var(explicit, assetTypeRule) == nil {
		return explicit
	}
	if !isImage {
		return models.AssetTypeDrawing
	}
	name := strings.ToLower(fileName)
	switch {
	case strings.Contains(name, "plan") || strings.Contains(name, "section") || strings.Contains(name, "elevation"):
		return models.AssetTypeDrawing
	case strings.Contains(name, "sketch"):
		return models.AssetTypeSketch
	case strings.Contains(name, "render") || strings.Contains(name, "visual"):
		return models.AssetTypeRender
	case strings.Contains(name, "model"):
		return models.AssetTypeModelPhoto
	case strings.Contains(name, "diagram"):
		return models.AssetTypeDiagram
	}
	return models.AssetTypeImage
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '_'
	}, name)
}

func writeUpload(diskPath string, src io.Reader) (int64, error) {
	dst, err := os.Create(diskPath)
	if err != nil {
		return 0, err
	}
	defer dst.Close()
	return io.Copy(dst, src)
}

func probeImageSize(diskPath string) (width, height int, err error) {
	f, err := os.Open(diskPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
