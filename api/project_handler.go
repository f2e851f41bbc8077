package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/errs"
	"github.com/arcfolio/backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	assetRepo   *database.AssetRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo, assetRepo *database.AssetRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		assetRepo:   assetRepo,
	}
}

var projectTypeRule = "oneof=" + strings.Join(models.ProjectTypes, " ")

// ProjectCollection is the paginated project list payload.
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// getAllProjects retrieves projects with filtering, pagination and sorting
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := database.ProjectFilter{
			ProjectType: q.Get("projectType"),
			Search:      q.Get("search"),
		}
		if v := q.Get("isAcademic"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("validation failed", "isAcademic", "must be a boolean"))
				return
			}
			filter.IsAcademic = &b
		}
		if v := q.Get("isCompetition"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("validation failed", "isCompetition", "must be a boolean"))
				return
			}
			filter.IsCompetition = &b
		}
		filter.YearStart, _ = strconv.Atoi(q.Get("yearStart"))
		filter.YearEnd, _ = strconv.Atoi(q.Get("yearEnd"))

		page := database.ProjectPage{
			SortBy:    q.Get("sortBy"),
			SortOrder: q.Get("sortOrder"),
		}
		page.Page, _ = strconv.Atoi(q.Get("page"))
		page.Limit, _ = strconv.Atoi(q.Get("limit"))

		projects, total, err := h.projectRepo.FindAll(filter, page)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}
		if projects == nil {
			projects = []*models.Project{}
		}

		if page.Page < 1 {
			page.Page = 1
		}
		if page.Limit < 1 || page.Limit > 100 {
			page.Limit = 20
		}

		h.responder.WriteData(w, http.StatusOK, ProjectCollection{
			Projects: projects,
			Total:    total,
			Page:     page.Page,
			Limit:    page.Limit,
		})
	}
}

// getProject retrieves a specific project by ID with its assets
func (h projectHandler) getProject() http.HandlerFunc {
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

		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// createProject creates a new project
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := decodeBody(r, &project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.validateProject(&project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project.ID = uuid.Nil
		project.Assets = nil
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.responder.WriteData(w, http.StatusCreated, project)
	}
}

// updateProject updates an existing project
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		var project models.Project
		if err := decodeBody(r, &project); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validateProject(&project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project.ID = projectID
		project.CreatedAt = existing.CreatedAt
		project.Assets = nil
		if err := h.projectRepo.Update(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, updated)
	}
}

// deleteProject deletes a project and its assets
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, map[string]string{
			"message": "project deleted",
		})
	}
}

// getProjectAssets retrieves a project's assets in display order
func (h projectHandler) getProjectAssets() http.HandlerFunc {
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

		assets, err := h.assetRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "assets", err))
			return
		}

		responses := make([]assetResponse, 0, len(assets))
		for _, asset := range assets {
			responses = append(responses, toAssetResponse(asset))
		}

		h.responder.WriteData(w, http.StatusOK, responses)
	}
}

func (h projectHandler) validateProject(project *models.Project) error {
	switch {
	case project.ProjectName == "":
		return errs.NewBadRequestErrorWithField("validation failed", "projectName", "is required")
	case project.Location == "":
		return errs.NewBadRequestErrorWithField("validation failed", "location", "is required")
	case project.YearStart == 0:
		return errs.NewBadRequestErrorWithField("validation failed", "yearStart", "is required")
	case project.PracticeName == "":
		return errs.NewBadRequestErrorWithField("validation failed", "practiceName", "is required")
	case project.Role == "":
		return errs.NewBadRequestErrorWithField("validation failed", "role", "is required")
	case project.BriefDescription == "":
		return errs.NewBadRequestErrorWithField("validation failed", "briefDescription", "is required")
	}
	return checkVar(project.ProjectType, projectTypeRule, "projectType")
}

// parseID extracts and parses a UUID path parameter.
func parseID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + param)
	}
	return id, nil
}
