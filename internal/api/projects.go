package api

import (
	"net/http"
	"strconv"
	"time"

	"abrigo/backend/internal/common"
	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/models/dtos/requests"
	"abrigo/backend/internal/models/dtos/responses"
	"abrigo/backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// CreateProject handles POST /api/v1/projects
//
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body requests.CreateProjectRequest true "Project data"
// @Success 201 {object} dtos.APIResponse{data=responses.ProjectResponse}
// @Failure 403 {object} dtos.APIResponse
// @Router /api/v1/projects [post]
func (h *Handlers) CreateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actorID, ok := requireActor(w, r, initTime)
		if !ok {
			return
		}

		var req requests.CreateProjectRequest
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		project, err := h.deps.Services.Projects.Create(r.Context(), actorID, services.ProjectInput{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			AddressID: req.AddressID,
		})
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgProjectCreated, responses.NewProjectResponse(project), http.StatusCreated)
	}
}

// ListProjects handles GET /api/v1/projects
//
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param active query bool false "Only active projects"
// @Success 200 {object} dtos.APIResponse{data=[]responses.ProjectResponse}
// @Router /api/v1/projects [get]
func (h *Handlers) ListProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		activeOnly := false
		if raw := r.URL.Query().Get("active"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				common.RespondError(w, initTime, err, "active must be a boolean", http.StatusBadRequest)
				return
			}
			activeOnly = parsed
		}

		projects, err := h.deps.Services.Projects.List(r.Context(), activeOnly)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgProjectsFetched, responses.NewProjectListResponse(projects))
	}
}

// GetProject handles GET /api/v1/projects/{project_id}
//
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} dtos.APIResponse{data=responses.ProjectResponse}
// @Failure 404 {object} dtos.APIResponse
// @Router /api/v1/projects/{project_id} [get]
func (h *Handlers) GetProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		project, err := h.deps.Services.Projects.Get(r.Context(), chi.URLParam(r, "project_id"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgProjectFetched, responses.NewProjectResponse(project))
	}
}

// UpdateProject handles PATCH /api/v1/projects/{project_id}
//
// @Summary Update project fields
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param body body requests.UpdateProjectRequest true "Fields to change"
// @Success 200 {object} dtos.APIResponse{data=responses.ProjectResponse}
// @Router /api/v1/projects/{project_id} [patch]
func (h *Handlers) UpdateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actorID, ok := requireActor(w, r, initTime)
		if !ok {
			return
		}

		var req requests.UpdateProjectRequest
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		project, err := h.deps.Services.Projects.Update(r.Context(), actorID, chi.URLParam(r, "project_id"), services.ProjectPatch{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			AddressID: req.AddressID,
		})
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgProjectUpdated, responses.NewProjectResponse(project))
	}
}

// DeactivateProject handles DELETE /api/v1/projects/{project_id}
//
// @Summary Deactivate a project
// @Description Soft delete. Existing memberships are kept but no new grants are accepted.
// @Tags Projects
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} dtos.APIResponse{data=responses.ProjectResponse}
// @Router /api/v1/projects/{project_id} [delete]
func (h *Handlers) DeactivateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actorID, ok := requireActor(w, r, initTime)
		if !ok {
			return
		}

		project, err := h.deps.Services.Projects.Deactivate(r.Context(), actorID, chi.URLParam(r, "project_id"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgProjectDeactivated, responses.NewProjectResponse(project))
	}
}
