package api

import (
	"net/http"
	"time"

	"abrigo/backend/internal/common"
	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/models/dtos/requests"

	"github.com/go-chi/chi/v5"
)

// GrantMembership handles POST /api/v1/memberships/{role}
//
// @Summary Grant a per-project role
// @Description role is one of administrador, funcionario, voluntario, doador.
// @Tags Memberships
// @Accept json
// @Produce json
// @Param role path string true "Scoped role"
// @Param body body requests.GrantMembershipRequest true "User, project and role attributes"
// @Success 201 {object} dtos.APIResponse{data=entities.Membership}
// @Failure 400 {object} dtos.APIResponse
// @Failure 403 {object} dtos.APIResponse
// @Failure 404 {object} dtos.APIResponse
// @Failure 409 {object} dtos.APIResponse
// @Router /api/v1/memberships/{role} [post]
func (h *Handlers) GrantMembership() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actorID, ok := requireActor(w, r, initTime)
		if !ok {
			return
		}

		role, err := scopedRoleParam(r)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		var req requests.GrantMembershipRequest
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		m, err := h.deps.Services.Memberships.Grant(r.Context(), role, req.UserID, req.ProjectID, req.Attributes, actorID)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgMembershipGranted, m, http.StatusCreated)
	}
}

// ListMembershipsByProject handles GET /api/v1/memberships/{role}/projects/{project_id}
//
// @Summary List a role's members in a project
// @Tags Memberships
// @Produce json
// @Param role path string true "Scoped role"
// @Param project_id path string true "Project ID"
// @Success 200 {object} dtos.APIResponse{data=[]entities.Membership}
// @Router /api/v1/memberships/{role}/projects/{project_id} [get]
func (h *Handlers) ListMembershipsByProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		role, err := scopedRoleParam(r)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		rows, err := h.deps.Services.Memberships.ListByProject(r.Context(), role, chi.URLParam(r, "project_id"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgMembershipsFetched, rows)
	}
}

// ListMembershipsByUser handles GET /api/v1/memberships/{role}/users/{user_id}
//
// @Summary List the projects where a user holds a role
// @Tags Memberships
// @Produce json
// @Param role path string true "Scoped role"
// @Param user_id path string true "User ID"
// @Success 200 {object} dtos.APIResponse{data=[]entities.Membership}
// @Router /api/v1/memberships/{role}/users/{user_id} [get]
func (h *Handlers) ListMembershipsByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		role, err := scopedRoleParam(r)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		rows, err := h.deps.Services.Memberships.ListByUser(r.Context(), role, chi.URLParam(r, "user_id"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgMembershipsFetched, rows)
	}
}

// GetMembership handles GET /api/v1/memberships/{role}/users/{user_id}/projects/{project_id}
//
// @Summary Get one membership row
// @Tags Memberships
// @Produce json
// @Success 200 {object} dtos.APIResponse{data=entities.Membership}
// @Failure 404 {object} dtos.APIResponse
// @Router /api/v1/memberships/{role}/users/{user_id}/projects/{project_id} [get]
func (h *Handlers) GetMembership() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		role, err := scopedRoleParam(r)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		m, err := h.deps.Services.Memberships.Get(r.Context(), role, chi.URLParam(r, "user_id"), chi.URLParam(r, "project_id"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgMembershipFetched, m)
	}
}

// UpdateMembership handles PATCH /api/v1/memberships/{role}/users/{user_id}/projects/{project_id}
//
// @Summary Update membership attributes
// @Tags Memberships
// @Accept json
// @Produce json
// @Param body body requests.UpdateMembershipRequest true "Attributes to change"
// @Success 200 {object} dtos.APIResponse{data=entities.Membership}
// @Failure 403 {object} dtos.APIResponse
// @Failure 404 {object} dtos.APIResponse
// @Router /api/v1/memberships/{role}/users/{user_id}/projects/{project_id} [patch]
func (h *Handlers) UpdateMembership() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actorID, ok := requireActor(w, r, initTime)
		if !ok {
			return
		}

		role, err := scopedRoleParam(r)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		var req requests.UpdateMembershipRequest
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		m, err := h.deps.Services.Memberships.Update(r.Context(), role,
			chi.URLParam(r, "user_id"), chi.URLParam(r, "project_id"), req.Attributes, actorID)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgMembershipUpdated, m)
	}
}

// RevokeMembership handles DELETE /api/v1/memberships/{role}/users/{user_id}/projects/{project_id}
//
// @Summary Revoke a membership
// @Description Deletes the row. The user's role list is not changed.
// @Tags Memberships
// @Produce json
// @Success 200 {object} dtos.APIResponse
// @Failure 403 {object} dtos.APIResponse
// @Failure 404 {object} dtos.APIResponse
// @Router /api/v1/memberships/{role}/users/{user_id}/projects/{project_id} [delete]
func (h *Handlers) RevokeMembership() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actorID, ok := requireActor(w, r, initTime)
		if !ok {
			return
		}

		role, err := scopedRoleParam(r)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		userID, projectID := chi.URLParam(r, "user_id"), chi.URLParam(r, "project_id")
		if err := h.deps.Services.Memberships.Revoke(r.Context(), role, userID, projectID, actorID); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgMembershipRevoked, map[string]string{
			"role":       role.String(),
			"user_id":    userID,
			"project_id": projectID,
		})
	}
}
