package api

import (
	"net/http"
	"time"

	"abrigo/backend/internal/common"
	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/models/dtos/requests"
	"abrigo/backend/internal/models/dtos/responses"
	"abrigo/backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// RegisterUser handles POST /api/v1/users
//
// @Summary Register a user
// @Description Public sign-up. The new user starts with an empty role list.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requests.RegisterUserRequest true "User data"
// @Success 201 {object} dtos.APIResponse{data=responses.UserResponse}
// @Failure 400 {object} dtos.APIResponse
// @Failure 409 {object} dtos.APIResponse
// @Router /api/v1/users [post]
func (h *Handlers) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req requests.RegisterUserRequest
		if err := decodeAndValidate(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		user, err := h.deps.Services.Users.Register(r.Context(), services.RegisterUserInput{
			Name:       req.Name,
			Email:      req.Email,
			NationalID: req.NationalID,
			Phone:      req.Phone,
		})
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgUserRegistered, responses.NewUserResponse(user), http.StatusCreated)
	}
}

// GetUser handles GET /api/v1/users/{user_id}
//
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dtos.APIResponse{data=responses.UserResponse}
// @Failure 404 {object} dtos.APIResponse
// @Router /api/v1/users/{user_id} [get]
func (h *Handlers) GetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.deps.Services.Users.Get(r.Context(), chi.URLParam(r, "user_id"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgUserFetched, responses.NewUserResponse(user))
	}
}

// GetUserMemberships handles GET /api/v1/users/{user_id}/memberships
//
// @Summary List every membership of a user
// @Description Rows from all scoped roles plus the stored role list.
// @Tags Users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dtos.APIResponse{data=responses.UserMembershipsResponse}
// @Router /api/v1/users/{user_id}/memberships [get]
func (h *Handlers) GetUserMemberships() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		userID := chi.URLParam(r, "user_id")

		user, err := h.deps.Services.Users.Get(r.Context(), userID)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		rows, err := h.deps.Services.Memberships.ListAllForUser(r.Context(), userID)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgMembershipsFetched, responses.UserMembershipsResponse{
			UserID:      user.ID,
			Roles:       user.Roles.Strings(),
			Memberships: rows,
		})
	}
}

// GrantAdotante handles POST /api/v1/users/{user_id}/adotante
//
// @Summary Self-service Adotante role
// @Description Adds Adotante to the user's role list. Idempotent and public.
// @Tags Users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dtos.APIResponse{data=responses.UserResponse}
// @Failure 404 {object} dtos.APIResponse
// @Router /api/v1/users/{user_id}/adotante [post]
func (h *Handlers) GrantAdotante() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.deps.Services.Adotante.GrantAdotante(r.Context(), chi.URLParam(r, "user_id"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgAdotanteGranted, responses.NewUserResponse(user))
	}
}

// RevokeAdotante handles DELETE /api/v1/users/{user_id}/adotante
//
// @Summary Remove the Adotante role
// @Description Staff only; the route is wrapped by RequireRoles.
// @Tags Users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dtos.APIResponse{data=responses.UserResponse}
// @Failure 403 {object} dtos.APIResponse
// @Router /api/v1/users/{user_id}/adotante [delete]
func (h *Handlers) RevokeAdotante() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.deps.Services.Adotante.RevokeAdotante(r.Context(), chi.URLParam(r, "user_id"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgAdotanteRevoked, responses.NewUserResponse(user))
	}
}

// PromoteUser handles POST /api/v1/users/{user_id}/superadmin
//
// @Summary Promote a user to SuperAdmin
// @Tags Users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dtos.APIResponse{data=responses.UserResponse}
// @Failure 403 {object} dtos.APIResponse
// @Router /api/v1/users/{user_id}/superadmin [post]
func (h *Handlers) PromoteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actorID, ok := requireActor(w, r, initTime)
		if !ok {
			return
		}

		user, err := h.deps.Services.Promotion.Promote(r.Context(), chi.URLParam(r, "user_id"), actorID)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		logging.Info("SuperAdmin granted", "user_id", user.ID, "actor_id", actorID)
		common.RespondSuccess(w, initTime, constants.MsgUserPromoted, responses.NewUserResponse(user))
	}
}

// ReconcileRoles handles POST /api/v1/users/{user_id}/roles/reconcile
//
// @Summary Rebuild a user's role list from membership rows
// @Tags Users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dtos.APIResponse{data=responses.UserResponse}
// @Failure 403 {object} dtos.APIResponse
// @Router /api/v1/users/{user_id}/roles/reconcile [post]
func (h *Handlers) ReconcileRoles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actorID, ok := requireActor(w, r, initTime)
		if !ok {
			return
		}

		user, err := h.deps.Services.Memberships.ReconcileRoles(r.Context(), chi.URLParam(r, "user_id"), actorID)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgRolesReconciled, responses.NewUserResponse(user))
	}
}
