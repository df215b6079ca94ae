package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"abrigo/backend/internal/auth"
	"abrigo/backend/internal/common"
	"abrigo/backend/internal/constants"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// Failures wrap ErrValidation so they render as 400.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: %w", constants.MsgInvalidJSON, constants.ErrValidation)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), constants.ErrValidation)
	}
	return nil
}

// requireActor returns the authenticated user id or writes a 401.
func requireActor(w http.ResponseWriter, r *http.Request, initTime time.Time) (string, bool) {
	actorID := auth.ActorID(r.Context())
	if actorID == "" {
		common.RespondError(w, initTime, nil, constants.MsgMissingClaims, http.StatusUnauthorized)
		return "", false
	}
	return actorID, true
}

// scopedRoleParam resolves the {role} path segment to a per-project role.
func scopedRoleParam(r *http.Request) (constants.Role, error) {
	role, err := constants.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		return "", err
	}
	if !role.IsScoped() {
		return "", fmt.Errorf("%s %q: %w", constants.MsgNotScopedRole, role, constants.ErrValidation)
	}
	return role, nil
}
