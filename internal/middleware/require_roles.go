package middleware

import (
	"context"
	"net/http"
	"time"

	"abrigo/backend/internal/auth"
	"abrigo/backend/internal/common"
	"abrigo/backend/internal/constants"
)

// Authorizer is satisfied by services.AuthorizationGate.
type Authorizer interface {
	Authorize(ctx context.Context, actorID string, allowed constants.RoleSet, targetProjectID string) error
}

// RequireRoles runs the gate before the handler, for routes whose service
// method is deliberately ungated.
func RequireRoles(gate Authorizer, allowed constants.RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, initTime, nil, constants.MsgMissingClaims, http.StatusUnauthorized)
				return
			}

			if err := gate.Authorize(r.Context(), claims.UserID(), allowed, ""); err != nil {
				common.RespondServiceError(w, initTime, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
