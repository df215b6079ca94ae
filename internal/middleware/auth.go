package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"abrigo/backend/internal/auth"
	"abrigo/backend/internal/common"
	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/models/entities"
)

// APIKeyLookup is satisfied by repositories.KeysRepo.
type APIKeyLookup interface {
	GetStatus(ctx context.Context, key string) (*entities.ApiKey, error)
}

// TokenVerifier is satisfied by auth.TokenManager.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.JWTClaims, error)
}

// AuthMiddleware resolves the acting user from a bearer token or from an
// API key plus X-User-Id. It only authenticates; role checks happen in the
// services or in RequireRoles.
func AuthMiddleware(tokens TokenVerifier, keysRepo APIKeyLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				jwtClaims, err := tokens.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
				if err != nil {
					logging.Warn("Rejected bearer token", "error", err.Error())
					common.RespondError(w, initTime, nil, constants.MsgInvalidBearerToken, http.StatusUnauthorized)
					return
				}
				claims = jwtClaims

			case apiKey != "":
				userID := r.Header.Get("X-User-Id")
				if userID == "" {
					common.RespondError(w, initTime, nil, constants.MsgMissingActingUserID, http.StatusUnauthorized)
					return
				}

				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					logging.Error("API key lookup failed", "error", err.Error())
					common.RespondError(w, initTime, nil, constants.MsgInternal, http.StatusInternalServerError)
					return
				}
				if keyRes == nil {
					common.RespondError(w, initTime, nil, constants.MsgInvalidAPIKey, http.StatusUnauthorized)
					return
				}
				if !keyRes.Status {
					common.RespondError(w, initTime, nil, constants.MsgInactiveAPIKey, http.StatusUnauthorized)
					return
				}

				claims = &auth.APIKeyClaims{UserUUID: userID, KeyID: keyRes.ApiKey}

			default:
				common.RespondError(w, initTime, nil, constants.MsgMissingCredentials, http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
