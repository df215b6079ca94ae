package auth

import "abrigo/backend/internal/constants"

// UserClaims identifies the acting user of a request, whatever the credential.
type UserClaims interface {
	UserID() string
	Source() string
}

type JWTClaims struct {
	UserUUID string
	TokenID  string
}

func (c *JWTClaims) UserID() string { return c.UserUUID }
func (c *JWTClaims) Source() string { return string(constants.RequestSourceJWT) }

// APIKeyClaims are issued to back-office integrations, which name the acting
// user in X-User-Id next to the key.
type APIKeyClaims struct {
	UserUUID string
	KeyID    string
}

func (c *APIKeyClaims) UserID() string { return c.UserUUID }
func (c *APIKeyClaims) Source() string { return string(constants.RequestSourceAPIKey) }
