package constants

import "errors"

// Error taxonomy shared by services and the HTTP layer. Every kind is terminal:
// the caller corrects the input and resubmits.
var (
	ErrActorNotFound      = errors.New("acting user not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrAlreadyMember      = errors.New("user is already a member of this project")
	ErrAlreadyExists      = errors.New("record already exists")
	ErrValidation         = errors.New("validation error")
)
