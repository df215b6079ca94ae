package common

import (
	"errors"
	"net/http"
	"time"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/logging"
)

// StatusForError maps the error taxonomy to HTTP. AlreadyMember and
// AlreadyExists answer 409 instead of a generic 400.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, constants.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, constants.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, constants.ErrActorNotFound),
		errors.Is(err, constants.ErrUserNotFound),
		errors.Is(err, constants.ErrProjectNotFound),
		errors.Is(err, constants.ErrMembershipNotFound):
		return http.StatusNotFound
	case errors.Is(err, constants.ErrAlreadyMember),
		errors.Is(err, constants.ErrAlreadyExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RespondServiceError writes err with its mapped status. Store failures are
// logged and hidden behind a generic message.
func RespondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	code := StatusForError(err)
	if code == http.StatusInternalServerError {
		logging.Error("Request failed", "error", err.Error())
		RespondError(w, initTime, nil, constants.MsgInternal, code)
		return
	}
	RespondError(w, initTime, err, "", code)
}
