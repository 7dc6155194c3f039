package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/arjunm/coursehub/internal/domain"
)

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: status, Message: message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Unknown errors
// degrade to a generic 500 without leaking internals.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyPurchased),
		errors.Is(err, domain.ErrPurchaseNotPending),
		errors.Is(err, domain.ErrPurchaseNotCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrPurchaseNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotInstructor),
		errors.Is(err, domain.ErrNotEnrolled):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrVerificationFailed),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidStars):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrGatewayUnavailable):
		writeError(w, http.StatusBadGateway, "payment gateway unavailable")
	default:
		log.Printf("ERROR [handlers] unexpected error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
