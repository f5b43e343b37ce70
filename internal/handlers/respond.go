package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/geckostudy/geckoden/internal/app"
	"github.com/geckostudy/geckoden/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

// writeDomainError maps service error kinds onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, app.ErrDuplicateSubmission):
		http.Error(w, "Already submitted for this semester and week", http.StatusConflict)
	case errors.As(err, &validationErrs),
		errors.Is(err, app.ErrInvalidSemester),
		errors.Is(err, app.ErrInvalidDate),
		errors.Is(err, app.ErrUnknownBadge):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Error.Printf("Internal error: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
