package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// LeadDuplicityChecker reports how many leads already exist for an email.
type LeadDuplicityChecker interface {
	CountByEmail(ctx context.Context, email string) (int, error)
}

// ValidationHandler lets the form probe for a cross-session duplicate before
// submitting. The submission flow itself never depends on this: the unique
// index on the leads table is what actually guards the insert.
type ValidationHandler struct {
	Repo LeadDuplicityChecker
}

func NewValidationHandler(repo LeadDuplicityChecker) *ValidationHandler {
	return &ValidationHandler{Repo: repo}
}

func (h *ValidationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	if input.Email == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "email is required")
		return
	}

	count, err := h.Repo.CountByEmail(r.Context(), input.Email)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to check for duplicates")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if count > 0 {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "email_exists",
			"message": "a lead with this email already exists",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
