package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/confirmation"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type Drafter interface {
	Configured() bool
	DraftConfirmation(ctx context.Context, name, industry string) (string, error)
}

type ConfirmationMailer interface {
	Configured() bool
	SendConfirmation(to, name, industry, body string) error
}

// ConfirmationHandler is the confirmation-send function: one request in, one
// email out. 400 for bad input, 500 when its own configuration is missing.
type ConfirmationHandler struct {
	Drafter Drafter
	Mailer  ConfirmationMailer
}

func NewConfirmationHandler(drafter Drafter, mailer ConfirmationMailer) *ConfirmationHandler {
	return &ConfirmationHandler{
		Drafter: drafter,
		Mailer:  mailer,
	}
}

func (h *ConfirmationHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req confirmation.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	// Same field rules the capture form applies.
	input := usecase.SubmitLeadInput{
		Name:     req.Name,
		Email:    req.Email,
		Industry: req.Industry,
	}
	if validationErrors := usecase.ValidateSubmitLeadInput(input); len(validationErrors) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "VALIDATION_ERROR",
			"message": "name, email and industry are required",
			"fields":  validationErrors,
		})
		return
	}

	// Missing SMTP credentials is a configuration fault, never papered over
	// with a placeholder credential.
	if h.Mailer == nil || !h.Mailer.Configured() {
		writeErrorResponse(w, http.StatusInternalServerError, "MISSING_CONFIGURATION", "email sending is not configured")
		return
	}

	body := mail.FallbackBody(req.Industry)
	if h.Drafter != nil && h.Drafter.Configured() {
		drafted, err := h.Drafter.DraftConfirmation(r.Context(), req.Name, req.Industry)
		if err != nil {
			log.Printf("[CONFIRM] body drafting failed, using fallback: %v", err)
			middleware.RecordIntegrationError("textgen")
		} else {
			body = drafted
		}
	}

	if err := h.Mailer.SendConfirmation(req.Email, req.Name, req.Industry, body); err != nil {
		log.Printf("[CONFIRM] send failed for %s: %v", req.Email, err)
		middleware.RecordConfirmationEmail("failed")
		writeErrorResponse(w, http.StatusBadGateway, "SEND_FAILED", "failed to send confirmation email")
		return
	}

	middleware.RecordConfirmationEmail("sent")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(confirmation.SendResponse{Success: true})
}
