package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/session"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

const sessionCookieName = "lead_session"

type LeadHandler struct {
	submitUC    *usecase.SubmitLeadUseCase
	sessions    *session.Manager
	rateLimiter *RateLimiter
}

func NewLeadHandler(submitUC *usecase.SubmitLeadUseCase, sessions *session.Manager) *LeadHandler {
	return &LeadHandler{
		submitUC:    submitUC,
		sessions:    sessions,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type SubmitLeadResponse struct {
	Success      bool        `json:"success"`
	Lead         entity.Lead `json:"lead"`
	EmailSent    bool        `json:"email_sent"`
	SessionCount int         `json:"session_count"`
}

// HandleSubmit runs one submission attempt for the caller's session.
func (h *LeadHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	store := h.sessionStore(w, r)

	output, err := h.submitUC.Execute(r.Context(), store, input)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	middleware.RecordLeadCaptured(output.Lead.Industry)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SubmitLeadResponse{
		Success:      true,
		Lead:         output.Lead,
		EmailSent:    output.EmailSent,
		SessionCount: output.SessionCount,
	})
}

// HandleState returns the session snapshot the form renders from: either the
// entry form (submitted=false) or the success view with the running count.
func (h *LeadHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	store := h.sessionStore(w, r)
	state := store.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"submitted":     state.Submitted,
		"loading":       state.Loading,
		"error":         state.Error,
		"leads":         state.Leads,
		"session_count": len(state.Leads),
	})
}

// HandleReset is the "submit another" action: back to the entry form, leads
// and count kept.
func (h *LeadHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	store := h.sessionStore(w, r)
	store.Reset()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"submitted":     false,
		"session_count": store.LeadCount(),
	})
}

// HandleIndustries exposes the fixed set the selection control offers.
func (h *LeadHandler) HandleIndustries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"industries": entity.Industries,
	})
}

func (h *LeadHandler) writeSubmitError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch e := err.(type) {
	case *usecase.DomainError:
		switch e.Code {
		case usecase.CodeValidation:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   e.Code,
				"message": e.Message,
				"fields":  e.Fields,
			})
		case usecase.CodeDuplicateLead:
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   e.Code,
				"message": e.Message,
			})
		default:
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   e.Code,
				"message": e.Message,
			})
		}
	case *usecase.TechnicalError:
		middleware.RecordIntegrationError("database")
		status := http.StatusInternalServerError
		if e.Code == usecase.CodePersistenceTimeout {
			status = http.StatusGatewayTimeout
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   e.Code,
			"message": "Failed to save your information. Please try again.",
		})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "Something went wrong. Please try again.",
		})
	}
}

// sessionStore resolves the caller's session from the cookie, creating a new
// session (and setting the cookie) when missing or expired.
func (h *LeadHandler) sessionStore(w http.ResponseWriter, r *http.Request) *session.Store {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if store, ok := h.sessions.Get(cookie.Value); ok {
			return store
		}
	}

	id, store := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
