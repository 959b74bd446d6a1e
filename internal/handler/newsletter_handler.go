package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"roastery/internal/checkout"
	"roastery/internal/repository"

	"github.com/rs/zerolog"
)

// NewsletterHandler handles newsletter subscription requests.
type NewsletterHandler struct {
	customers repository.CustomerRepository
	logger    zerolog.Logger
}

// NewNewsletterHandler creates a new newsletter handler.
func NewNewsletterHandler(customers repository.CustomerRepository, logger zerolog.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		customers: customers,
		logger:    logger.With().Str("handler", "newsletter").Logger(),
	}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type subscribeResponse struct {
	Subscribed bool `json:"subscribed"`
	Created    bool `json:"created"`
}

// Subscribe handles POST /api/newsletter requests. Subscribing an
// already-subscribed address succeeds without creating a duplicate.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !checkout.ValidEmail(email) {
		writeError(w, http.StatusBadRequest, "a valid email address is required", h.logger)
		return
	}

	created, err := h.customers.Subscribe(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to subscribe", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, subscribeResponse{Subscribed: true, Created: created})
}
