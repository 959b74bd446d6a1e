package handler

import (
	"encoding/json"
	"net/http"

	"roastery/internal/model"
	"roastery/internal/shipping"

	"github.com/rs/zerolog"
)

// ShippingHandler handles shipping quote requests.
type ShippingHandler struct {
	calculator *shipping.Calculator
	logger     zerolog.Logger
}

// NewShippingHandler creates a new shipping handler.
func NewShippingHandler(calculator *shipping.Calculator, logger zerolog.Logger) *ShippingHandler {
	return &ShippingHandler{
		calculator: calculator,
		logger:     logger.With().Str("handler", "shipping").Logger(),
	}
}

// Quote handles POST /api/shipping/quote requests. A quote is always
// returned; when the rule source is unreachable the fallback flat-rate
// policy applies and the response is flagged accordingly.
func (h *ShippingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req model.ShippingQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.OrderTotal.IsNegative() {
		writeError(w, http.StatusBadRequest, "order total must not be negative", h.logger)
		return
	}

	quote := h.calculator.Quote(r.Context(), req)
	writeJSON(w, http.StatusOK, quote)
}
