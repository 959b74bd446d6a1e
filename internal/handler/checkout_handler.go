package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"roastery/internal/checkout"
	"roastery/internal/model"
	"roastery/internal/payment"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout submissions.
type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	logger       zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(orchestrator *checkout.Orchestrator, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		logger:       logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout handles POST /api/checkout requests.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.orchestrator.Checkout(r.Context(), &req)
	if err != nil {
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			writeFieldErrors(w, fieldErrs, loc, h.logger)
			return
		}

		// The customer stays on the payment step and may retry manually;
		// the gateway's message is surfaced verbatim.
		var payErr *payment.Error
		if errors.As(err, &payErr) {
			h.logger.Warn().Str("gateway_message", payErr.Message).Msg("payment declined")
			writeJSON(w, http.StatusPaymentRequired, model.ErrorResponse{
				Error: payErr.Message,
				Code:  model.ErrCodePaymentFailed,
			})
			return
		}

		var derr *model.DomainError
		if errors.As(err, &derr) {
			writeDomainError(w, statusForCheckoutError(derr), derr, loc, h.logger)
			return
		}

		writeError(w, http.StatusInternalServerError, "checkout failed", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func statusForCheckoutError(derr *model.DomainError) int {
	switch derr.Code {
	case model.ErrCodeEmptyCart, model.ErrCodeInvalidQuantity, model.ErrCodeTotalMismatch:
		return http.StatusBadRequest
	case model.ErrCodeProductNotFound, model.ErrCodeVariationNotFound:
		return http.StatusNotFound
	case model.ErrCodeInsufficientStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
