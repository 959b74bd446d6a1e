package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"roastery/internal/model"
	"roastery/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// orderResponse bundles an order with its items.
type orderResponse struct {
	Order *model.Order      `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, items, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}

	if order == nil {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{Order: order, Items: items})
}

// statusUpdateRequest is the admin status-change payload.
type statusUpdateRequest struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		var derr *model.DomainError
		if errors.As(err, &derr) {
			switch derr.Code {
			case model.ErrCodeInvalidStatus:
				writeError(w, http.StatusBadRequest, derr.Message, h.logger)
			case model.ErrCodeStatusTerminal:
				writeError(w, http.StatusConflict, derr.Message, h.logger)
			case model.ErrCodeOrderNotFound:
				writeError(w, http.StatusNotFound, derr.Message, h.logger)
			default:
				writeError(w, http.StatusInternalServerError, "failed to update order", h.logger)
			}
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
