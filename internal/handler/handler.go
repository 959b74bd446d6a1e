package handler

import (
	"encoding/json"
	"net/http"

	"roastery/internal/i18n"
	"roastery/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeDomainError writes a domain error with its machine code and a
// localized message when one exists for the code.
func writeDomainError(w http.ResponseWriter, status int, derr *model.DomainError, loc i18n.Locale, logger zerolog.Logger) {
	logger.Warn().Str("code", derr.Code).Int("status", status).Msg("domain error")
	writeJSON(w, status, model.ErrorResponse{
		Error: localizedDomainMessage(loc, derr),
		Code:  derr.Code,
	})
}

// writeFieldErrors writes a validation failure with localized per-field messages.
func writeFieldErrors(w http.ResponseWriter, fieldErrs model.FieldErrors, loc i18n.Locale, logger zerolog.Logger) {
	logger.Debug().Int("field_count", len(fieldErrs)).Msg("validation failed")
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:  "validation failed",
		Code:   model.ErrCodeValidation,
		Fields: i18n.Localize(loc, fieldErrs),
	})
}

// domainMessageKeys maps domain error codes to translation keys.
var domainMessageKeys = map[string]string{
	model.ErrCodeProductNotFound:    "product_not_found",
	model.ErrCodeVariationNotFound:  "variation_not_found",
	model.ErrCodeEmptyCart:          "empty_cart",
	model.ErrCodeInvalidQuantity:    "invalid_quantity",
	model.ErrCodeInsufficientStock:  "insufficient_stock",
	model.ErrCodeOrderPersistFailed: "order_failed",
}

func localizedDomainMessage(loc i18n.Locale, derr *model.DomainError) string {
	if key, ok := domainMessageKeys[derr.Code]; ok {
		return i18n.T(loc, key)
	}
	return derr.Message
}

// requestLocale resolves the storefront language for a request from the
// lang query parameter, falling back to the Accept-Language header.
func requestLocale(r *http.Request) i18n.Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return i18n.Parse(lang)
	}
	return i18n.Parse(r.Header.Get("Accept-Language"))
}
