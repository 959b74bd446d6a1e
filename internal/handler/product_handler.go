package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"roastery/internal/i18n"
	"roastery/internal/model"
	"roastery/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// productView augments a product with its locale-resolved display name.
type productView struct {
	model.Product
	DisplayName string `json:"displayName"`
}

func viewOf(p model.Product, loc i18n.Locale) productView {
	return productView{
		Product:     p,
		DisplayName: i18n.ContentByLang(p.Name, p.NameAr, loc),
	}
}

// GetAll handles GET /api/products requests with pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset parameter", h.logger)
			return
		}
	}

	products, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOf(p, loc))
	}

	writeJSON(w, http.StatusOK, views)
}

// GetBySlugOrID handles GET /api/products/{slug} requests. The parameter
// may be a slug, a raw product id, or a partial name.
func (h *ProductHandler) GetBySlugOrID(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)

	slugOrID := chi.URLParam(r, "slug")
	if slugOrID == "" {
		writeError(w, http.StatusBadRequest, "product slug is required", h.logger)
		return
	}

	product, err := h.service.GetBySlugOrID(r.Context(), slugOrID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve product", h.logger)
		return
	}

	if product == nil {
		writeDomainError(w, http.StatusNotFound, model.ErrProductNotFound, loc, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, viewOf(*product, loc))
}

// GetVariations handles GET /api/products/{slug}/variations requests.
func (h *ProductHandler) GetVariations(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)

	product, err := h.service.GetBySlugOrID(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve product", h.logger)
		return
	}
	if product == nil {
		writeDomainError(w, http.StatusNotFound, model.ErrProductNotFound, loc, h.logger)
		return
	}

	variations, err := h.service.GetVariations(r.Context(), product.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve variations", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, variations)
}

// ResolveVariation handles POST /api/products/{slug}/variations/resolve.
// The body carries the requested dimension combination; a 404 means no
// active variation matches and add-to-cart must be blocked.
func (h *ProductHandler) ResolveVariation(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)

	var sel model.VariationSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.GetBySlugOrID(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve product", h.logger)
		return
	}
	if product == nil {
		writeDomainError(w, http.StatusNotFound, model.ErrProductNotFound, loc, h.logger)
		return
	}

	variation, err := h.service.ResolveVariation(r.Context(), product.ID, sel)
	if err != nil {
		if err == model.ErrVariationNotFound {
			writeDomainError(w, http.StatusNotFound, model.ErrVariationNotFound, loc, h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to resolve variation", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, variation)
}

// GetCategories handles GET /api/categories requests.
func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve categories", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
