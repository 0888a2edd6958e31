package transport

import (
	"net/http"
	"time"

	"stockroom/internal/middleware"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateSaleRequest is the sale creation payload.
type CreateSaleRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// SaleHandler handles HTTP requests for sales and sales reports. Creation
// goes through the product service so stock is drawn atomically.
type SaleHandler struct {
	productService service.ProductService
	saleService    service.SaleService
	logger         *zap.Logger
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(productService service.ProductService, saleService service.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		productService: productService,
		saleService:    saleService,
		logger:         logger,
	}
}

// RegisterRoutes registers all sale routes. Mutating routes are wrapped with
// guard.
func (h *SaleHandler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/api/sales", func(r chi.Router) {
		r.Get("/", h.Report)
		r.Get("/{saleID}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Post("/", h.Create)
		})
	})
}

// Create records a sale, drawing the sold quantity from stock.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	sale, err := h.productService.SellProduct(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.logger.Debug("Sale failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, sale)
}

// Report returns sales filtered by an optional inclusive date window and an
// optional category. Dates are RFC 3339.
func (h *SaleHandler) Report(w http.ResponseWriter, r *http.Request) {
	start, ok := parseTimeParam(w, r, "start_date")
	if !ok {
		return
	}
	end, ok := parseTimeParam(w, r, "end_date")
	if !ok {
		return
	}

	sales, err := h.saleService.GetSalesReport(r.Context(), start, end, r.URL.Query().Get("category_id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sales)
}

// GetByID returns a single sale.
func (h *SaleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	sale, err := h.saleService.GetSaleByID(r.Context(), chi.URLParam(r, "saleID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sale)
}

func parseTimeParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, name+" must be an RFC 3339 timestamp")
		return nil, false
	}
	return &t, true
}
