package transport

import (
	"net/http"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/middleware"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest is the product creation payload.
type CreateProductRequest struct {
	Name       string  `json:"name" validate:"required"`
	CategoryID string  `json:"category_id" validate:"required"`
	Price      float64 `json:"price" validate:"gte=0"`
	Stock      int     `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest is the partial product update payload; absent fields
// keep their stored values.
type UpdateProductRequest struct {
	Name       *string  `json:"name,omitempty"`
	CategoryID *string  `json:"category_id,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Stock      *int     `json:"stock,omitempty"`
	Discount   *float64 `json:"discount,omitempty"`
}

// UpdatePriceRequest is the price replacement payload.
type UpdatePriceRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
}

// StartPromotionRequest is the promotion payload.
type StartPromotionRequest struct {
	DiscountPercentage float64 `json:"discount_percentage"`
}

// StockRequest is the payload for reserve and sell operations.
type StockRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

// CancelReservationRequest identifies the reservation to release.
type CancelReservationRequest struct {
	ReservationID string `json:"reservation_id" validate:"required"`
}

// ProductResponse is the product snapshot returned to callers, including the
// derived discounted price.
type ProductResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	CategoryID         string    `json:"category_id"`
	Price              float64   `json:"price"`
	Stock              int       `json:"stock"`
	Discount           float64   `json:"discount"`
	PriceAfterDiscount float64   `json:"price_after_discount"`
	CreatedAt          time.Time `json:"created_at"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		CategoryID:         p.CategoryID,
		Price:              float64(p.Price),
		Stock:              p.Stock,
		Discount:           float64(p.Discount),
		PriceAfterDiscount: p.PriceAfterDiscount(),
		CreatedAt:          p.CreatedAt,
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}
	return responses
}

// ProductHandler handles HTTP requests for product and stock operations.
type ProductHandler struct {
	productService     service.ProductService
	reservationService service.ReservationService
	saleService        service.SaleService
	logger             *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(
	productService service.ProductService,
	reservationService service.ReservationService,
	saleService service.SaleService,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		productService:     productService,
		reservationService: reservationService,
		saleService:        saleService,
		logger:             logger,
	}
}

// RegisterRoutes registers all product routes. Mutating routes are wrapped
// with guard.
func (h *ProductHandler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListAvailable)
		r.Get("/{productID}", h.GetByID)
		r.Get("/{productID}/reservations", h.ListReservations)
		r.Get("/{productID}/sales", h.ListSales)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Post("/", h.Create)
			r.Put("/{productID}", h.Update)
			r.Delete("/{productID}", h.Delete)
			r.Put("/{productID}/price", h.UpdatePrice)
			r.Post("/{productID}/promotion", h.StartPromotion)
			r.Post("/{productID}/reserve", h.Reserve)
			r.Post("/{productID}/sell", h.Sell)
			r.Post("/cancel-reservation", h.CancelReservation)
		})
	})
}

// Create handles product creation.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), service.CreateProductInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Stock:      req.Stock,
	})
	if err != nil {
		h.logger.Debug("Product creation failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(product))
}

// ListAvailable returns in-stock products, optionally filtered by category.
func (h *ProductHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category_id")

	products, err := h.productService.GetAvailableProducts(r.Context(), categoryID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products))
}

// GetByID returns a single product.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.GetProductByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Update applies a partial product update.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), service.UpdateProductInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Stock:      req.Stock,
		Discount:   req.Discount,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete removes a product.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdatePrice replaces a product's price.
func (h *ProductHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req UpdatePriceRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	product, err := h.productService.UpdatePrice(r.Context(), chi.URLParam(r, "productID"), req.Price)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// StartPromotion applies a discount to a product.
func (h *ProductHandler) StartPromotion(w http.ResponseWriter, r *http.Request) {
	var req StartPromotionRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	product, err := h.productService.StartPromotion(r.Context(), chi.URLParam(r, "productID"), req.DiscountPercentage)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Reserve places a hold against the product's stock.
func (h *ProductHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req StockRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	reservation, err := h.productService.ReserveProduct(r.Context(), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		h.logger.Debug("Reservation failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, reservation)
}

// Sell draws stock and records a sale.
func (h *ProductHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req StockRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	sale, err := h.productService.SellProduct(r.Context(), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		h.logger.Debug("Sale failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, sale)
}

// CancelReservation releases a reservation's stock back to its product.
func (h *ProductHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	var req CancelReservationRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	reservation, err := h.productService.CancelReservation(r.Context(), req.ReservationID)
	if err != nil {
		h.logger.Debug("Reservation cancellation failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reservation)
}

// ListReservations returns all reservations against a product.
func (h *ProductHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservationService.GetReservationsByProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reservations)
}

// ListSales returns all sales of a product.
func (h *ProductHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.saleService.GetSalesByProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sales)
}
