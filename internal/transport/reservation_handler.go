package transport

import (
	"net/http"

	"stockroom/internal/middleware"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateReservationRequest is the reservation creation payload.
type CreateReservationRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// ReservationHandler handles HTTP requests for reservations. Creation and
// cancellation go through the product service so stock moves with the
// reservation.
type ReservationHandler struct {
	productService     service.ProductService
	reservationService service.ReservationService
	logger             *zap.Logger
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(
	productService service.ProductService,
	reservationService service.ReservationService,
	logger *zap.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		productService:     productService,
		reservationService: reservationService,
		logger:             logger,
	}
}

// RegisterRoutes registers all reservation routes. Mutating routes are
// wrapped with guard.
func (h *ReservationHandler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/api/reservations", func(r chi.Router) {
		r.Get("/", h.ListActive)
		r.Get("/{reservationID}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Post("/", h.Create)
			r.Delete("/{reservationID}", h.Cancel)
		})
	})
}

// Create reserves stock for a product.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if !decodeOrRespond(w, r, &req) {
		return
	}

	reservation, err := h.productService.ReserveProduct(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.logger.Debug("Reservation failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, reservation)
}

// ListActive returns all reservations still holding stock.
func (h *ReservationHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservationService.GetActiveReservations(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reservations)
}

// GetByID returns a single reservation.
func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.reservationService.GetReservationByID(r.Context(), chi.URLParam(r, "reservationID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reservation)
}

// Cancel releases a reservation's stock back to the product.
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.productService.CancelReservation(r.Context(), chi.URLParam(r, "reservationID"))
	if err != nil {
		h.logger.Debug("Reservation cancellation failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reservation)
}
