package service

import (
	"context"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

// ReservationService defines the interface for reservation business logic.
//
// CreateReservation records the hold only; it does not touch product stock.
// The orchestrator (ProductService) decrements and validates stock before
// calling it, and treats the two steps as one logical transaction.
type ReservationService interface {
	CreateReservation(ctx context.Context, productID string, quantity domain.Quantity) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, reservationID string) (*domain.Reservation, error)
	GetReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)
	GetReservationsByProduct(ctx context.Context, productID string) ([]*domain.Reservation, error)
	GetActiveReservations(ctx context.Context) ([]*domain.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(reservationRepo repository.ReservationRepository) ReservationService {
	return &reservationService{reservationRepo: reservationRepo}
}

// CreateReservation constructs a reservation in the reserved state and
// persists it.
func (s *reservationService) CreateReservation(ctx context.Context, productID string, quantity domain.Quantity) (*domain.Reservation, error) {
	reservation := domain.NewReservation(productID, quantity)

	stored, err := s.reservationRepo.Create(ctx, reservation)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	return stored, nil
}

// CancelReservation transitions a reservation to cancelled. Only the
// reserved state can be cancelled; cancelling twice fails.
func (s *reservationService) CancelReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := reservation.Cancel(); err != nil {
		return nil, err
	}

	stored, err := s.reservationRepo.Update(ctx, reservation)
	if err != nil {
		return nil, fmt.Errorf("failed to persist cancelled reservation: %w", err)
	}
	return stored, nil
}

// GetReservationByID retrieves a reservation by id.
func (s *reservationService) GetReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	return s.reservationRepo.FindByID(ctx, reservationID)
}

// GetReservationsByProduct retrieves all reservations for a product.
func (s *reservationService) GetReservationsByProduct(ctx context.Context, productID string) ([]*domain.Reservation, error) {
	return s.reservationRepo.FindByProduct(ctx, productID)
}

// GetActiveReservations retrieves reservations still holding stock.
func (s *reservationService) GetActiveReservations(ctx context.Context) ([]*domain.Reservation, error) {
	return s.reservationRepo.FindActive(ctx)
}
