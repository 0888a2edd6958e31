package repository

import (
	"context"
	"sync"

	"stockroom/internal/domain"
)

// ReservationRepository defines the interface for reservation data access.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	FindAll(ctx context.Context) ([]*domain.Reservation, error)
	FindByProduct(ctx context.Context, productID string) ([]*domain.Reservation, error)
	FindActive(ctx context.Context) ([]*domain.Reservation, error)
}

type inMemoryReservationRepository struct {
	mu           sync.RWMutex
	reservations map[string]domain.Reservation
}

// NewInMemoryReservationRepository creates an empty in-memory reservation store.
func NewInMemoryReservationRepository() ReservationRepository {
	return &inMemoryReservationRepository{
		reservations: make(map[string]domain.Reservation),
	}
}

func (r *inMemoryReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reservations[reservation.ID] = *reservation
	stored := r.reservations[reservation.ID]
	return &stored, nil
}

func (r *inMemoryReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reservations[reservation.ID]; !exists {
		return nil, &domain.ReservationNotFoundError{ReservationID: reservation.ID}
	}
	r.reservations[reservation.ID] = *reservation
	stored := r.reservations[reservation.ID]
	return &stored, nil
}

func (r *inMemoryReservationRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reservations[id]; !exists {
		return &domain.ReservationNotFoundError{ReservationID: id}
	}
	delete(r.reservations, id)
	return nil
}

func (r *inMemoryReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, exists := r.reservations[id]
	if !exists {
		return nil, &domain.ReservationNotFoundError{ReservationID: id}
	}
	return &reservation, nil
}

func (r *inMemoryReservationRepository) FindAll(ctx context.Context) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservations := make([]*domain.Reservation, 0, len(r.reservations))
	for _, reservation := range r.reservations {
		res := reservation
		reservations = append(reservations, &res)
	}
	return reservations, nil
}

func (r *inMemoryReservationRepository) FindByProduct(ctx context.Context, productID string) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservations := []*domain.Reservation{}
	for _, reservation := range r.reservations {
		if reservation.ProductID == productID {
			res := reservation
			reservations = append(reservations, &res)
		}
	}
	return reservations, nil
}

// FindActive returns reservations still in the reserved state.
func (r *inMemoryReservationRepository) FindActive(ctx context.Context) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservations := []*domain.Reservation{}
	for _, reservation := range r.reservations {
		if reservation.Status == domain.ReservationStatusReserved {
			res := reservation
			reservations = append(reservations, &res)
		}
	}
	return reservations, nil
}
