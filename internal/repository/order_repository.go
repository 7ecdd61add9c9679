package repository

import (
	"context"

	"supply-service/internal/domain"
)

// OrderRepository is the storage port for order records. Find methods
// return (nil, nil) when no record matches; the service layer maps that
// to a not-found error. There is no deletion path.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
}
