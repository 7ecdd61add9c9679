package services

import (
	"context"
	"strings"

	"supply-service/internal/domain"
	"supply-service/internal/events"
	"supply-service/internal/repository"

	"github.com/rs/zerolog/log"
)

// OrderService orchestrates the order lifecycle: it validates input,
// mutates the store, and publishes lifecycle events. Event publication is
// best-effort and synchronous — the caller gets the store's result
// regardless of publish outcome, and synchronous calls keep the creation
// event of an id ahead of any of its status updates.
type OrderService struct {
	repo      repository.OrderRepository
	publisher events.PublisherInterface
}

func NewOrderService(r repository.OrderRepository, pub events.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		publisher: pub,
	}
}

// PlaceOrder validates the request, persists a new PENDING order, and
// publishes the creation event. Validation runs here even though the HTTP
// binding already checks the same rules.
func (s *OrderService) PlaceOrder(ctx context.Context, itemName string, quantity int) (*domain.Order, error) {
	if strings.TrimSpace(itemName) == "" {
		return nil, &domain.ValidationError{Message: "item name must not be blank"}
	}
	if quantity < 1 {
		return nil, &domain.ValidationError{Message: "quantity must be at least 1"}
	}

	order := &domain.Order{
		ItemName: itemName,
		Quantity: quantity,
		Status:   domain.StatusPending,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Info().Uint64("id", order.ID).Str("item", itemName).Int("quantity", quantity).Msg("order placed")
	s.publisher.Publish(ctx, domain.OrdersTopic, domain.OrderPlacedMessage(order))

	return order, nil
}

// UpdateStatus normalizes the candidate status, applies it under a row
// lock, and publishes the status-change event.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint64, newStatus string) (*domain.Order, error) {
	status, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &domain.NotFoundError{ID: id}
	}

	log.Info().Uint64("id", id).Str("status", string(status)).Msg("order status changed")
	s.publisher.Publish(ctx, domain.OrdersTopic, domain.OrderStatusUpdateMessage(order))

	return order, nil
}

// ListOrders returns all orders, or only those matching the uppercased
// status filter when one is supplied. An unknown filter value simply
// matches nothing.
func (s *OrderService) ListOrders(ctx context.Context, statusFilter string) ([]domain.Order, error) {
	if statusFilter == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindByStatus(ctx, domain.OrderStatus(strings.ToUpper(statusFilter)))
}

func (s *OrderService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &domain.NotFoundError{ID: id}
	}
	return order, nil
}
