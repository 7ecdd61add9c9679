package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"supply-service/internal/domain"
	"supply-service/internal/events"
	"supply-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_PlaceOrder(t *testing.T) {
	tests := []struct {
		name          string
		itemName      string
		quantity      int
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name:     "successful creation publishes ORDER_PLACED",
			itemName: "Gear X",
			quantity: 3,
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
					order := args.Get(1).(*domain.Order)
					order.ID = 7
					order.CreatedAt = time.Now()
					order.UpdatedAt = order.CreatedAt
				})
				mockPub.On("Publish", mock.Anything, "orders-topic", "ORDER_PLACED id=7 item='Gear X' qty=3").Return()
			},
		},
		{
			name:          "blank item name rejected before store",
			itemName:      "",
			quantity:      3,
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedError: "item name must not be blank",
		},
		{
			name:          "whitespace item name rejected before store",
			itemName:      "   ",
			quantity:      3,
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedError: "item name must not be blank",
		},
		{
			name:          "non-positive quantity rejected before store",
			itemName:      "Gear X",
			quantity:      0,
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedError: "quantity must be at least 1",
		},
		{
			name:     "store failure surfaces and nothing is published",
			itemName: "Gear X",
			quantity: 3,
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(errors.New("database error"))
			},
			expectedError: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			mockPublisher := new(mocks.MockPublisher)
			tt.setupMocks(mockRepo, mockPublisher)

			service := NewOrderService(mockRepo, mockPublisher)
			result, err := service.PlaceOrder(context.Background(), tt.itemName, tt.quantity)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, uint64(7), result.ID)
				assert.Equal(t, tt.itemName, result.ItemName)
				assert.Equal(t, tt.quantity, result.Quantity)
				assert.Equal(t, domain.StatusPending, result.Status)
			}

			mockRepo.AssertExpectations(t)
			mockPublisher.AssertExpectations(t)
		})
	}
}

func TestOrderService_PlaceOrder_PublishFailureDoesNotAffectResult(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Order).ID = 7
	})

	bus := new(mocks.MockBus)
	bus.On("Publish", mock.Anything, "orders-topic", mock.Anything).Return(errors.New("bus unavailable"))

	publisher := events.NewPublisher(bus, events.WithDelay(time.Millisecond))
	service := NewOrderService(mockRepo, publisher)

	result, err := service.PlaceOrder(context.Background(), "Gear X", 3)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.StatusPending, result.Status)
	bus.AssertNumberOfCalls(t, "Publish", 3)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_ValidationErrorKind(t *testing.T) {
	service := NewOrderService(new(mocks.MockOrderRepository), new(mocks.MockPublisher))

	_, err := service.PlaceOrder(context.Background(), "", 3)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		orderID       uint64
		newStatus     string
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		expectedError string
		expectedKind  any
	}{
		{
			name:      "case-insensitive member is normalized and published",
			orderID:   1,
			newStatus: "shipped",
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				updated := &domain.Order{ID: 1, ItemName: "Gear X", Quantity: 3, Status: domain.StatusShipped}
				mockRepo.On("UpdateStatus", mock.Anything, uint64(1), domain.StatusShipped).Return(updated, nil)
				mockPub.On("Publish", mock.Anything, "orders-topic", "ORDER_STATUS_UPDATE id=1 status=SHIPPED").Return()
			},
		},
		{
			name:          "non-member status never reaches the store",
			orderID:       1,
			newStatus:     "FLYING",
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedError: "FLYING",
			expectedKind:  &domain.InvalidStatusError{},
		},
		{
			name:      "unknown id maps to not found",
			orderID:   99,
			newStatus: "PROCESSING",
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("UpdateStatus", mock.Anything, uint64(99), domain.StatusProcessing).Return(nil, nil)
			},
			expectedError: "99",
			expectedKind:  &domain.NotFoundError{},
		},
		{
			name:      "store failure surfaces and nothing is published",
			orderID:   1,
			newStatus: "PROCESSING",
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("UpdateStatus", mock.Anything, uint64(1), domain.StatusProcessing).Return(nil, errors.New("database error"))
			},
			expectedError: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			mockPublisher := new(mocks.MockPublisher)
			tt.setupMocks(mockRepo, mockPublisher)

			service := NewOrderService(mockRepo, mockPublisher)
			result, err := service.UpdateStatus(context.Background(), tt.orderID, tt.newStatus)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
				switch kind := tt.expectedKind.(type) {
				case *domain.InvalidStatusError:
					assert.ErrorAs(t, err, &kind)
				case *domain.NotFoundError:
					assert.ErrorAs(t, err, &kind)
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, domain.StatusShipped, result.Status)
			}

			mockRepo.AssertExpectations(t)
			mockPublisher.AssertExpectations(t)
		})
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Run("no filter delegates to FindAll", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		orders := []domain.Order{
			{ID: 1, ItemName: "A", Quantity: 1, Status: domain.StatusPending},
			{ID: 2, ItemName: "B", Quantity: 2, Status: domain.StatusShipped},
		}
		mockRepo.On("FindAll", mock.Anything).Return(orders, nil)

		service := NewOrderService(mockRepo, new(mocks.MockPublisher))
		result, err := service.ListOrders(context.Background(), "")

		require.NoError(t, err)
		assert.Len(t, result, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("filter is uppercased before delegation", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		pending := []domain.Order{
			{ID: 1, ItemName: "A", Quantity: 1, Status: domain.StatusPending},
			{ID: 3, ItemName: "C", Quantity: 1, Status: domain.StatusPending},
		}
		mockRepo.On("FindByStatus", mock.Anything, domain.StatusPending).Return(pending, nil)

		service := NewOrderService(mockRepo, new(mocks.MockPublisher))
		result, err := service.ListOrders(context.Background(), "pending")

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, uint64(1), result[0].ID)
		assert.Equal(t, uint64(3), result[1].ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		order := &domain.Order{ID: 1, ItemName: "Gear X", Quantity: 3, Status: domain.StatusPending}
		mockRepo.On("FindByID", mock.Anything, uint64(1)).Return(order, nil)

		service := NewOrderService(mockRepo, new(mocks.MockPublisher))
		result, err := service.GetOrder(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, order, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found embeds the id", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		mockRepo.On("FindByID", mock.Anything, uint64(99)).Return(nil, nil)

		service := NewOrderService(mockRepo, new(mocks.MockPublisher))
		result, err := service.GetOrder(context.Background(), 99)

		require.Error(t, err)
		var notFoundErr *domain.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Contains(t, err.Error(), "99")
		assert.Nil(t, result)
		mockRepo.AssertExpectations(t)
	})
}
