package mysql

import (
	"context"
	"errors"

	"supply-service/internal/domain"
	"supply-service/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// Create persists a new order. The database assigns the id; new orders
// always start in PENDING regardless of what the caller set.
func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	order.Status = domain.StatusPending

	result := r.db.WithContext(ctx).Create(order)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("order create failed")
		return result.Error
	}

	if order.ID == 0 {
		log.Error().Int64("rows", result.RowsAffected).Msg("order saved but id not assigned")
		return errors.New("failed to assign order id")
	}

	log.Debug().Uint64("id", order.ID).Msg("order persisted")
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error().Err(err).Uint64("id", id).Msg("order lookup failed")
		return nil, err
	}
	return &o, nil
}

// UpdateStatus sets the status of one order and bumps its updatedAt.
// The read and write run in a single transaction with a row lock, so
// concurrent updates of the same id serialize instead of losing writes;
// distinct ids proceed in parallel.
func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, id).Error; err != nil {
			return err
		}
		o.Status = status
		return tx.Save(&o).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error().Err(err).Uint64("id", id).Msg("status update failed")
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Error().Err(err).Msg("order listing failed")
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Error().Err(err).Str("status", string(status)).Msg("order listing by status failed")
		return nil, err
	}
	return out, nil
}
