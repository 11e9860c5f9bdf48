package order

import (
	"context"

	"gorm.io/gorm"

	orderEntity "stockorder.GO/model/entity/order"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts o and fills in its generated ID.
func (r *OrderRepository) Create(ctx context.Context, o *orderEntity.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*orderEntity.Order, error) {
	var o orderEntity.Order
	if err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&orderEntity.Order{}).Count(&n).Error
	return n, err
}
