package inventory

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "stockorder.GO/model/entity/inventory"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ExistsWithQuantity reports whether a row for sku holds at least quantity units.
// A missing SKU and an insufficient quantity are both reported as false.
func (r *InventoryRepository) ExistsWithQuantity(ctx context.Context, sku string, quantity int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&inventoryEntity.InventoryItem{}).
		Where("sku_code = ? AND quantity >= ?", sku, quantity).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetBySKU returns the row for sku, gorm.ErrRecordNotFound when absent.
func (r *InventoryRepository) GetBySKU(ctx context.Context, sku string) (*inventoryEntity.InventoryItem, error) {
	var item inventoryEntity.InventoryItem
	if err := r.db.WithContext(ctx).Where("sku_code = ?", sku).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert sets the quantity of sku, creating the row if needed.
func (r *InventoryRepository) Upsert(ctx context.Context, sku string, quantity int) error {
	item := inventoryEntity.InventoryItem{SkuCode: sku, Quantity: quantity}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&item).Error
}

// FindBelow lists rows with quantity strictly below threshold, lowest first.
func (r *InventoryRepository) FindBelow(ctx context.Context, threshold int) ([]inventoryEntity.InventoryItem, error) {
	var items []inventoryEntity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity < ?", threshold).
		Order("quantity ASC, sku_code ASC").
		Find(&items).Error
	return items, err
}
