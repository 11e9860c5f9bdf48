package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockorder.GO/core/logger"
	inventoryEntity "stockorder.GO/model/entity/inventory"
	inventoryRepo "stockorder.GO/model/repository/inventory"
)

// ErrInvalidQuery is returned for an empty SKU code or a negative quantity.
var ErrInvalidQuery = errors.New("invalid stock query")

// Service answers stock checks against the inventory store.
// It also satisfies the order service's StockChecker for in-process use.
type Service struct {
	repo *inventoryRepo.InventoryRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{repo: inventoryRepo.NewInventoryRepository(db)}
}

// IsInStock reports whether at least quantity units of skuCode are on hand.
// An unknown SKU is reported as not in stock.
func (s *Service) IsInStock(ctx context.Context, skuCode string, quantity int) (bool, error) {
	if err := validate(skuCode, quantity); err != nil {
		return false, err
	}
	ok, err := s.repo.ExistsWithQuantity(ctx, skuCode, quantity)
	if err != nil {
		return false, fmt.Errorf("stock check for %s: %w", skuCode, err)
	}
	return ok, nil
}

// SetQuantity creates or overwrites the on-hand quantity of skuCode.
func (s *Service) SetQuantity(ctx context.Context, skuCode string, quantity int) error {
	if err := validate(skuCode, quantity); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, skuCode, quantity); err != nil {
		return fmt.Errorf("set quantity for %s: %w", skuCode, err)
	}
	return nil
}

// LowStock lists SKUs whose quantity is below threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]inventoryEntity.InventoryItem, error) {
	return s.repo.FindBelow(ctx, threshold)
}

// LowStockJob returns a cron job that logs every SKU below threshold.
func (s *Service) LowStockJob(threshold int) func(...string) {
	return func(...string) {
		items, err := s.LowStock(context.Background(), threshold)
		if err != nil {
			logger.L().Error("low stock report failed", zap.Error(err))
			return
		}
		for _, it := range items {
			logger.L().Warn("low stock",
				zap.String("sku_code", it.SkuCode),
				zap.Int("quantity", it.Quantity),
				zap.Int("threshold", threshold))
		}
		logger.L().Info("low stock report done", zap.Int("count", len(items)))
	}
}

func validate(skuCode string, quantity int) error {
	if strings.TrimSpace(skuCode) == "" {
		return fmt.Errorf("%w: skuCode is required", ErrInvalidQuery)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative, got %d", ErrInvalidQuery, quantity)
	}
	return nil
}
