package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockorder.GO/core/idempotency"
	"stockorder.GO/core/logger"
	orderEntity "stockorder.GO/model/entity/order"
	orderRepo "stockorder.GO/model/repository/order"
)

var (
	ErrInvalidOrder           = errors.New("invalid order")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInventoryUnavailable   = errors.New("inventory service unavailable")
	ErrStockQueryRejected     = errors.New("stock query rejected by inventory service")
	ErrOrderNotRecorded       = errors.New("order not recorded")
	ErrDuplicateRequest       = errors.New("duplicate request")
	ErrIdempotencyUnavailable = errors.New("idempotency store unavailable")
)

// StockChecker answers whether enough units of a SKU are available.
type StockChecker interface {
	IsInStock(ctx context.Context, skuCode string, quantity int) (bool, error)
}

// rejection is implemented by checker errors that can tell a refused query apart
// from an unreachable inventory.
type rejection interface {
	Rejected() bool
}

type OrderRequest struct {
	SkuCode  string
	Price    decimal.Decimal
	Quantity int
}

type Service struct {
	stock     StockChecker
	repo      *orderRepo.OrderRepository
	idem      idempotency.Store
	idemTTL   time.Duration
	newNumber func() string
}

type Option func(*Service)

// WithIdempotency enables duplicate detection for keyed submissions.
func WithIdempotency(store idempotency.Store, ttl time.Duration) Option {
	return func(s *Service) {
		s.idem = store
		s.idemTTL = ttl
	}
}

// WithOrderNumbers overrides the order number generator.
func WithOrderNumbers(gen func() string) Option {
	return func(s *Service) {
		s.newNumber = gen
	}
}

func NewService(stock StockChecker, db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		stock:     stock,
		repo:      orderRepo.NewOrderRepository(db),
		newNumber: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder checks stock and, only when it is confirmed, persists a new order.
func (s *Service) PlaceOrder(ctx context.Context, req OrderRequest) (*orderEntity.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	inStock, err := s.stock.IsInStock(ctx, req.SkuCode, req.Quantity)
	if err != nil {
		var rej rejection
		if errors.As(err, &rej) && rej.Rejected() {
			return nil, fmt.Errorf("%w: %w", ErrStockQueryRejected, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInventoryUnavailable, err)
	}
	if !inStock {
		return nil, fmt.Errorf("%w: product with skuCode %s is not in stock", ErrInsufficientStock, req.SkuCode)
	}

	o := &orderEntity.Order{
		OrderNumber: s.newNumber(),
		SkuCode:     req.SkuCode,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		// Stock was confirmed but nothing was written; surface it as is.
		logger.L().Error("order not recorded after stock confirmation",
			zap.String("sku_code", req.SkuCode),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrOrderNotRecorded, err)
	}

	logger.L().Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("sku_code", o.SkuCode),
		zap.Int("quantity", o.Quantity))
	return o, nil
}

// PlaceOrderOnce is PlaceOrder guarded by an idempotency key. An empty key, or a
// service built without WithIdempotency, skips the guard. The key is released when
// the submission fails so the caller may retry it.
func (s *Service) PlaceOrderOnce(ctx context.Context, key string, req OrderRequest) (*orderEntity.Order, error) {
	if key == "" || s.idem == nil {
		return s.PlaceOrder(ctx, req)
	}

	claimed, err := s.idem.Claim(ctx, key, s.idemTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIdempotencyUnavailable, err)
	}
	if !claimed {
		return nil, fmt.Errorf("%w: key %s", ErrDuplicateRequest, key)
	}

	o, err := s.PlaceOrder(ctx, req)
	if err != nil {
		if relErr := s.idem.Release(context.WithoutCancel(ctx), key); relErr != nil {
			logger.L().Warn("idempotency key release failed", zap.String("key", key), zap.Error(relErr))
		}
		return nil, err
	}
	return o, nil
}

// IsRetryable reports whether a PlaceOrder error may succeed when retried unchanged.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrInventoryUnavailable) || errors.Is(err, ErrIdempotencyUnavailable)
}

func validate(req OrderRequest) error {
	if strings.TrimSpace(req.SkuCode) == "" {
		return fmt.Errorf("%w: skuCode is required", ErrInvalidOrder)
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidOrder, req.Quantity)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative, got %s", ErrInvalidOrder, req.Price)
	}
	return nil
}
