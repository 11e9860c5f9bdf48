package order

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockorder.GO/api"
	"stockorder.GO/core/logger"
	orderService "stockorder.GO/service/order"
)

const (
	// OrderPlacedMessage is the exact body of a successful submission.
	OrderPlacedMessage = "Order placed successfully"

	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderOrderNumber    = "X-Order-Number"
)

// OrderRequest is the POST /api/order body. Pointers tell missing fields from zero values.
type OrderRequest struct {
	SkuCode  string           `json:"skuCode"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
}

func RegisterOrderRoutes(apiGroup *echo.Group, svc *orderService.Service) {
	// POST /api/order – check stock, then persist the order
	apiGroup.POST("/order", func(c echo.Context) error {
		var body OrderRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorBody("invalid request body"))
		}
		if body.SkuCode == "" || body.Price == nil || body.Quantity == nil {
			return c.JSON(http.StatusBadRequest, api.ErrorBody("skuCode, price and quantity are required"))
		}

		req := orderService.OrderRequest{
			SkuCode:  body.SkuCode,
			Price:    *body.Price,
			Quantity: *body.Quantity,
		}
		o, err := svc.PlaceOrderOnce(c.Request().Context(), c.Request().Header.Get(HeaderIdempotencyKey), req)
		if err != nil {
			return writeOrderError(c, req, err)
		}

		c.Response().Header().Set(HeaderOrderNumber, o.OrderNumber)
		return c.String(http.StatusCreated, OrderPlacedMessage)
	})
}

func writeOrderError(c echo.Context, req orderService.OrderRequest, err error) error {
	switch {
	case errors.Is(err, orderService.ErrInvalidOrder):
		return c.JSON(http.StatusBadRequest, api.ErrorBody(err.Error()))
	case errors.Is(err, orderService.ErrInsufficientStock):
		return c.JSON(http.StatusConflict, api.ErrorBody(fmt.Sprintf("Product with skuCode %s is not in stock", req.SkuCode)))
	case errors.Is(err, orderService.ErrDuplicateRequest):
		return c.JSON(http.StatusConflict, api.ErrorBody("duplicate request"))
	case errors.Is(err, orderService.ErrIdempotencyUnavailable):
		logger.L().Warn("idempotency store unavailable", zap.Error(err))
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, api.ErrorBody("idempotency store unavailable, retry later"))
	case orderService.IsRetryable(err):
		logger.L().Warn("order submission unavailable", zap.String("sku_code", req.SkuCode), zap.Error(err))
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, api.ErrorBody("inventory check unavailable, retry later"))
	case errors.Is(err, orderService.ErrStockQueryRejected):
		logger.L().Error("inventory rejected stock query", zap.String("sku_code", req.SkuCode), zap.Error(err))
		return c.JSON(http.StatusBadGateway, api.ErrorBody("inventory service rejected the stock check"))
	case errors.Is(err, orderService.ErrOrderNotRecorded):
		return c.JSON(http.StatusInternalServerError, api.ErrorBody("stock confirmed but the order could not be recorded"))
	default:
		logger.L().Error("order submission failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, api.ErrorBody("internal error"))
	}
}
