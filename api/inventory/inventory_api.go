package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockorder.GO/api"
	"stockorder.GO/core/logger"
	inventoryService "stockorder.GO/service/inventory"
)

func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	RegisterInventoryRoutesWithService(apiGroup, inventoryService.NewService(db))
}

// RegisterInventoryRoutesWithService mounts the routes on an existing service.
func RegisterInventoryRoutesWithService(apiGroup *echo.Group, svc *inventoryService.Service) {
	// GET /api/inventory?skuCode=..&quantity=.. – body is the bare JSON boolean
	apiGroup.GET("/inventory", func(c echo.Context) error {
		sku := c.QueryParam("skuCode")
		qtyParam := c.QueryParam("quantity")
		if sku == "" || qtyParam == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorBody("skuCode and quantity query parameters are required"))
		}
		qty, err := strconv.Atoi(qtyParam)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorBody("quantity must be an integer"))
		}

		inStock, err := svc.IsInStock(c.Request().Context(), sku, qty)
		if errors.Is(err, inventoryService.ErrInvalidQuery) {
			return c.JSON(http.StatusBadRequest, api.ErrorBody(err.Error()))
		}
		if err != nil {
			logger.L().Error("stock check failed", zap.String("sku_code", sku), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, api.ErrorBody("stock check failed"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(strconv.FormatBool(inStock)))
	})
}
