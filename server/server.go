// Package server assembles the echo instances of the inventory and order services.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"stockorder.GO/api"
	graphqlApi "stockorder.GO/api/graphql"
	_ "stockorder.GO/api/health"
	inventoryApi "stockorder.GO/api/inventory"
	orderApi "stockorder.GO/api/order"
	inventoryClient "stockorder.GO/client/inventory"
	"stockorder.GO/config"
	"stockorder.GO/core/cache"
	"stockorder.GO/core/idempotency"
	"stockorder.GO/core/logger"
	orderService "stockorder.GO/service/order"
)

const shutdownTimeout = 10 * time.Second

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.L().Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			c.Response().Before(func() {
				duration := time.Since(start).Milliseconds()
				c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			})
			return next(c)
		}
	})
	return e
}

// NewInventoryServer serves GET /api/inventory, /graphql and the shared root routes.
func NewInventoryServer(db *gorm.DB) *echo.Echo {
	e := newEcho()
	api.ApplyRoutes(e, db)
	inventoryApi.RegisterInventoryRoutes(e.Group("/api"), db)
	graphqlApi.RegisterGraphQLRoutes(e, db)
	return e
}

// NewOrderServer serves POST /api/order and the shared root routes.
func NewOrderServer(db *gorm.DB, svc *orderService.Service) *echo.Echo {
	e := newEcho()
	api.ApplyRoutes(e, db)
	orderApi.RegisterOrderRoutes(e.Group("/api"), svc)
	return e
}

// NewOrderService wires the order service from configuration: an HTTP stock checker
// bounded by INVENTORY_TIMEOUT, and a Redis idempotency store when REDIS_ADDR is
// reachable. Otherwise keys live in process memory and the returned MemoryStore
// needs periodic purging.
func NewOrderService(ctx context.Context, db *gorm.DB, cfg *config.Config) (*orderService.Service, *idempotency.MemoryStore) {
	checker := inventoryClient.NewClient(cfg.InventoryURL, cfg.InventoryTimeout)

	var store idempotency.Store
	var mem *idempotency.MemoryStore
	if config.InitRedis(ctx) {
		logger.L().Info("idempotency keys stored in redis")
		store = idempotency.NewRedisStore(config.RedisClient)
	} else {
		logger.L().Info("redis not configured or not reachable, idempotency keys kept in memory")
		mem = idempotency.NewMemoryStore(cache.GetInstance())
		store = mem
	}
	return orderService.NewService(checker, db, orderService.WithIdempotency(store, cfg.IdempotencyTTL)), mem
}

// Run serves e on addr until ctx is cancelled, then shuts it down gracefully.
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.L().Info("server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
