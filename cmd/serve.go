package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stockorder.GO/config"
	"stockorder.GO/core/logger"
	"stockorder.GO/core/migrate"
	"stockorder.GO/cron"
	"stockorder.GO/server"
	inventoryService "stockorder.GO/service/inventory"
)

var (
	servePort    string
	serveMigrate bool
)

// ServeInventory runs the inventory service and its low-stock report until ctx ends.
func ServeInventory(ctx context.Context, port string, runMigrations bool) error {
	cfg, db, err := bootstrap(migrate.Inventory)
	if err != nil {
		return err
	}
	if runMigrations {
		if err := migrate.Up(db, migrate.Inventory); err != nil {
			return err
		}
	}

	svc := inventoryService.NewService(db)
	if err := cron.Register(config.JobLowStockReport, config.CronSchedule(config.JobLowStockReport), svc.LowStockJob(cfg.LowStockThreshold)); err != nil {
		return err
	}
	sched, err := cron.StartCron()
	if err != nil {
		return err
	}
	defer sched.Stop()

	if port == "" {
		port = cfg.InventoryPort
	}
	return server.Run(ctx, server.NewInventoryServer(db), ":"+port)
}

// ServeOrder runs the order service until ctx ends.
func ServeOrder(ctx context.Context, port string, runMigrations bool) error {
	cfg, db, err := bootstrap(migrate.Order)
	if err != nil {
		return err
	}
	if runMigrations {
		if err := migrate.Up(db, migrate.Order); err != nil {
			return err
		}
	}

	svc, mem := server.NewOrderService(ctx, db, cfg)
	if mem != nil {
		err := cron.Register(config.JobIdempotencyPurge, config.CronSchedule(config.JobIdempotencyPurge), func(...string) {
			if n := mem.Purge(); n > 0 {
				logger.L().Debug("idempotency keys purged", zap.Int("count", n))
			}
		})
		if err != nil {
			return err
		}
	}
	sched, err := cron.StartCron()
	if err != nil {
		return err
	}
	defer sched.Stop()

	if port == "" {
		port = cfg.OrderPort
	}
	logger.L().Info("order service configured",
		zap.String("inventory_url", cfg.InventoryURL),
		zap.Duration("inventory_timeout", cfg.InventoryTimeout))
	return server.Run(ctx, server.NewOrderServer(db, svc), ":"+port)
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newServeCmd(use, short string, serve func(context.Context, string, bool) error) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(c *cobra.Command, args []string) error {
			ctx, stop := SignalContext(c.Context())
			defer stop()
			if err := serve(ctx, servePort, serveMigrate); err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}
			return nil
		},
	}
	c.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (defaults to INVENTORY_PORT / ORDER_PORT)")
	c.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving")
	return c
}

func init() {
	rootCmd.AddCommand(newServeCmd("serve:inventory", "Run the inventory service", ServeInventory))
	rootCmd.AddCommand(newServeCmd("serve:order", "Run the order service", ServeOrder))
}
