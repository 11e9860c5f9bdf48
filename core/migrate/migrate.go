// Package migrate brings a service database up to the current schema.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"stockorder.GO/config"
	"stockorder.GO/migrations"
	inventoryEntity "stockorder.GO/model/entity/inventory"
	orderEntity "stockorder.GO/model/entity/order"
)

const (
	Inventory = "inventory"
	Order     = "order"
)

var models = map[string][]interface{}{
	Inventory: {&inventoryEntity.InventoryItem{}},
	Order:     {&orderEntity.Order{}},
}

// Up applies the migrations of component. MySQL databases run the embedded SQL
// migrations (seed rows included); any other dialect gets gorm AutoMigrate.
func Up(db *gorm.DB, component string) error {
	ms, ok := models[component]
	if !ok {
		return fmt.Errorf("migrate: unknown component %q", component)
	}
	if db.Dialector.Name() != "mysql" {
		return db.AutoMigrate(ms...)
	}
	return upSQL(component, config.MySQLDSN(component))
}

func upSQL(component, dsn string) error {
	src, err := iofs.New(migrations.FS, component)
	if err != nil {
		return fmt.Errorf("migrate: source %s: %w", component, err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+dsn)
	if err != nil {
		return fmt.Errorf("migrate: %s: %w", component, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up %s: %w", component, err)
	}
	return nil
}
