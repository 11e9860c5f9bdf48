//go:build integration

package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"gorm.io/gorm"

	inventoryClient "stockorder.GO/client/inventory"
	"stockorder.GO/config"
	"stockorder.GO/core/migrate"
	orderEntity "stockorder.GO/model/entity/order"
	orderService "stockorder.GO/service/order"
)

// mysqlDB starts a throwaway MySQL container for component and returns the
// migrated database.
func mysqlDB(t *testing.T, component string) *gorm.DB {
	t.Helper()
	db := emptyMySQL(t, component)
	if err := migrate.Up(db, component); err != nil {
		t.Fatalf("migrate %s: %v", component, err)
	}
	return db
}

// emptyMySQL starts a throwaway MySQL container for component and points the
// component's DSN env var at it. The container is removed when the test ends.
func emptyMySQL(t *testing.T, component string) *gorm.DB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	c, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("test_"+component+"_db"),
		tcmysql.WithUsername("testuser"),
		tcmysql.WithPassword("testpassword"),
	)
	if err != nil {
		t.Fatalf("start mysql for %s: %v", component, err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			t.Logf("terminate mysql: %v", err)
		}
	})

	dsn, err := c.ConnectionString(ctx, "parseTime=true", "charset=utf8mb4", "loc=Local")
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("GORM_LOG", "off")
	t.Setenv(strings.ToUpper(component)+"_MYSQL_DSN", dsn)

	db, err := config.NewDB(component)
	if err != nil {
		t.Fatalf("open %s db: %v", component, err)
	}
	return db
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestMySQL_InventoryAndOrders(t *testing.T) {
	invDB := mysqlDB(t, migrate.Inventory)
	ordDB := mysqlDB(t, migrate.Order)

	if err := invDB.Exec("INSERT INTO t_inventory (sku_code, quantity) VALUES (?, ?)", "sample_sku", 20).Error; err != nil {
		t.Fatalf("seed sample_sku: %v", err)
	}
	if err := invDB.Exec("INSERT INTO t_inventory (sku_code, quantity) VALUES (?, ?)", "sample_sku", 5).Error; err == nil {
		t.Error("duplicate sku_code accepted, want unique constraint violation")
	}

	inv := httptest.NewServer(NewInventoryServer(invDB))
	defer inv.Close()

	if code, body := get(t, inv.URL+"/api/inventory?skuCode=sample_sku&quantity=10"); code != 200 || body != "true" {
		t.Errorf("quantity=10: %d %q, want 200 true", code, body)
	}
	if code, body := get(t, inv.URL+"/api/inventory?skuCode=sample_sku&quantity=30"); code != 200 || body != "false" {
		t.Errorf("quantity=30: %d %q, want 200 false", code, body)
	}
	// seeded by the inventory migrations
	if code, body := get(t, inv.URL+"/api/inventory?skuCode=samsung_tv_2024&quantity=10"); code != 200 || body != "true" {
		t.Errorf("seeded sku: %d %q, want 200 true", code, body)
	}

	svc := orderService.NewService(inventoryClient.NewClient(inv.URL, 2*time.Second), ordDB)
	ord := httptest.NewServer(NewOrderServer(ordDB, svc))
	defer ord.Close()

	resp, err := http.Post(ord.URL+"/api/order", "application/json",
		strings.NewReader(`{"skuCode":"samsung_tv_2024","price":5000,"quantity":10}`))
	if err != nil {
		t.Fatalf("POST /api/order: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated || string(body) != "Order placed successfully" {
		t.Fatalf("order: %d %q", resp.StatusCode, body)
	}

	var o orderEntity.Order
	if err := ordDB.First(&o).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if o.OrderNumber == "" || o.Price.String() != "5000" {
		t.Errorf("stored order = %+v", o)
	}
}

func quantityOf(t *testing.T, db *gorm.DB, sku string) int {
	t.Helper()
	var qty int
	if err := db.Raw("SELECT quantity FROM t_inventory WHERE sku_code = ?", sku).Scan(&qty).Error; err != nil {
		t.Fatalf("quantity of %s: %v", sku, err)
	}
	return qty
}

func TestMySQL_MigrationsKeepExistingRows(t *testing.T) {
	invDB := emptyMySQL(t, migrate.Inventory)
	stmts := []string{
		`CREATE TABLE t_inventory (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			sku_code VARCHAR(64) NOT NULL,
			quantity INT NOT NULL DEFAULT 0,
			PRIMARY KEY (id),
			UNIQUE KEY uq_inventory_sku_code (sku_code))`,
		"INSERT INTO t_inventory (sku_code, quantity) VALUES ('samsung_tv_2024', 7), ('custom_sku', 3)",
	}
	for _, q := range stmts {
		if err := invDB.Exec(q).Error; err != nil {
			t.Fatalf("prepare inventory: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		if err := migrate.Up(invDB, migrate.Inventory); err != nil {
			t.Fatalf("migrate inventory (run %d): %v", i+1, err)
		}
	}
	if got := quantityOf(t, invDB, "samsung_tv_2024"); got != 7 {
		t.Errorf("samsung_tv_2024 = %d, want 7 (seed must not overwrite)", got)
	}
	if got := quantityOf(t, invDB, "custom_sku"); got != 3 {
		t.Errorf("custom_sku = %d, want 3", got)
	}
	if got := quantityOf(t, invDB, "iphone_15"); got != 50 {
		t.Errorf("iphone_15 = %d, want seeded 50", got)
	}

	ordDB := emptyMySQL(t, migrate.Order)
	stmts = []string{
		`CREATE TABLE t_orders (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			order_number VARCHAR(64) NOT NULL,
			sku_code VARCHAR(64) NOT NULL,
			price DECIMAL(19, 2) NOT NULL,
			quantity INT NOT NULL,
			PRIMARY KEY (id),
			UNIQUE KEY uq_orders_order_number (order_number))`,
		"INSERT INTO t_orders (order_number, sku_code, price, quantity) VALUES ('ord-1', 'pixel_8', 799.99, 1)",
	}
	for _, q := range stmts {
		if err := ordDB.Exec(q).Error; err != nil {
			t.Fatalf("prepare orders: %v", err)
		}
	}
	if err := migrate.Up(ordDB, migrate.Order); err != nil {
		t.Fatalf("migrate order: %v", err)
	}
	var n int64
	if err := ordDB.Model(&orderEntity.Order{}).Count(&n).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if n != 1 {
		t.Errorf("orders after migrate = %d, want 1", n)
	}
}
