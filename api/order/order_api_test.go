package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stockorder.GO/core/cache"
	"stockorder.GO/core/dbtest"
	"stockorder.GO/core/idempotency"
	orderEntity "stockorder.GO/model/entity/order"
	orderService "stockorder.GO/service/order"
)

// mockInventory stands in for the inventory service.
type mockInventory struct {
	mu      sync.Mutex
	inStock bool
	err     error
	skus    []string
}

func (m *mockInventory) IsInStock(ctx context.Context, skuCode string, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skus = append(m.skus, skuCode)
	return m.inStock, m.err
}

func orderTestServer(t *testing.T, inv *mockInventory, opts ...orderService.Option) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t, &orderEntity.Order{})
	e := echo.New()
	RegisterOrderRoutes(e.Group("/api"), orderService.NewService(inv, db, opts...))
	return e, db
}

func doOrderRequest(e *echo.Echo, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func orderCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	db.Model(&orderEntity.Order{}).Count(&n)
	return n
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp["error"]
}

const submitOrderJSON = `{
	"skuCode": "samsung_tv_2024",
	"price": 5000,
	"quantity": 10
}`

func TestOrderAPI_SubmitOrder_Returns201(t *testing.T) {
	inv := &mockInventory{inStock: true}
	e, db := orderTestServer(t, inv)

	rec := doOrderRequest(e, submitOrderJSON, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "Order placed successfully" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "Order placed successfully")
	}
	if orderCount(t, db) != 1 {
		t.Fatalf("orders = %d, want 1", orderCount(t, db))
	}

	var o orderEntity.Order
	db.First(&o)
	if o.OrderNumber == "" {
		t.Error("stored order has empty order number")
	}
	if rec.Header().Get(HeaderOrderNumber) != o.OrderNumber {
		t.Errorf("%s = %q, want %q", HeaderOrderNumber, rec.Header().Get(HeaderOrderNumber), o.OrderNumber)
	}
	if o.SkuCode != "samsung_tv_2024" || o.Quantity != 10 || o.Price.String() != "5000" {
		t.Errorf("stored order = %+v", o)
	}
	if len(inv.skus) != 1 || inv.skus[0] != "samsung_tv_2024" {
		t.Errorf("inventory calls = %v", inv.skus)
	}
}

func TestOrderAPI_DecimalPrice(t *testing.T) {
	e, db := orderTestServer(t, &mockInventory{inStock: true})

	rec := doOrderRequest(e, `{"skuCode":"pixel_8","price":"799.99","quantity":1}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var o orderEntity.Order
	db.First(&o)
	if o.Price.String() != "799.99" {
		t.Errorf("price = %s, want 799.99", o.Price)
	}
}

func TestOrderAPI_OutOfStock_Returns409(t *testing.T) {
	e, db := orderTestServer(t, &mockInventory{inStock: false})

	rec := doOrderRequest(e, submitOrderJSON, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Product with skuCode samsung_tv_2024 is not in stock" {
		t.Errorf("error = %q", msg)
	}
	if orderCount(t, db) != 0 {
		t.Errorf("orders = %d, want 0", orderCount(t, db))
	}
}

func TestOrderAPI_InventoryDown_Returns503(t *testing.T) {
	e, db := orderTestServer(t, &mockInventory{err: context.DeadlineExceeded})

	rec := doOrderRequest(e, submitOrderJSON, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
	if orderCount(t, db) != 0 {
		t.Errorf("orders = %d, want 0", orderCount(t, db))
	}
}

func TestOrderAPI_PersistenceFailure_Returns500(t *testing.T) {
	db := dbtest.Open(t) // no t_orders table
	e := echo.New()
	RegisterOrderRoutes(e.Group("/api"), orderService.NewService(&mockInventory{inStock: true}, db))

	rec := doOrderRequest(e, submitOrderJSON, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestOrderAPI_Validation_Returns400(t *testing.T) {
	inv := &mockInventory{inStock: true}
	e, db := orderTestServer(t, inv)

	cases := map[string]string{
		"invalid json":      `{invalid`,
		"missing sku":       `{"price": 1, "quantity": 1}`,
		"missing price":     `{"skuCode": "a", "quantity": 1}`,
		"missing quantity":  `{"skuCode": "a", "price": 1}`,
		"zero quantity":     `{"skuCode": "a", "price": 1, "quantity": 0}`,
		"negative price":    `{"skuCode": "a", "price": -5, "quantity": 1}`,
		"fraction quantity": `{"skuCode": "a", "price": 1, "quantity": 1.5}`,
		"price not number":  `{"skuCode": "a", "price": "cheap", "quantity": 1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doOrderRequest(e, body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
			}
		})
	}
	if len(inv.skus) != 0 {
		t.Errorf("inventory called for invalid requests: %v", inv.skus)
	}
	if orderCount(t, db) != 0 {
		t.Errorf("orders = %d, want 0", orderCount(t, db))
	}
}

func TestOrderAPI_UniqueOrderNumbers(t *testing.T) {
	e, db := orderTestServer(t, &mockInventory{inStock: true})

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		rec := doOrderRequest(e, submitOrderJSON, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("submission %d status = %d", i, rec.Code)
		}
		num := rec.Header().Get(HeaderOrderNumber)
		if num == "" || seen[num] {
			t.Fatalf("submission %d order number %q empty or repeated", i, num)
		}
		seen[num] = true
	}
	if orderCount(t, db) != 10 {
		t.Errorf("orders = %d, want 10", orderCount(t, db))
	}
}

func TestOrderAPI_IdempotencyKey(t *testing.T) {
	store := idempotency.NewMemoryStore(cache.NewCache())
	inv := &mockInventory{inStock: true}
	e, db := orderTestServer(t, inv, orderService.WithIdempotency(store, time.Minute))
	headers := map[string]string{HeaderIdempotencyKey: "req-42"}

	if rec := doOrderRequest(e, submitOrderJSON, headers); rec.Code != http.StatusCreated {
		t.Fatalf("first status = %d", rec.Code)
	}
	rec := doOrderRequest(e, submitOrderJSON, headers)
	if rec.Code != http.StatusConflict {
		t.Fatalf("replay status = %d, want 409", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "duplicate request" {
		t.Errorf("error = %q", msg)
	}
	if orderCount(t, db) != 1 {
		t.Errorf("orders = %d, want 1", orderCount(t, db))
	}
	if len(inv.skus) != 1 {
		t.Errorf("inventory calls = %d, want 1", len(inv.skus))
	}
}

func TestOrderAPI_IdempotencyKey_RetryAfterFailure(t *testing.T) {
	store := idempotency.NewMemoryStore(cache.NewCache())
	inv := &mockInventory{err: errors.New("connection refused")}
	e, _ := orderTestServer(t, inv, orderService.WithIdempotency(store, time.Minute))
	headers := map[string]string{HeaderIdempotencyKey: "req-43"}

	if rec := doOrderRequest(e, submitOrderJSON, headers); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("first status = %d, want 503", rec.Code)
	}
	inv.mu.Lock()
	inv.err, inv.inStock = nil, true
	inv.mu.Unlock()

	if rec := doOrderRequest(e, submitOrderJSON, headers); rec.Code != http.StatusCreated {
		t.Fatalf("retry status = %d, want 201", rec.Code)
	}
}

// rejectedQuery mimics the HTTP client's error for a 4xx inventory answer.
type rejectedQuery struct{}

func (rejectedQuery) Error() string  { return "inventory: unexpected status 400" }
func (rejectedQuery) Rejected() bool { return true }

func TestOrderAPI_InventoryRejectsQuery_Returns502(t *testing.T) {
	e, db := orderTestServer(t, &mockInventory{err: rejectedQuery{}})

	rec := doOrderRequest(e, submitOrderJSON, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "" {
		t.Error("Retry-After set for a query that cannot succeed on retry")
	}
	if orderCount(t, db) != 0 {
		t.Errorf("orders = %d, want 0", orderCount(t, db))
	}
}

// downStore fails every claim, as Redis does when it is unreachable.
type downStore struct{}

func (downStore) Claim(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("dial tcp: connection refused")
}
func (downStore) Release(context.Context, string) error { return nil }

func TestOrderAPI_IdempotencyStoreDown_Returns503(t *testing.T) {
	inv := &mockInventory{inStock: true}
	e, _ := orderTestServer(t, inv, orderService.WithIdempotency(downStore{}, time.Minute))

	rec := doOrderRequest(e, submitOrderJSON, map[string]string{HeaderIdempotencyKey: "req-50"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "idempotency") || strings.Contains(msg, "inventory") {
		t.Errorf("error = %q, want it to name the idempotency store", msg)
	}
	if len(inv.skus) != 0 {
		t.Errorf("inventory calls = %d, want 0", len(inv.skus))
	}
}
