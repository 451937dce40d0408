package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/config"
	"github.com/sangkips/gopos-api/internal/infrastructure/database"
	"github.com/sangkips/gopos-api/internal/infrastructure/repository"
	"github.com/sangkips/gopos-api/internal/presentation/http/handler"
	"github.com/sangkips/gopos-api/internal/presentation/http/middleware"
	"github.com/sangkips/gopos-api/pkg/eventbus"
	"github.com/sangkips/gopos-api/pkg/printer"
	"github.com/sangkips/gopos-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

const (
	adminPhone    = "0800000000"
	adminPassword = "admin-pass"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testServer struct {
	router  *gin.Engine
	events  *eventbus.Recorder
	printer *printer.BufferPrinter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLiteDB(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedDefaultData(db, config.AdminConfig{Phone: adminPhone, Password: adminPassword}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		App:       config.AppConfig{Name: "gopos-test"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	items := repository.NewItemRepository(db)
	modifiers := repository.NewModifierRepository(db)
	orders := repository.NewOrderRepository(db)

	ts := &testServer{events: eventbus.NewRecorder(), printer: printer.NewBufferPrinter()}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	t.Cleanup(limiter.Close)

	ts.router = Setup(&Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(users, jwtManager)),
		Category: handler.NewCategoryHandler(service.NewCategoryService(categories)),
		Item:     handler.NewItemHandler(service.NewItemService(items, categories)),
		Modifier: handler.NewModifierHandler(service.NewModifierService(modifiers, categories)),
		Order:    handler.NewOrderHandler(service.NewOrderService(orders, items, ts.events)),
		Report:   handler.NewReportHandler(service.NewReportService(orders)),
		Client:   handler.NewClientHandler(service.NewClientService(users)),
		Employee: handler.NewEmployeeHandler(service.NewEmployeeService(users)),
		Printer:  handler.NewPrinterHandler(service.NewPrinterService(ts.printer, orders, users, "buffer", 32, "Test Shop")),
		Health: handler.NewHealthHandler(cfg.App.Name, func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
	}, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		RateLimiter:     limiter,
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func (ts *testServer) login(t *testing.T, phone, password string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/login", "", map[string]string{"phone": phone, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	decode(t, rec, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

type shop struct {
	ownerToken string
	staffToken string
}

// newShop creates a client through the admin API plus one staff member
func (ts *testServer) newShop(t *testing.T, adminToken, phone string) shop {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/clients", adminToken, map[string]string{
		"phone":        phone,
		"password":     "owner-pass",
		"name":         "Owner " + phone,
		"company_name": "Shop " + phone,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	owner := ts.login(t, phone, "owner-pass")

	staffPhone := phone + "9"
	rec = ts.do(t, http.MethodPost, "/api/employees", owner, map[string]string{
		"phone":    staffPhone,
		"password": "staff-pass",
		"name":     "Cashier " + phone,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return shop{ownerToken: owner, staffToken: ts.login(t, staffPhone, "staff-pass")}
}

type idRef struct {
	ID string `json:"id"`
}

func (ts *testServer) createItem(t *testing.T, token string, body map[string]interface{}) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/items", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item idRef
	decode(t, rec, &item)
	return item.ID
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec := ts.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		env := decode(t, rec, nil)
		assert.True(t, env.Success)
	}
}

func TestHealthReportsUnavailableStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := handler.NewHealthHandler("gopos-test", func(ctx context.Context) error {
		return context.DeadlineExceeded
	})
	router := gin.New()
	router.GET("/health", h.Check)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/login", "", map[string]string{"phone": adminPhone, "password": adminPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			Role  string `json:"role"`
			Phone string `json:"phone"`
		} `json:"user"`
	}
	env := decode(t, rec, &login)
	assert.True(t, env.Success)
	assert.Equal(t, "super_admin", login.User.Role)
	assert.Equal(t, adminPhone, login.User.Phone)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = ts.do(t, http.MethodGet, "/api/me", login.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/refresh", "", map[string]string{"refresh_token": login.RefreshToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("wrong password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/login", "", map[string]string{"phone": adminPhone, "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, decode(t, rec, nil).Success)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/login", "", map[string]string{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, string(decode(t, rec, nil).Errors), `"field":"phone"`)
	})

	t.Run("no token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/me", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRolePermissions(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, adminPhone, adminPassword)
	s := ts.newShop(t, admin, "0811111111")

	// staff reads the catalog but cannot change it
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/categories", s.staffToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodPost, "/api/categories", s.staffToken, map[string]string{"name": "Drinks"}).Code)
	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodGet, "/api/employees", s.staffToken, nil).Code)

	// clients are managed by the super admin only
	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodGet, "/api/clients", s.ownerToken, nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/clients", admin, nil).Code)

	// everyone sees the printer
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/printer/status", s.staffToken, nil).Code)
}

func TestOrderLifecycle(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, adminPhone, adminPassword)
	s := ts.newShop(t, admin, "0822222222")

	rec := ts.do(t, http.MethodPost, "/api/categories", s.ownerToken, map[string]string{"name": "Coffee"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var category idRef
	decode(t, rec, &category)

	latte := ts.createItem(t, s.ownerToken, map[string]interface{}{
		"name": "Latte", "price": 3.5, "category_id": category.ID, "track_stock": true, "stock": 5,
	})
	cookie := ts.createItem(t, s.ownerToken, map[string]interface{}{
		"name": "Cookie", "price": "1.25", "category_id": category.ID,
	})

	order := map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": latte, "name": "Latte", "price": 3.5, "quantity": 2},
			{"item_id": cookie, "name": "Cookie", "price": 1.25, "quantity": 1},
		},
		"subtotal":       8.25,
		"total":          8.25,
		"payment_method": "cash",
		"cash_amount":    10,
	}

	rec = ts.do(t, http.MethodPost, "/api/orders", s.staffToken, order, "Idempotency-Key", "sale-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID           string  `json:"id"`
		OrderNumber  string  `json:"order_number"`
		Total        float64 `json:"total"`
		ChangeAmount float64 `json:"change_amount"`
		Status       string  `json:"status"`
	}
	decode(t, rec, &created)
	assert.Equal(t, "ORD00001", created.OrderNumber)
	assert.Equal(t, 8.25, created.Total)
	assert.Equal(t, 1.75, created.ChangeAmount)
	assert.Equal(t, "completed", created.Status)

	t.Run("idempotent retry replays", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/orders", s.staffToken, order, "Idempotency-Key", "sale-1")
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "true", rec.Header().Get(middleware.IdempotencyReplayedHeader))
		var replay struct {
			OrderNumber string `json:"order_number"`
		}
		decode(t, rec, &replay)
		assert.Equal(t, "ORD00001", replay.OrderNumber)
		assert.Len(t, ts.events.Events(), 1)
	})

	t.Run("key reuse with another body", func(t *testing.T) {
		other := map[string]interface{}{
			"items":          []map[string]interface{}{{"item_id": cookie, "name": "Cookie", "price": 1.25, "quantity": 1}},
			"subtotal":       1.25,
			"total":          1.25,
			"payment_method": "qr",
		}
		rec := ts.do(t, http.MethodPost, "/api/orders", s.staffToken, other, "Idempotency-Key", "sale-1")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("stock decremented", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/items/"+latte, s.staffToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var item struct {
			Stock int `json:"stock"`
		}
		decode(t, rec, &item)
		assert.Equal(t, 3, item.Stock)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		big := map[string]interface{}{
			"items":          []map[string]interface{}{{"item_id": latte, "name": "Latte", "price": 3.5, "quantity": 4}},
			"subtotal":       14,
			"total":          14,
			"payment_method": "cash",
		}
		rec := ts.do(t, http.MethodPost, "/api/orders", s.staffToken, big)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Insufficient stock for Latte", decode(t, rec, nil).Message)
	})

	rec = ts.do(t, http.MethodPost, "/api/orders/"+created.ID+"/return-item", s.staffToken, map[string]string{"item_id": cookie})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var returned struct {
		ReturnedCount int `json:"returned_count"`
	}
	decode(t, rec, &returned)
	assert.Equal(t, 1, returned.ReturnedCount)

	rec = ts.do(t, http.MethodPost, "/api/orders/"+created.ID+"/return-item", s.staffToken, map[string]string{"item_id": cookie})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/sales-report", s.staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report struct {
		TotalSales  float64 `json:"total_sales"`
		TotalOrders int     `json:"total_orders"`
		QtySold     int     `json:"qty_sold"`
		TopItems    []struct {
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
		} `json:"top_items"`
	}
	decode(t, rec, &report)
	assert.Equal(t, 8.25, report.TotalSales)
	assert.Equal(t, 1, report.TotalOrders)
	assert.Equal(t, 3, report.QtySold)
	require.NotEmpty(t, report.TopItems)
	assert.Equal(t, "Latte", report.TopItems[0].Name)

	rec = ts.do(t, http.MethodPost, "/api/orders/"+created.ID+"/refund", s.staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/orders/"+created.ID+"/return", s.staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Order already refunded", decode(t, rec, nil).Message)

	rec = ts.do(t, http.MethodGet, "/api/orders-list?status=refunded", s.ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list []struct {
		OrderNumber string `json:"order_number"`
		Status      string `json:"status"`
	}
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "refunded", list[0].Status)

	rec = ts.do(t, http.MethodGet, "/api/orders-list?status=pending", s.ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/orders/"+created.ID+"/print", s.staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, ts.printer.Jobs(), 1)
	assert.Contains(t, string(ts.printer.Jobs()[0]), "REFUNDED")

	var types []string
	for _, e := range ts.events.Events() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{eventbus.OrderCreated, eventbus.OrderItemsReturned, eventbus.OrderRefunded}, types)
}

func TestTenantIsolation(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, adminPhone, adminPassword)
	a := ts.newShop(t, admin, "0833333333")
	b := ts.newShop(t, admin, "0844444444")

	rec := ts.do(t, http.MethodPost, "/api/categories", a.ownerToken, map[string]string{"name": "Tea"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var category idRef
	decode(t, rec, &category)
	item := ts.createItem(t, a.ownerToken, map[string]interface{}{"name": "Green Tea", "price": 2, "category_id": category.ID})

	rec = ts.do(t, http.MethodPost, "/api/orders", a.staffToken, map[string]interface{}{
		"items":          []map[string]interface{}{{"item_id": item, "name": "Green Tea", "price": 2, "quantity": 1}},
		"subtotal":       2,
		"total":          2,
		"payment_method": "qr",
		"qr_image":       "data:image/png;base64,AAAA",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order idRef
	decode(t, rec, &order)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/orders/"+order.ID, b.ownerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/api/orders/"+order.ID+"/refund", b.staffToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/api/categories/"+category.ID, b.ownerToken, nil).Code)

	rec = ts.do(t, http.MethodGet, "/api/categories", b.ownerToken, nil)
	var cats []idRef
	decode(t, rec, &cats)
	assert.Empty(t, cats)

	// B's first order is numbered independently of A
	rec = ts.do(t, http.MethodPost, "/api/categories", b.ownerToken, map[string]string{"name": "Tea"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &category)
	itemB := ts.createItem(t, b.ownerToken, map[string]interface{}{"name": "Green Tea", "price": 2, "category_id": category.ID})
	rec = ts.do(t, http.MethodPost, "/api/orders", b.staffToken, map[string]interface{}{
		"items":          []map[string]interface{}{{"item_id": itemB, "name": "Green Tea", "price": 2, "quantity": 1}},
		"subtotal":       2,
		"total":          2,
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var numbered struct {
		OrderNumber string `json:"order_number"`
	}
	decode(t, rec, &numbered)
	assert.Equal(t, "ORD00001", numbered.OrderNumber)
}

func TestMalformedRequests(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, adminPhone, adminPassword)
	s := ts.newShop(t, admin, "0855555555")

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/orders/not-a-uuid", s.staffToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/sales-report?date=14-03-2026", s.staffToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/sales-report?start_date=2026-03-15&end_date=2026-03-14", s.staffToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/sales-report?start_date=2026-03-14", s.staffToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/orders-list?end_date=2026-03-14", s.staffToken, nil).Code)

	rec := ts.do(t, http.MethodPost, "/api/orders", s.staffToken, map[string]interface{}{
		"items":          []map[string]interface{}{},
		"payment_method": "card",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec, nil)
	assert.Contains(t, string(env.Errors), "payment_method")
	assert.Contains(t, string(env.Errors), "items")

	rec = ts.do(t, http.MethodPost, "/api/orders/"+"00000000-0000-0000-0000-000000000001"+"/return-item", s.staffToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAmountsBeyondLedgerRange(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, adminPhone, adminPassword)
	s := ts.newShop(t, admin, "0866666666")
	huge := json.Number("184467440737095516.17")

	rec := ts.do(t, http.MethodPost, "/api/categories", s.ownerToken, map[string]string{"name": "Cups"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var category idRef
	decode(t, rec, &category)

	rec = ts.do(t, http.MethodPost, "/api/items", s.ownerToken, map[string]interface{}{
		"name": "Cup", "price": huge, "category_id": category.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, string(decode(t, rec, nil).Errors), "price")

	rec = ts.do(t, http.MethodPost, "/api/modifiers", s.ownerToken, map[string]interface{}{
		"name": "Lid", "cost": huge, "category_ids": []string{category.ID},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	cup := ts.createItem(t, s.ownerToken, map[string]interface{}{
		"name": "Cup", "price": 1, "category_id": category.ID,
	})

	rec = ts.do(t, http.MethodPost, "/api/orders", s.staffToken, map[string]interface{}{
		"items":          []map[string]interface{}{{"item_id": cup, "name": "Cup", "price": huge, "quantity": 1}},
		"subtotal":       huge,
		"total":          huge,
		"payment_method": "cash",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	errs := string(decode(t, rec, nil).Errors)
	assert.Contains(t, errs, "items[0].price")
	assert.Contains(t, errs, "total")

	rec = ts.do(t, http.MethodPost, "/api/orders", s.staffToken, map[string]interface{}{
		"items":          []map[string]interface{}{{"item_id": cup, "name": "Cup", "price": 1, "quantity": 10001}},
		"subtotal":       10001,
		"total":          10001,
		"payment_method": "cash",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, string(decode(t, rec, nil).Errors), "items[0].quantity")

	rec = ts.do(t, http.MethodGet, "/api/orders", s.staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec, nil).Data))
}

var pathParam = regexp.MustCompile(`:(\w+)`)

// TestSwaggerDocsMatchRoutes keeps docs/docs.go in step with the router.
// Regenerate the docs with go generate ./cmd/api when this fails.
func TestSwaggerDocsMatchRoutes(t *testing.T) {
	ts := newTestServer(t)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, "/api", doc.BasePath)

	var documented []string
	for path, ops := range doc.Paths {
		for method := range ops {
			documented = append(documented, strings.ToUpper(method)+" "+path)
		}
	}

	var routed []string
	for _, r := range ts.router.Routes() {
		if !strings.HasPrefix(r.Path, doc.BasePath+"/") {
			continue
		}
		path := pathParam.ReplaceAllString(strings.TrimPrefix(r.Path, doc.BasePath), "{$1}")
		routed = append(routed, r.Method+" "+path)
	}

	sort.Strings(documented)
	sort.Strings(routed)
	assert.Equal(t, routed, documented)
}
