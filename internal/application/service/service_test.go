package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/gopos-api/internal/domain/repository"
	"github.com/sangkips/gopos-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/gopos-api/internal/infrastructure/repository"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/sangkips/gopos-api/pkg/eventbus"
	"github.com/sangkips/gopos-api/pkg/printer"
	"github.com/sangkips/gopos-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	users     domainRepo.UserRepository
	events    *eventbus.Recorder
	printer   *printer.BufferPrinter
	auth      *AuthService
	clients   *ClientService
	employees *EmployeeService
	category  *CategoryService
	items     *ItemService
	modifiers *ModifierService
	orders    *OrderService
	reports   *ReportService
	printing  *PrinterService
	clock     *fakeClock
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	users := infraRepo.NewUserRepository(db)
	categories := infraRepo.NewCategoryRepository(db)
	items := infraRepo.NewItemRepository(db)
	modifiers := infraRepo.NewModifierRepository(db)
	orders := infraRepo.NewOrderRepository(db)

	env := &testEnv{
		users:   users,
		events:  eventbus.NewRecorder(),
		printer: printer.NewBufferPrinter(),
		clock:   &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
	}
	env.auth = NewAuthService(users, utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour))
	env.clients = NewClientService(users)
	env.employees = NewEmployeeService(users)
	env.category = NewCategoryService(categories)
	env.items = NewItemService(items, categories)
	env.modifiers = NewModifierService(modifiers, categories)
	env.orders = NewOrderService(orders, items, env.events)
	env.orders.now = env.clock.now
	env.reports = NewReportService(orders)
	env.reports.now = env.clock.now
	env.printing = NewPrinterService(env.printer, orders, users, "buffer", 32, "Corner Shop")
	return env
}

// newTenant registers a client and returns a context scoped to it
func (e *testEnv) newTenant(t *testing.T, phone string) (context.Context, *entity.User) {
	t.Helper()
	client, err := e.clients.CreateClient(context.Background(), &CreateClientInput{
		Phone:       phone,
		Password:    "secret",
		Name:        "Owner " + phone,
		CompanyName: "Shop " + phone,
	})
	require.NoError(t, err)
	return infraRepo.WithTenant(context.Background(), client.ID), client
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, kind), "want %s, got %v", kind, err)
}

func cents(v int64) *int64 { return &v }

func line(itemID uuid.UUID, name string, price int64, qty int) OrderLineInput {
	return OrderLineInput{ItemID: itemID, Name: name, UnitPrice: price, Quantity: qty}
}

func cashOrder(userID uuid.UUID, lines ...OrderLineInput) *CreateOrderInput {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.UnitPrice * int64(l.Quantity)
	}
	return &CreateOrderInput{
		UserID:          userID,
		SalesPersonName: "Cashier",
		Lines:           lines,
		Subtotal:        subtotal,
		Total:           subtotal,
		PaymentMethod:   enum.PaymentMethodCash,
	}
}
