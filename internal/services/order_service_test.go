package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"fastbite/internal/domain"
	"fastbite/internal/repos"
	"fastbite/internal/services"
)

type env struct {
	db        *sqlx.DB
	products  *repos.ProductRepo
	customers *repos.CustomerRepo
	orders    *services.OrderService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, repos.EnsureSchema(db))
	t.Cleanup(func() { _ = db.Close() })

	prodRepo := repos.NewProductRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	return &env{
		db:        db,
		products:  prodRepo,
		customers: custRepo,
		orders:    services.NewOrderService(orderRepo, custRepo, prodRepo),
	}
}

func (e *env) addProduct(t *testing.T, name string, price float64, stock int, active bool) string {
	t.Helper()
	ts := time.Now().UTC().Format(time.RFC3339)
	p := domain.Product{
		ID: uuid.NewString(), Name: name, Price: price, Stock: stock,
		Category: "Burgers", Active: active, CreatedAt: ts, UpdatedAt: ts,
	}
	require.NoError(t, e.products.Create(p))
	return p.ID
}

func (e *env) addCustomer(t *testing.T) string {
	t.Helper()
	ts := time.Now().UTC().Format(time.RFC3339)
	c := domain.Customer{
		ID: uuid.NewString(), Name: "Ana", Surname: "Perez", RUT: "11.111.111-1",
		Email: "ana@fastbite.test", Phone: "987654321", Address: "Calle Uno 123",
		Active: true, CreatedAt: ts, UpdatedAt: ts,
	}
	require.NoError(t, e.customers.Create(c))
	return c.ID
}

func (e *env) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := e.products.Get(productID)
	require.NoError(t, err)
	return p.Stock
}

func TestCreateOrder_CashTotals(t *testing.T) {
	e := newEnv(t)
	custID := e.addCustomer(t)
	a := e.addProduct(t, "Classic Burger", 1000, 10, true)
	b := e.addProduct(t, "French Fries", 500, 10, true)

	o, err := e.orders.Create(services.OrderInput{
		CustomerID: custID,
		Lines: []services.OrderLineInput{
			{ProductID: a, Quantity: 2},
			{ProductID: b, Quantity: 1},
		},
		PaymentMethod:   "CASH",
		DeliveryAddress: "Av. Central 45",
	})
	require.NoError(t, err)

	require.Equal(t, 0.0, o.Discount)
	require.Equal(t, 2500.0, o.Total)
	require.Equal(t, domain.StatusPending, o.Status)
	require.True(t, o.Active)
	require.NotEmpty(t, o.ID)
	require.NotEmpty(t, o.CreatedAt)
	require.Len(t, o.Lines, 2)

	// Lines are frozen snapshots of name and price.
	require.Equal(t, "Classic Burger", o.Lines[0].Name)
	require.Equal(t, 1000.0, o.Lines[0].UnitPrice)

	require.Equal(t, 8, e.stock(t, a))
	require.Equal(t, 9, e.stock(t, b))
}

func TestCreateOrder_EligibleBankDiscount(t *testing.T) {
	e := newEnv(t)
	custID := e.addCustomer(t)
	a := e.addProduct(t, "Classic Burger", 1000, 10, true)
	b := e.addProduct(t, "French Fries", 500, 10, true)

	o, err := e.orders.Create(services.OrderInput{
		CustomerID: custID,
		Lines: []services.OrderLineInput{
			{ProductID: a, Quantity: 2},
			{ProductID: b, Quantity: 1},
		},
		PaymentMethod:   "CREDIT",
		Bank:            "Santander",
		DeliveryAddress: "Av. Central 45",
	})
	require.NoError(t, err)
	require.Equal(t, 250.0, o.Discount)
	require.Equal(t, 2250.0, o.Total)
}

func TestCreateOrder_NonEligibleBankNoDiscount(t *testing.T) {
	e := newEnv(t)
	custID := e.addCustomer(t)
	a := e.addProduct(t, "Classic Burger", 1000, 10, true)

	o, err := e.orders.Create(services.OrderInput{
		CustomerID:      custID,
		Lines:           []services.OrderLineInput{{ProductID: a, Quantity: 1}},
		PaymentMethod:   "DEBIT",
		Bank:            "BCI",
		DeliveryAddress: "Av. Central 45",
	})
	require.NoError(t, err)
	require.Equal(t, 0.0, o.Discount)
	require.Equal(t, 1000.0, o.Total)
}

func TestCreateOrder_ValidationLadder(t *testing.T) {
	e := newEnv(t)
	custID := e.addCustomer(t)
	a := e.addProduct(t, "Classic Burger", 1000, 3, true)
	inactive := e.addProduct(t, "Old Burger", 900, 5, false)

	line := func(id string, qty int) []services.OrderLineInput {
		return []services.OrderLineInput{{ProductID: id, Quantity: qty}}
	}

	cases := []struct {
		name string
		in   services.OrderInput
		kind domain.ErrorKind
	}{
		{"malformed customer id", services.OrderInput{CustomerID: "nope", Lines: line(a, 1), PaymentMethod: "CASH", DeliveryAddress: "x"}, domain.KindFormat},
		{"unknown customer", services.OrderInput{CustomerID: uuid.NewString(), Lines: line(a, 1), PaymentMethod: "CASH", DeliveryAddress: "x"}, domain.KindNotFound},
		{"blank address", services.OrderInput{CustomerID: custID, Lines: line(a, 1), PaymentMethod: "CASH", DeliveryAddress: "  "}, domain.KindFormat},
		{"bad payment method", services.OrderInput{CustomerID: custID, Lines: line(a, 1), PaymentMethod: "BARTER", DeliveryAddress: "x"}, domain.KindFormat},
		{"missing bank for credit", services.OrderInput{CustomerID: custID, Lines: line(a, 1), PaymentMethod: "CREDIT", DeliveryAddress: "x"}, domain.KindBusinessRule},
		{"bank not allow-listed", services.OrderInput{CustomerID: custID, Lines: line(a, 1), PaymentMethod: "DEBIT", Bank: "Narnia Bank", DeliveryAddress: "x"}, domain.KindBusinessRule},
		{"empty lines", services.OrderInput{CustomerID: custID, PaymentMethod: "CASH", DeliveryAddress: "x"}, domain.KindBusinessRule},
		{"malformed product id", services.OrderInput{CustomerID: custID, Lines: line("zzz", 1), PaymentMethod: "CASH", DeliveryAddress: "x"}, domain.KindFormat},
		{"non-positive quantity", services.OrderInput{CustomerID: custID, Lines: line(a, 0), PaymentMethod: "CASH", DeliveryAddress: "x"}, domain.KindFormat},
		{"duplicate product line", services.OrderInput{CustomerID: custID, Lines: append(line(a, 1), line(a, 1)...), PaymentMethod: "CASH", DeliveryAddress: "x"}, domain.KindFormat},
		{"unknown product", services.OrderInput{CustomerID: custID, Lines: line(uuid.NewString(), 1), PaymentMethod: "CASH", DeliveryAddress: "x"}, domain.KindNotFound},
		{"inactive product", services.OrderInput{CustomerID: custID, Lines: line(inactive, 1), PaymentMethod: "CASH", DeliveryAddress: "x"}, domain.KindBusinessRule},
		{"insufficient stock", services.OrderInput{CustomerID: custID, Lines: line(a, 5), PaymentMethod: "CASH", DeliveryAddress: "x"}, domain.KindBusinessRule},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.orders.Create(tc.in)
			require.Error(t, err)
			require.Equal(t, tc.kind, domain.KindOf(err))
		})
	}

	// No rejected order may leave a stock change behind.
	require.Equal(t, 3, e.stock(t, a))
	require.Equal(t, 5, e.stock(t, inactive))
}

func TestCreateOrder_InsufficientStockNamesQuantities(t *testing.T) {
	e := newEnv(t)
	custID := e.addCustomer(t)
	a := e.addProduct(t, "Classic Burger", 1000, 3, true)

	_, err := e.orders.Create(services.OrderInput{
		CustomerID:      custID,
		Lines:           []services.OrderLineInput{{ProductID: a, Quantity: 5}},
		PaymentMethod:   "CASH",
		DeliveryAddress: "x",
	})
	require.Error(t, err)
	require.Equal(t, domain.KindBusinessRule, domain.KindOf(err))
	require.Contains(t, err.Error(), "Classic Burger")
	require.Contains(t, err.Error(), "3")
	require.Contains(t, err.Error(), "5")
	require.Equal(t, 3, e.stock(t, a))
}

func TestCreateOrder_ConcurrentOrdersNeverOversell(t *testing.T) {
	e := newEnv(t)
	custID := e.addCustomer(t)
	a := e.addProduct(t, "Classic Burger", 1000, 10, true)

	in := services.OrderInput{
		CustomerID:      custID,
		Lines:           []services.OrderLineInput{{ProductID: a, Quantity: 6}},
		PaymentMethod:   "CASH",
		DeliveryAddress: "x",
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.orders.Create(in)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			kind := domain.KindOf(err)
			require.Contains(t, []domain.ErrorKind{domain.KindBusinessRule, domain.KindConflict}, kind)
		}
	}
	require.Equal(t, 1, ok, "exactly one of two 6-unit orders against stock 10 may succeed")
	require.Equal(t, 4, e.stock(t, a))
}

func TestUpdateStatus(t *testing.T) {
	e := newEnv(t)
	custID := e.addCustomer(t)
	a := e.addProduct(t, "Classic Burger", 1000, 10, true)

	o, err := e.orders.Create(services.OrderInput{
		CustomerID:      custID,
		Lines:           []services.OrderLineInput{{ProductID: a, Quantity: 1}},
		PaymentMethod:   "CASH",
		DeliveryAddress: "x",
	})
	require.NoError(t, err)

	// Case and spaces normalize.
	o2, err := e.orders.UpdateStatus(o.ID, " preparing ")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPreparing, o2.Status)

	// Backward move rejected.
	_, err = e.orders.UpdateStatus(o.ID, "PENDING")
	require.Equal(t, domain.KindBusinessRule, domain.KindOf(err))

	// Unknown value lists the valid set.
	_, err = e.orders.UpdateStatus(o.ID, "SHIPPED")
	require.Equal(t, domain.KindFormat, domain.KindOf(err))
	require.Contains(t, err.Error(), "PENDING")

	// Terminal states admit nothing further.
	_, err = e.orders.UpdateStatus(o.ID, "CANCELLED")
	require.NoError(t, err)
	_, err = e.orders.UpdateStatus(o.ID, "READY")
	require.Equal(t, domain.KindBusinessRule, domain.KindOf(err))

	_, err = e.orders.UpdateStatus(uuid.NewString(), "READY")
	require.True(t, domain.IsNotFound(err))
}

func TestSoftDeleteOrder_Idempotent(t *testing.T) {
	e := newEnv(t)
	custID := e.addCustomer(t)
	a := e.addProduct(t, "Classic Burger", 1000, 10, true)

	o, err := e.orders.Create(services.OrderInput{
		CustomerID:      custID,
		Lines:           []services.OrderLineInput{{ProductID: a, Quantity: 1}},
		PaymentMethod:   "CASH",
		DeliveryAddress: "x",
	})
	require.NoError(t, err)

	outcome, err := e.orders.SoftDelete(o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SoftDeleteDone, outcome)

	// Second delete is a no-op, not an error, and the state is unchanged.
	outcome, err = e.orders.SoftDelete(o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SoftDeleteNoOp, outcome)

	got, err := e.orders.Get(o.ID)
	require.NoError(t, err)
	require.False(t, got.Active)

	outcome, err = e.orders.SoftDelete(uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, domain.SoftDeleteNotFound, outcome)

	// Inactive orders drop out of the default listing.
	list, err := e.orders.List()
	require.NoError(t, err)
	require.Empty(t, list)
}
