package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fastbite/internal/domain"
	"fastbite/internal/repos"
	"fastbite/internal/validate"
)

// ProductLookup is the only view of the catalog the order and combo
// workflows depend on.
type ProductLookup interface {
	FindByID(id string) (domain.Product, bool, error)
	FindByIDs(ids []string) ([]domain.Product, error)
}

type OrderService struct {
	Orders    *repos.OrderRepo
	Customers *repos.CustomerRepo
	Lookup    ProductLookup
}

func NewOrderService(orders *repos.OrderRepo, customers *repos.CustomerRepo, lookup ProductLookup) *OrderService {
	return &OrderService{Orders: orders, Customers: customers, Lookup: lookup}
}

type OrderLineInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type OrderInput struct {
	CustomerID      string           `json:"customerId"`
	Lines           []OrderLineInput `json:"lines"`
	PaymentMethod   string           `json:"paymentMethod"`
	Bank            string           `json:"bank"`
	DeliveryAddress string           `json:"deliveryAddress"`
}

// Create validates the request line by line against the live catalog,
// prices it with the current product prices, and hands the result to the
// repository as one atomic stock-decrement-plus-insert.
func (s *OrderService) Create(in OrderInput) (domain.Order, error) {
	customerID, ok := validate.ID(in.CustomerID)
	if !ok {
		return domain.Order{}, domain.Formatf("customerId", "customerId %q is not a valid identifier", in.CustomerID)
	}
	exists, err := s.Customers.Exists(customerID)
	if err != nil {
		return domain.Order{}, err
	}
	if !exists {
		return domain.Order{}, domain.NotFoundf("customerId", "customer %q not found", customerID)
	}

	address, ok := validate.NonEmpty(in.DeliveryAddress)
	if !ok {
		return domain.Order{}, domain.Formatf("deliveryAddress", "deliveryAddress is required")
	}

	method, ok := domain.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return domain.Order{}, domain.Formatf("paymentMethod", "invalid payment method %q", in.PaymentMethod)
	}

	bank := ""
	if method != domain.PayCash {
		bank, ok = validate.NonEmpty(in.Bank)
		if !ok || !domain.ValidBanks[bank] {
			return domain.Order{}, domain.BusinessRulef("bank",
				"bank %q is not accepted for payment method %s", in.Bank, method)
		}
	}

	if len(in.Lines) == 0 {
		return domain.Order{}, domain.BusinessRulef("lines", "an order needs at least one line")
	}

	lines := make([]domain.OrderLine, 0, len(in.Lines))
	seen := make(map[string]bool, len(in.Lines))
	subtotal := decimal.Zero
	for _, item := range in.Lines {
		pid, ok := validate.ID(item.ProductID)
		if !ok {
			return domain.Order{}, domain.Formatf("lines", "productId %q is not a valid identifier", item.ProductID)
		}
		if seen[pid] {
			return domain.Order{}, domain.Formatf("lines", "product %q appears in more than one line", pid)
		}
		seen[pid] = true
		if item.Quantity <= 0 {
			return domain.Order{}, domain.Formatf("lines", "quantity for product %q must be positive", pid)
		}

		p, found, err := s.Lookup.FindByID(pid)
		if err != nil {
			return domain.Order{}, err
		}
		if !found {
			return domain.Order{}, domain.NotFoundf("lines", "product %q not found", pid)
		}
		if !p.Active {
			return domain.Order{}, domain.BusinessRulef("lines", "product %q is inactive and cannot be ordered", p.Name)
		}
		if p.Stock < item.Quantity {
			return domain.Order{}, domain.BusinessRulef("lines",
				"insufficient stock for product %q: have %d, requested %d", p.Name, p.Stock, item.Quantity)
		}

		// Snapshot name and price at validation time.
		lines = append(lines, domain.OrderLine{
			ProductID: p.ID, Name: p.Name, UnitPrice: p.Price, Qty: item.Quantity,
		})
		subtotal = subtotal.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	if method != domain.PayCash {
		if rate, ok := domain.DiscountRates[bank]; ok {
			discount = subtotal.Mul(decimal.NewFromFloat(rate)).Round(2)
		}
	}
	total := subtotal.Sub(discount).Round(2)
	if !total.IsPositive() {
		return domain.Order{}, domain.BusinessRulef("total", "order total must be positive")
	}

	o := domain.Order{
		ID:              uuid.NewString(),
		CustomerID:      customerID,
		Lines:           lines,
		PaymentMethod:   method,
		Bank:            bank,
		DeliveryAddress: address,
		Discount:        discount.InexactFloat64(),
		Total:           total.InexactFloat64(),
		Status:          domain.StatusPending,
		Active:          true,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Orders.Create(o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// UpdateStatus normalizes the target status and enforces forward-only
// transitions; DELIVERED and CANCELLED are terminal.
func (s *OrderService) UpdateStatus(id, rawStatus string) (domain.Order, error) {
	oid, ok := validate.ID(id)
	if !ok {
		return domain.Order{}, domain.Formatf("id", "order id %q is not a valid identifier", id)
	}
	status, ok := domain.ParseOrderStatus(rawStatus)
	if !ok {
		return domain.Order{}, domain.Formatf("status",
			"invalid status %q; valid values: %v", rawStatus, domain.OrderStatusNames())
	}

	o, err := s.Orders.Get(oid)
	if err != nil {
		return domain.Order{}, err
	}
	if status != o.Status {
		if !o.Status.CanTransition(status) {
			return domain.Order{}, domain.BusinessRulef("status",
				"cannot move order from %s to %s", o.Status, status)
		}
		if err := s.Orders.UpdateStatus(oid, status); err != nil {
			return domain.Order{}, err
		}
		o.Status = status
	}
	return o, nil
}

func (s *OrderService) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	oid, ok := validate.ID(id)
	if !ok {
		return domain.SoftDeleteNotFound, domain.Formatf("id", "order id %q is not a valid identifier", id)
	}
	return s.Orders.SoftDelete(oid)
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	oid, ok := validate.ID(id)
	if !ok {
		return domain.Order{}, domain.Formatf("id", "order id %q is not a valid identifier", id)
	}
	return s.Orders.Get(oid)
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.Orders.ListActive()
}
