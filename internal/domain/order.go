package domain

import "strings"

type PaymentMethod string

const (
	PayDebit  PaymentMethod = "DEBIT"
	PayCredit PaymentMethod = "CREDIT"
	PayCash   PaymentMethod = "CASH"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(normalizeEnum(s)) {
	case PayDebit:
		return PayDebit, true
	case PayCredit:
		return PayCredit, true
	case PayCash:
		return PayCash, true
	}
	return "", false
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusPreparing: 1,
	StatusReady:     2,
	StatusDelivered: 3,
}

// ParseOrderStatus normalizes case and embedded spaces ("listo para retiro"
// style inputs collapse to the enum form) before matching.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(normalizeEnum(s))
	if _, ok := statusRank[st]; ok || st == StatusCancelled {
		return st, true
	}
	return "", false
}

func OrderStatusNames() []string {
	return []string{
		string(StatusPending), string(StatusPreparing), string(StatusReady),
		string(StatusDelivered), string(StatusCancelled),
	}
}

// CanTransition enforces forward-only movement. DELIVERED and CANCELLED are
// terminal; CANCELLED is reachable from any non-terminal status.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s == StatusDelivered || s == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusRank[to] > statusRank[s]
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
}

// OrderLine is a frozen snapshot of the product at order time, decoupled
// from later catalog changes.
type OrderLine struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice"`
	Qty       int     `db:"qty" json:"quantity"`
}

type Order struct {
	ID              string        `db:"id" json:"id"`
	CustomerID      string        `db:"customer_id" json:"customerId"`
	Lines           []OrderLine   `db:"-" json:"lines"`
	PaymentMethod   PaymentMethod `db:"payment_method" json:"paymentMethod"`
	Bank            string        `db:"bank" json:"bank,omitempty"`
	DeliveryAddress string        `db:"delivery_address" json:"deliveryAddress"`
	Discount        float64       `db:"discount" json:"discount"`
	Total           float64       `db:"total" json:"total"`
	Status          OrderStatus   `db:"status" json:"status"`
	Active          bool          `db:"active" json:"active"`
	CreatedAt       string        `db:"created_at" json:"createdAt"`
}

// ValidBanks is the allow-list for non-cash payments.
var ValidBanks = map[string]bool{
	"Santander": true,
	"Chile":     true,
	"BCI":       true,
	"Estado":    true,
}

// DiscountRates maps discount-eligible banks to their flat rate, applied
// when the payment method is DEBIT or CREDIT.
var DiscountRates = map[string]float64{
	"Santander": 0.10,
}
