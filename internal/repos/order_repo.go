package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"fastbite/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, customer_id, payment_method, bank, delivery_address, discount, total, status, active, created_at`

// Create persists the order and decrements stock as one atomic unit. Each
// line's decrement is conditional on remaining stock, so a concurrent order
// that drained a product makes this one roll back with a retryable CONFLICT
// and no partial state becomes visible.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	for _, ln := range o.Lines {
		res, err := tx.Exec(`
			UPDATE products
			SET stock = stock - ?, updated_at = ?
			WHERE id = ? AND active = 1 AND stock >= ?`,
			ln.Qty, ts, ln.ProductID, ln.Qty)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.Conflictf("lines",
				"stock for product %q changed concurrently; retry the order", ln.Name)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO orders(id, customer_id, payment_method, bank, delivery_address, discount, total, status, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.CustomerID, o.PaymentMethod, o.Bank, o.DeliveryAddress,
		o.Discount, o.Total, o.Status, o.Active, o.CreatedAt, o.CreatedAt)
	if err != nil {
		return err
	}
	for _, ln := range o.Lines {
		if _, err := tx.Exec(`
			INSERT INTO order_lines(order_id, product_id, name, unit_price, qty)
			VALUES (?, ?, ?, ?, ?)`,
			o.ID, ln.ProductID, ln.Name, ln.UnitPrice, ln.Qty); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.NotFoundf("id", "order %q not found", id)
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.Lines, err = r.lines(id)
	return o, err
}

func (r *OrderRepo) lines(orderID string) ([]domain.OrderLine, error) {
	var out []domain.OrderLine
	err := r.db.Select(&out, `
		SELECT product_id, name, unit_price, qty
		FROM order_lines WHERE order_id = ?
		ORDER BY name`, orderID)
	return out, err
}

// ListActive returns active orders, newest first, lines included.
func (r *OrderRepo) ListActive() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		WHERE active = 1
		ORDER BY datetime(created_at) DESC`)
	if err != nil {
		return nil, err
	}
	for i := range out {
		lines, err := r.lines(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Lines = lines
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(id string, status domain.OrderStatus) error {
	res, err := r.db.Exec(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`, status, now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("id", "order %q not found", id)
	}
	return nil
}

func (r *OrderRepo) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	return softDelete(r.db, "orders", id)
}
