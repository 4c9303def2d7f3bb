package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"fastbite/internal/domain"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `id, name, surname, rut, email, phone, address, active, created_at, updated_at`

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, domain.NotFoundf("id", "customer %q not found", id)
	}
	return c, err
}

// Exists reports whether any customer (active or not) has the id.
func (r *CustomerRepo) Exists(id string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM customers WHERE id = ?`, id)
	return n > 0, err
}

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	var out []domain.Customer
	err := r.db.Select(&out, `SELECT `+customerCols+` FROM customers WHERE active = 1 ORDER BY surname, name`)
	return out, err
}

func (r *CustomerRepo) Create(c domain.Customer) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkIdentityFree(tx, "customers", c.RUT, c.Email, c.ID); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO customers(id, name, surname, rut, email, phone, address, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Surname, c.RUT, c.Email, c.Phone, c.Address, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CustomerRepo) Update(c domain.Customer) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkIdentityFree(tx, "customers", c.RUT, c.Email, c.ID); err != nil {
		return err
	}
	res, err := tx.Exec(`
		UPDATE customers
		SET name = ?, surname = ?, rut = ?, email = ?, phone = ?, address = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Surname, c.RUT, c.Email, c.Phone, c.Address, c.Active, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("id", "customer %q not found", c.ID)
	}
	return tx.Commit()
}

func (r *CustomerRepo) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	return softDelete(r.db, "customers", id)
}

// checkIdentityFree reports every offending unique field (rut, email) held by
// a different active record of the table. Inactive records do not count.
func checkIdentityFree(tx *sqlx.Tx, table, rut, email, excludeID string) error {
	var taken []string

	var n int
	if err := tx.Get(&n, `
		SELECT COUNT(*) FROM `+table+`
		WHERE rut = ? AND active = 1 AND id != ?`, rut, excludeID); err != nil {
		return err
	}
	if n > 0 {
		taken = append(taken, "rut")
	}

	if email != "" {
		if err := tx.Get(&n, `
			SELECT COUNT(*) FROM `+table+`
			WHERE LOWER(email) = LOWER(?) AND active = 1 AND id != ?`, email, excludeID); err != nil {
			return err
		}
		if n > 0 {
			taken = append(taken, "email")
		}
	}

	if len(taken) > 0 {
		return domain.Conflictf(strings.Join(taken, ","),
			"already registered to an active record: %s", strings.Join(taken, ", "))
	}
	return nil
}
