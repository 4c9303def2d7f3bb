package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"fastbite/internal/domain"
)

type EmployeeRepo struct{ db *sqlx.DB }

func NewEmployeeRepo(db *sqlx.DB) *EmployeeRepo { return &EmployeeRepo{db: db} }

const employeeCols = `id, name, surname, rut, role, email, phone, address, active, created_at, updated_at`

func (r *EmployeeRepo) Get(id string) (domain.Employee, error) {
	var e domain.Employee
	err := r.db.Get(&e, `SELECT `+employeeCols+` FROM employees WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, domain.NotFoundf("id", "employee %q not found", id)
	}
	return e, err
}

func (r *EmployeeRepo) List() ([]domain.Employee, error) {
	var out []domain.Employee
	err := r.db.Select(&out, `SELECT `+employeeCols+` FROM employees WHERE active = 1 ORDER BY surname, name`)
	return out, err
}

func (r *EmployeeRepo) Create(e domain.Employee) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkIdentityFree(tx, "employees", e.RUT, e.Email, e.ID); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO employees(id, name, surname, rut, role, email, phone, address, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Surname, e.RUT, e.Role, e.Email, e.Phone, e.Address, e.Active, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *EmployeeRepo) Update(e domain.Employee) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkIdentityFree(tx, "employees", e.RUT, e.Email, e.ID); err != nil {
		return err
	}
	res, err := tx.Exec(`
		UPDATE employees
		SET name = ?, surname = ?, rut = ?, role = ?, email = ?, phone = ?, address = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		e.Name, e.Surname, e.RUT, e.Role, e.Email, e.Phone, e.Address, e.Active, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("id", "employee %q not found", e.ID)
	}
	return tx.Commit()
}

func (r *EmployeeRepo) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	return softDelete(r.db, "employees", id)
}
