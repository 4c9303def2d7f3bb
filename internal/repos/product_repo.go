package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"fastbite/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, price, stock, category, description, active, created_at, updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFoundf("id", "product %q not found", id)
	}
	return p, err
}

// FindByID returns (zero, nil) when no product matches, mirroring the
// lookup capability other services consume.
func (r *ProductRepo) FindByID(id string) (domain.Product, bool, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, err
	}
	return p, true, nil
}

func (r *ProductRepo) FindByIDs(ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+productCols+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var out []domain.Product
	err = r.db.Select(&out, r.db.Rebind(query), args...)
	return out, err
}

// List returns active products, optionally restricted to one category.
func (r *ProductRepo) List(category string) ([]domain.Product, error) {
	var out []domain.Product
	if category != "" {
		err := r.db.Select(&out, `
			SELECT `+productCols+` FROM products
			WHERE active = 1 AND category = ?
			ORDER BY name`, category)
		return out, err
	}
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products
		WHERE active = 1
		ORDER BY category, name`)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkNameFree(tx, "products", p.Name, p.ID); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO products(id, name, price, stock, category, description, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Price, p.Stock, p.Category, p.Description, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites the mutable columns; the uniqueness check and the write
// share one transaction.
func (r *ProductRepo) Update(p domain.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkNameFree(tx, "products", p.Name, p.ID); err != nil {
		return err
	}
	res, err := tx.Exec(`
		UPDATE products
		SET name = ?, price = ?, stock = ?, category = ?, description = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Price, p.Stock, p.Category, p.Description, p.Active, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("id", "product %q not found", p.ID)
	}
	return tx.Commit()
}

func (r *ProductRepo) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	return softDelete(r.db, "products", id)
}

// checkNameFree rejects a name already held by a different active record.
func checkNameFree(tx *sqlx.Tx, table, name, excludeID string) error {
	var n int
	err := tx.Get(&n, `
		SELECT COUNT(*) FROM `+table+`
		WHERE LOWER(name) = LOWER(?) AND active = 1 AND id != ?`, name, excludeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Conflictf("name", "an active record named %q already exists", name)
	}
	return nil
}

// softDelete distinguishes not-found, already-inactive and a real
// active→inactive transition.
func softDelete(db *sqlx.DB, table, id string) (domain.SoftDeleteOutcome, error) {
	res, err := db.Exec(`UPDATE `+table+` SET active = 0, updated_at = ? WHERE id = ? AND active = 1`, now(), id)
	if err != nil {
		return domain.SoftDeleteNotFound, err
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return domain.SoftDeleteDone, nil
	}
	var exists int
	if err := db.Get(&exists, `SELECT COUNT(*) FROM `+table+` WHERE id = ?`, id); err != nil {
		return domain.SoftDeleteNotFound, err
	}
	if exists > 0 {
		return domain.SoftDeleteNoOp, nil
	}
	return domain.SoftDeleteNotFound, nil
}
