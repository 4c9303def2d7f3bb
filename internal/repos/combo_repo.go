package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"fastbite/internal/domain"
)

type ComboRepo struct{ db *sqlx.DB }

func NewComboRepo(db *sqlx.DB) *ComboRepo { return &ComboRepo{db: db} }

const comboCols = `id, name, price, description, active, created_at, updated_at`

func (r *ComboRepo) Get(id string) (domain.Combo, error) {
	var cb domain.Combo
	err := r.db.Get(&cb, `SELECT `+comboCols+` FROM combos WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Combo{}, domain.NotFoundf("id", "combo %q not found", id)
	}
	if err != nil {
		return domain.Combo{}, err
	}
	cb.ProductIDs, err = r.itemIDs(id)
	return cb, err
}

func (r *ComboRepo) List() ([]domain.Combo, error) {
	var out []domain.Combo
	if err := r.db.Select(&out, `SELECT `+comboCols+` FROM combos WHERE active = 1 ORDER BY name`); err != nil {
		return nil, err
	}
	for i := range out {
		ids, err := r.itemIDs(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].ProductIDs = ids
	}
	return out, nil
}

func (r *ComboRepo) itemIDs(comboID string) ([]string, error) {
	var ids []string
	err := r.db.Select(&ids, `
		SELECT product_id FROM combo_items
		WHERE combo_id = ? ORDER BY position`, comboID)
	return ids, err
}

func (r *ComboRepo) Create(cb domain.Combo) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkNameFree(tx, "combos", cb.Name, cb.ID); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO combos(id, name, price, description, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cb.ID, cb.Name, cb.Price, cb.Description, cb.Active, cb.CreatedAt, cb.UpdatedAt)
	if err != nil {
		return err
	}
	if err := insertItems(tx, cb.ID, cb.ProductIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// Update replaces the combo row and its constituent list in one transaction;
// the caller has already recomputed the price for the new list.
func (r *ComboRepo) Update(cb domain.Combo) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkNameFree(tx, "combos", cb.Name, cb.ID); err != nil {
		return err
	}
	res, err := tx.Exec(`
		UPDATE combos
		SET name = ?, price = ?, description = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		cb.Name, cb.Price, cb.Description, cb.Active, cb.UpdatedAt, cb.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("id", "combo %q not found", cb.ID)
	}
	if _, err := tx.Exec(`DELETE FROM combo_items WHERE combo_id = ?`, cb.ID); err != nil {
		return err
	}
	if err := insertItems(tx, cb.ID, cb.ProductIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func insertItems(tx *sqlx.Tx, comboID string, productIDs []string) error {
	for i, pid := range productIDs {
		if _, err := tx.Exec(`
			INSERT INTO combo_items(combo_id, position, product_id)
			VALUES (?, ?, ?)`, comboID, i, pid); err != nil {
			return err
		}
	}
	return nil
}

func (r *ComboRepo) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	return softDelete(r.db, "combos", id)
}
