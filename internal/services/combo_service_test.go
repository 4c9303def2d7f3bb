package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"fastbite/internal/domain"
	"fastbite/internal/repos"
	"fastbite/internal/services"
)

func newComboEnv(t *testing.T) (*env, *services.ComboService) {
	t.Helper()
	e := newEnv(t)
	svc := services.NewComboService(repos.NewComboRepo(e.db), e.products)
	return e, svc
}

func TestComboCreate_DerivedPrice(t *testing.T) {
	e, combos := newComboEnv(t)
	a := e.addProduct(t, "Classic Burger", 1990, 10, true)
	b := e.addProduct(t, "Cola 500ml", 2990, 10, true)

	cb, err := combos.Create(services.ComboInput{
		Name:       "Lunch Deal",
		ProductIDs: []string{a, b},
	})
	require.NoError(t, err)
	// 90% of 4980, rounded to 2 decimals.
	require.Equal(t, 4482.0, cb.Price)
	require.Equal(t, []string{a, b}, cb.ProductIDs)
	require.True(t, cb.Active)

	got, err := combos.Get(cb.ID)
	require.NoError(t, err)
	require.Equal(t, cb.Price, got.Price)
	require.Equal(t, []string{a, b}, got.ProductIDs)
}

func TestComboCreate_Rounding(t *testing.T) {
	e, combos := newComboEnv(t)
	a := e.addProduct(t, "Sundae", 3.33, 10, true)

	cb, err := combos.Create(services.ComboInput{Name: "Sweet", ProductIDs: []string{a}})
	require.NoError(t, err)
	// 3.33 * 0.9 = 2.997 → 3.00
	require.Equal(t, 3.0, cb.Price)
}

func TestComboCreate_Rejections(t *testing.T) {
	e, combos := newComboEnv(t)
	a := e.addProduct(t, "Classic Burger", 1990, 10, true)
	inactive := e.addProduct(t, "Old Burger", 900, 5, false)

	_, err := combos.Create(services.ComboInput{Name: "Empty"})
	require.Equal(t, domain.KindBusinessRule, domain.KindOf(err))

	_, err = combos.Create(services.ComboInput{Name: "Bad", ProductIDs: []string{"not-an-id"}})
	require.Equal(t, domain.KindFormat, domain.KindOf(err))

	missing := uuid.NewString()
	_, err = combos.Create(services.ComboInput{Name: "Ghost", ProductIDs: []string{a, missing}})
	require.True(t, domain.IsNotFound(err))
	require.Contains(t, err.Error(), missing)

	_, err = combos.Create(services.ComboInput{Name: "Stale", ProductIDs: []string{a, inactive}})
	require.Equal(t, domain.KindBusinessRule, domain.KindOf(err))
	require.Contains(t, err.Error(), "Old Burger")
}

func TestComboUpdate_ListChangeRecomputesPrice(t *testing.T) {
	e, combos := newComboEnv(t)
	a := e.addProduct(t, "Classic Burger", 1000, 10, true)
	b := e.addProduct(t, "French Fries", 500, 10, true)

	cb, err := combos.Create(services.ComboInput{Name: "Solo", ProductIDs: []string{a}})
	require.NoError(t, err)
	require.Equal(t, 900.0, cb.Price)

	cb, err = combos.Update(cb.ID, services.ComboPatch{ProductIDs: []string{a, b}})
	require.NoError(t, err)
	require.Equal(t, 1350.0, cb.Price)

	// A name-only patch leaves the derived price alone.
	name := "Solo Plus"
	cb, err = combos.Update(cb.ID, services.ComboPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, 1350.0, cb.Price)
	require.Equal(t, "Solo Plus", cb.Name)
}

func TestComboCreate_NameConflictAmongActive(t *testing.T) {
	e, combos := newComboEnv(t)
	a := e.addProduct(t, "Classic Burger", 1000, 10, true)

	first, err := combos.Create(services.ComboInput{Name: "Lunch Deal", ProductIDs: []string{a}})
	require.NoError(t, err)

	_, err = combos.Create(services.ComboInput{Name: "lunch deal", ProductIDs: []string{a}})
	require.True(t, domain.IsConflict(err))

	// A soft-deleted combo frees its name.
	outcome, err := combos.SoftDelete(first.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SoftDeleteDone, outcome)

	_, err = combos.Create(services.ComboInput{Name: "Lunch Deal", ProductIDs: []string{a}})
	require.NoError(t, err)
}
