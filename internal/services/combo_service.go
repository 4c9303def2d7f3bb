package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fastbite/internal/domain"
	"fastbite/internal/repos"
	"fastbite/internal/validate"
)

// comboRate: a combo sells at 90% of the summed constituent prices.
var comboRate = decimal.NewFromFloat(0.9)

type ComboService struct {
	Combos *repos.ComboRepo
	Lookup ProductLookup
}

func NewComboService(combos *repos.ComboRepo, lookup ProductLookup) *ComboService {
	return &ComboService{Combos: combos, Lookup: lookup}
}

type ComboInput struct {
	Name        string   `json:"name"`
	ProductIDs  []string `json:"productIds"`
	Description string   `json:"description"`
}

type ComboPatch struct {
	Name        *string  `json:"name"`
	ProductIDs  []string `json:"productIds"`
	Description *string  `json:"description"`
	Active      *bool    `json:"active"`
}

// price resolves every constituent against the catalog and derives the combo
// price. Malformed, missing or inactive constituents reject the combo.
func (s *ComboService) price(productIDs []string) (float64, error) {
	if len(productIDs) == 0 {
		return 0, domain.BusinessRulef("productIds", "a combo needs at least one product")
	}
	for _, raw := range productIDs {
		if _, ok := validate.ID(raw); !ok {
			return 0, domain.Formatf("productIds", "productId %q is not a valid identifier", raw)
		}
	}

	products, err := s.Lookup.FindByIDs(productIDs)
	if err != nil {
		return 0, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var missing, inactive []string
	sum := decimal.Zero
	for _, id := range productIDs {
		p, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if !p.Active {
			inactive = append(inactive, p.Name)
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(p.Price))
	}
	if len(missing) > 0 {
		return 0, domain.NotFoundf("productIds", "products not found: %s", strings.Join(missing, ", "))
	}
	if len(inactive) > 0 {
		return 0, domain.BusinessRulef("productIds", "inactive products cannot form a combo: %s", strings.Join(inactive, ", "))
	}

	price := sum.Mul(comboRate).Round(2)
	if !price.IsPositive() {
		return 0, domain.BusinessRulef("price", "computed combo price must be positive")
	}
	return price.InexactFloat64(), nil
}

func (s *ComboService) Create(in ComboInput) (domain.Combo, error) {
	name, ok := validate.NonEmpty(in.Name)
	if !ok {
		return domain.Combo{}, domain.Formatf("name", "name is required")
	}
	price, err := s.price(in.ProductIDs)
	if err != nil {
		return domain.Combo{}, err
	}

	now := ts()
	cb := domain.Combo{
		ID:          uuid.NewString(),
		Name:        name,
		ProductIDs:  in.ProductIDs,
		Price:       price,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Combos.Create(cb); err != nil {
		return domain.Combo{}, err
	}
	return cb, nil
}

func (s *ComboService) Update(id string, patch ComboPatch) (domain.Combo, error) {
	cid, ok := validate.ID(id)
	if !ok {
		return domain.Combo{}, domain.Formatf("id", "combo id %q is not a valid identifier", id)
	}
	cb, err := s.Combos.Get(cid)
	if err != nil {
		return domain.Combo{}, err
	}

	if patch.Name != nil {
		name, ok := validate.NonEmpty(*patch.Name)
		if !ok {
			return domain.Combo{}, domain.Formatf("name", "name must not be blank")
		}
		cb.Name = name
	}
	if patch.Description != nil {
		cb.Description = *patch.Description
	}
	if patch.Active != nil {
		cb.Active = *patch.Active
	}
	// A new constituent list always forces a price recomputation.
	if patch.ProductIDs != nil {
		price, err := s.price(patch.ProductIDs)
		if err != nil {
			return domain.Combo{}, err
		}
		cb.ProductIDs = patch.ProductIDs
		cb.Price = price
	}
	cb.UpdatedAt = ts()

	if err := s.Combos.Update(cb); err != nil {
		return domain.Combo{}, err
	}
	return cb, nil
}

func (s *ComboService) Get(id string) (domain.Combo, error) {
	cid, ok := validate.ID(id)
	if !ok {
		return domain.Combo{}, domain.Formatf("id", "combo id %q is not a valid identifier", id)
	}
	return s.Combos.Get(cid)
}

func (s *ComboService) List() ([]domain.Combo, error) {
	return s.Combos.List()
}

func (s *ComboService) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	cid, ok := validate.ID(id)
	if !ok {
		return domain.SoftDeleteNotFound, domain.Formatf("id", "combo id %q is not a valid identifier", id)
	}
	return s.Combos.SoftDelete(cid)
}
