package services

import (
	"time"

	"github.com/google/uuid"

	"fastbite/internal/domain"
	"fastbite/internal/repos"
	"fastbite/internal/validate"
)

func ts() string { return time.Now().UTC().Format(time.RFC3339) }

type ProductService struct {
	Products *repos.ProductRepo
}

func NewProductService(products *repos.ProductRepo) *ProductService {
	return &ProductService{Products: products}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// ProductPatch carries only the fields present in an update request.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Active      *bool    `json:"active"`
}

func (s *ProductService) Create(in ProductInput) (domain.Product, error) {
	name, ok := validate.NonEmpty(in.Name)
	if !ok {
		return domain.Product{}, domain.Formatf("name", "name is required")
	}
	if in.Price <= 0 {
		return domain.Product{}, domain.Formatf("price", "price must be positive")
	}
	if in.Stock < 0 {
		return domain.Product{}, domain.Formatf("stock", "stock must not be negative")
	}
	category, ok := validate.NonEmpty(in.Category)
	if !ok {
		return domain.Product{}, domain.Formatf("category", "category is required")
	}

	now := ts()
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    category,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Products.Create(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *ProductService) Update(id string, patch ProductPatch) (domain.Product, error) {
	pid, ok := validate.ID(id)
	if !ok {
		return domain.Product{}, domain.Formatf("id", "product id %q is not a valid identifier", id)
	}
	p, err := s.Products.Get(pid)
	if err != nil {
		return domain.Product{}, err
	}

	if patch.Name != nil {
		name, ok := validate.NonEmpty(*patch.Name)
		if !ok {
			return domain.Product{}, domain.Formatf("name", "name must not be blank")
		}
		p.Name = name
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return domain.Product{}, domain.Formatf("price", "price must be positive")
		}
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return domain.Product{}, domain.Formatf("stock", "stock must not be negative")
		}
		p.Stock = *patch.Stock
	}
	if patch.Category != nil {
		category, ok := validate.NonEmpty(*patch.Category)
		if !ok {
			return domain.Product{}, domain.Formatf("category", "category must not be blank")
		}
		p.Category = category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	p.UpdatedAt = ts()

	if err := s.Products.Update(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *ProductService) Get(id string) (domain.Product, error) {
	pid, ok := validate.ID(id)
	if !ok {
		return domain.Product{}, domain.Formatf("id", "product id %q is not a valid identifier", id)
	}
	return s.Products.Get(pid)
}

func (s *ProductService) List(category string) ([]domain.Product, error) {
	return s.Products.List(category)
}

func (s *ProductService) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	pid, ok := validate.ID(id)
	if !ok {
		return domain.SoftDeleteNotFound, domain.Formatf("id", "product id %q is not a valid identifier", id)
	}
	return s.Products.SoftDelete(pid)
}
