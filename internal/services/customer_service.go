package services

import (
	"github.com/google/uuid"

	"fastbite/internal/domain"
	"fastbite/internal/repos"
	"fastbite/internal/validate"
)

type CustomerService struct {
	Customers *repos.CustomerRepo
}

func NewCustomerService(customers *repos.CustomerRepo) *CustomerService {
	return &CustomerService{Customers: customers}
}

type CustomerInput struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	RUT     string `json:"rut"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CustomerPatch struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	RUT     *string `json:"rut"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

func (s *CustomerService) Create(in CustomerInput) (domain.Customer, error) {
	name, ok := validate.NonEmpty(in.Name)
	if !ok {
		return domain.Customer{}, domain.Formatf("name", "name is required")
	}
	surname, ok := validate.NonEmpty(in.Surname)
	if !ok {
		return domain.Customer{}, domain.Formatf("surname", "surname is required")
	}
	address, ok := validate.NonEmpty(in.Address)
	if !ok {
		return domain.Customer{}, domain.Formatf("address", "address is required")
	}
	rut, ok := validate.RUT(in.RUT)
	if !ok {
		return domain.Customer{}, domain.Formatf("rut", "rut %q is not a valid RUT (XX.XXX.XXX-D, module-11)", in.RUT)
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return domain.Customer{}, domain.Formatf("email", "email %q is not valid", in.Email)
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return domain.Customer{}, domain.Formatf("phone", "phone must be exactly 9 digits")
	}

	now := ts()
	c := domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Surname:   surname,
		RUT:       rut,
		Email:     email,
		Phone:     phone,
		Address:   address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Customers.Create(c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Update(id string, patch CustomerPatch) (domain.Customer, error) {
	cid, ok := validate.ID(id)
	if !ok {
		return domain.Customer{}, domain.Formatf("id", "customer id %q is not a valid identifier", id)
	}
	c, err := s.Customers.Get(cid)
	if err != nil {
		return domain.Customer{}, err
	}

	if patch.Name != nil {
		name, ok := validate.NonEmpty(*patch.Name)
		if !ok {
			return domain.Customer{}, domain.Formatf("name", "name must not be blank")
		}
		c.Name = name
	}
	if patch.Surname != nil {
		surname, ok := validate.NonEmpty(*patch.Surname)
		if !ok {
			return domain.Customer{}, domain.Formatf("surname", "surname must not be blank")
		}
		c.Surname = surname
	}
	if patch.Address != nil {
		address, ok := validate.NonEmpty(*patch.Address)
		if !ok {
			return domain.Customer{}, domain.Formatf("address", "address must not be blank")
		}
		c.Address = address
	}
	if patch.RUT != nil {
		rut, ok := validate.RUT(*patch.RUT)
		if !ok {
			return domain.Customer{}, domain.Formatf("rut", "rut %q is not a valid RUT (XX.XXX.XXX-D, module-11)", *patch.RUT)
		}
		c.RUT = rut
	}
	if patch.Email != nil {
		email, ok := validate.Email(*patch.Email)
		if !ok {
			return domain.Customer{}, domain.Formatf("email", "email %q is not valid", *patch.Email)
		}
		c.Email = email
	}
	if patch.Phone != nil {
		phone, ok := validate.Phone(*patch.Phone)
		if !ok {
			return domain.Customer{}, domain.Formatf("phone", "phone must be exactly 9 digits")
		}
		c.Phone = phone
	}
	if patch.Active != nil {
		c.Active = *patch.Active
	}
	c.UpdatedAt = ts()

	if err := s.Customers.Update(c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Get(id string) (domain.Customer, error) {
	cid, ok := validate.ID(id)
	if !ok {
		return domain.Customer{}, domain.Formatf("id", "customer id %q is not a valid identifier", id)
	}
	return s.Customers.Get(cid)
}

func (s *CustomerService) List() ([]domain.Customer, error) {
	return s.Customers.List()
}

func (s *CustomerService) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	cid, ok := validate.ID(id)
	if !ok {
		return domain.SoftDeleteNotFound, domain.Formatf("id", "customer id %q is not a valid identifier", id)
	}
	return s.Customers.SoftDelete(cid)
}
