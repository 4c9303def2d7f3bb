package services

import (
	"github.com/google/uuid"

	"fastbite/internal/domain"
	"fastbite/internal/repos"
	"fastbite/internal/validate"
)

type EmployeeService struct {
	Employees *repos.EmployeeRepo
}

func NewEmployeeService(employees *repos.EmployeeRepo) *EmployeeService {
	return &EmployeeService{Employees: employees}
}

// Email, phone and address are optional for employees; role is mandatory.
type EmployeeInput struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	RUT     string `json:"rut"`
	Role    string `json:"role"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type EmployeePatch struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	RUT     *string `json:"rut"`
	Role    *string `json:"role"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

func (s *EmployeeService) Create(in EmployeeInput) (domain.Employee, error) {
	name, ok := validate.NonEmpty(in.Name)
	if !ok {
		return domain.Employee{}, domain.Formatf("name", "name is required")
	}
	surname, ok := validate.NonEmpty(in.Surname)
	if !ok {
		return domain.Employee{}, domain.Formatf("surname", "surname is required")
	}
	rut, ok := validate.RUT(in.RUT)
	if !ok {
		return domain.Employee{}, domain.Formatf("rut", "rut %q is not a valid RUT (XX.XXX.XXX-D, module-11)", in.RUT)
	}
	role, ok := domain.ParseEmployeeRole(in.Role)
	if !ok {
		return domain.Employee{}, domain.Formatf("role",
			"invalid role %q; valid values: %v", in.Role, domain.EmployeeRoleNames())
	}

	email := ""
	if in.Email != "" {
		if email, ok = validate.Email(in.Email); !ok {
			return domain.Employee{}, domain.Formatf("email", "email %q is not valid", in.Email)
		}
	}
	phone := ""
	if in.Phone != "" {
		if phone, ok = validate.Phone(in.Phone); !ok {
			return domain.Employee{}, domain.Formatf("phone", "phone must be exactly 9 digits")
		}
	}

	now := ts()
	e := domain.Employee{
		ID:        uuid.NewString(),
		Name:      name,
		Surname:   surname,
		RUT:       rut,
		Role:      role,
		Email:     email,
		Phone:     phone,
		Address:   in.Address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Employees.Create(e); err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

func (s *EmployeeService) Update(id string, patch EmployeePatch) (domain.Employee, error) {
	eid, ok := validate.ID(id)
	if !ok {
		return domain.Employee{}, domain.Formatf("id", "employee id %q is not a valid identifier", id)
	}
	e, err := s.Employees.Get(eid)
	if err != nil {
		return domain.Employee{}, err
	}

	if patch.Name != nil {
		name, ok := validate.NonEmpty(*patch.Name)
		if !ok {
			return domain.Employee{}, domain.Formatf("name", "name must not be blank")
		}
		e.Name = name
	}
	if patch.Surname != nil {
		surname, ok := validate.NonEmpty(*patch.Surname)
		if !ok {
			return domain.Employee{}, domain.Formatf("surname", "surname must not be blank")
		}
		e.Surname = surname
	}
	if patch.RUT != nil {
		rut, ok := validate.RUT(*patch.RUT)
		if !ok {
			return domain.Employee{}, domain.Formatf("rut", "rut %q is not a valid RUT (XX.XXX.XXX-D, module-11)", *patch.RUT)
		}
		e.RUT = rut
	}
	if patch.Role != nil {
		role, ok := domain.ParseEmployeeRole(*patch.Role)
		if !ok {
			return domain.Employee{}, domain.Formatf("role",
				"invalid role %q; valid values: %v", *patch.Role, domain.EmployeeRoleNames())
		}
		e.Role = role
	}
	if patch.Email != nil {
		email := ""
		if *patch.Email != "" {
			if email, ok = validate.Email(*patch.Email); !ok {
				return domain.Employee{}, domain.Formatf("email", "email %q is not valid", *patch.Email)
			}
		}
		e.Email = email
	}
	if patch.Phone != nil {
		phone := ""
		if *patch.Phone != "" {
			if phone, ok = validate.Phone(*patch.Phone); !ok {
				return domain.Employee{}, domain.Formatf("phone", "phone must be exactly 9 digits")
			}
		}
		e.Phone = phone
	}
	if patch.Address != nil {
		e.Address = *patch.Address
	}
	if patch.Active != nil {
		e.Active = *patch.Active
	}
	e.UpdatedAt = ts()

	if err := s.Employees.Update(e); err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

func (s *EmployeeService) Get(id string) (domain.Employee, error) {
	eid, ok := validate.ID(id)
	if !ok {
		return domain.Employee{}, domain.Formatf("id", "employee id %q is not a valid identifier", id)
	}
	return s.Employees.Get(eid)
}

func (s *EmployeeService) List() ([]domain.Employee, error) {
	return s.Employees.List()
}

func (s *EmployeeService) SoftDelete(id string) (domain.SoftDeleteOutcome, error) {
	eid, ok := validate.ID(id)
	if !ok {
		return domain.SoftDeleteNotFound, domain.Formatf("id", "employee id %q is not a valid identifier", id)
	}
	return s.Employees.SoftDelete(eid)
}
