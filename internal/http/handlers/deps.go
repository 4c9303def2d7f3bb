package handlers

import (
	"github.com/jmoiron/sqlx"

	"fastbite/internal/repos"
	"fastbite/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	ComboHandler    *ComboHandler
	CustomerHandler *CustomerHandler
	EmployeeHandler *EmployeeHandler
	OrderHandler    *OrderHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	prodRepo := repos.NewProductRepo(db)
	comboRepo := repos.NewComboRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	empRepo := repos.NewEmployeeRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	prodSvc := services.NewProductService(prodRepo)
	comboSvc := services.NewComboService(comboRepo, prodRepo)
	custSvc := services.NewCustomerService(custRepo)
	empSvc := services.NewEmployeeService(empRepo)
	orderSvc := services.NewOrderService(orderRepo, custRepo, prodRepo)

	return &Deps{
		ProductHandler:  &ProductHandler{Products: prodSvc},
		ComboHandler:    &ComboHandler{Combos: comboSvc},
		CustomerHandler: &CustomerHandler{Customers: custSvc},
		EmployeeHandler: &EmployeeHandler{Employees: empSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
	}
}
