package domain

type Product struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Price       float64 `db:"price" json:"price"`
	Stock       int     `db:"stock" json:"stock"`
	Category    string  `db:"category" json:"category"`
	Description string  `db:"description" json:"description,omitempty"`
	Active      bool    `db:"active" json:"active"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt"`
}

// Combo price is always derived: 90% of the sum of the constituent
// active product prices, rounded to 2 decimals. Never client-supplied.
type Combo struct {
	ID          string   `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	ProductIDs  []string `db:"-" json:"productIds"`
	Price       float64  `db:"price" json:"price"`
	Description string   `db:"description" json:"description,omitempty"`
	Active      bool     `db:"active" json:"active"`
	CreatedAt   string   `db:"created_at" json:"createdAt"`
	UpdatedAt   string   `db:"updated_at" json:"updatedAt"`
}

type Customer struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Surname   string `db:"surname" json:"surname"`
	RUT       string `db:"rut" json:"rut"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
	Address   string `db:"address" json:"address"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

type EmployeeRole string

const (
	RoleAdministrative EmployeeRole = "ADMINISTRATIVE"
	RoleCashier        EmployeeRole = "CASHIER"
	RoleCook           EmployeeRole = "COOK"
	RoleDelivery       EmployeeRole = "DELIVERY"
)

var employeeRoles = []EmployeeRole{RoleAdministrative, RoleCashier, RoleCook, RoleDelivery}

// ParseEmployeeRole accepts a role name, case-insensitive.
func ParseEmployeeRole(s string) (EmployeeRole, bool) {
	for _, r := range employeeRoles {
		if string(r) == normalizeEnum(s) {
			return r, true
		}
	}
	return "", false
}

func EmployeeRoleNames() []string {
	out := make([]string, len(employeeRoles))
	for i, r := range employeeRoles {
		out[i] = string(r)
	}
	return out
}

type Employee struct {
	ID        string       `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Surname   string       `db:"surname" json:"surname"`
	RUT       string       `db:"rut" json:"rut"`
	Role      EmployeeRole `db:"role" json:"role"`
	Email     string       `db:"email" json:"email,omitempty"`
	Phone     string       `db:"phone" json:"phone,omitempty"`
	Address   string       `db:"address" json:"address,omitempty"`
	Active    bool         `db:"active" json:"active"`
	CreatedAt string       `db:"created_at" json:"createdAt"`
	UpdatedAt string       `db:"updated_at" json:"updatedAt"`
}

// SoftDeleteOutcome distinguishes not-found, already-inactive and a real
// transition. Re-deleting an inactive record is a defined no-op, not an error.
type SoftDeleteOutcome int

const (
	SoftDeleteNotFound SoftDeleteOutcome = iota
	SoftDeleteNoOp
	SoftDeleteDone
)
