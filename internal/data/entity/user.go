package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleSeller   UserRole = "seller"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// RoleStatus tracks a pending role change: none -> requested -> verified.
type RoleStatus string

const (
	RoleStatusNone      RoleStatus = "none"
	RoleStatusRequested RoleStatus = "requested"
	RoleStatusVerified  RoleStatus = "verified"
)

type User struct {
	Base
	Email   string         `db:"email"`
	Name    string         `db:"name"`
	Image   string         `db:"image"`
	Role    UserRole       `db:"role"`
	Status  RoleStatus     `db:"status"`
	Profile map[string]any `db:"profile"`
}
