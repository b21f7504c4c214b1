package domain

import "time"

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// NormalizeRole coerces unrecognized roles to customer, so no user record
// can carry a role outside the known set.
func NormalizeRole(r Role) Role {
	if r.Valid() {
		return r
	}
	return RoleCustomer
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Role         Role
	CreatedAt    time.Time
}
