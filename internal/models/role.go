package models

import "strings"

// RoleName enumerates the roles the API understands. Role checks go
// through HasRole rather than ad hoc string comparisons per endpoint.
type RoleName string

const (
	RoleAdmin        RoleName = "Admin"
	RolePhotographer RoleName = "Photographer"
	RoleCustomer     RoleName = "Customer"
)

type Role struct {
	BaseModel
	Name RoleName `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`

	Users []User `gorm:"foreignKey:RoleID" json:"-"`
}

// ValidRole reports whether the name matches a known role.
func ValidRole(name RoleName) bool {
	switch name {
	case RoleAdmin, RolePhotographer, RoleCustomer:
		return true
	}
	return false
}

// HasRole is the single authorization predicate. The comparison is
// case-insensitive: legacy records and clients carry role names in
// mixed case ("ADMIN" vs "Admin"), so an exact match would lock those
// accounts out.
func HasRole(roleName RoleName, required RoleName) bool {
	return strings.EqualFold(string(roleName), string(required))
}

// HasAnyRole reports whether roleName matches any of the required roles.
func HasAnyRole(roleName RoleName, required ...RoleName) bool {
	for _, r := range required {
		if HasRole(roleName, r) {
			return true
		}
	}
	return false
}
