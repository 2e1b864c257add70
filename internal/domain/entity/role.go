// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the fixed privilege tier assigned to an account.
type Role string

const (
	// RoleUser indicates a regular marketplace user.
	RoleUser Role = "USER"
	// RoleVendor indicates a vendor who can create events and gear listings.
	RoleVendor Role = "VENDOR"
	// RoleAdmin indicates an administrative account.
	RoleAdmin Role = "ADMIN"
	// RoleSuperAdmin is the top privilege tier, provisioned out-of-band only.
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// Status gates authorization regardless of role.
type Status string

const (
	// StatusActive marks an account that may authenticate and act.
	StatusActive Status = "ACTIVE"
	// StatusInactive marks an account pending approval or suspended.
	StatusInactive Status = "INACTIVE"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// Provider is the identity-issuance method associated with an account.
type Provider string

const (
	// ProviderEmail is the only implemented provider: email plus password.
	ProviderEmail Provider = "EMAIL"
	// ProviderGoogle is reserved for a social login path that is not implemented.
	ProviderGoogle Provider = "GOOGLE"
	// ProviderFacebook is reserved for a social login path that is not implemented.
	ProviderFacebook Provider = "FACEBOOK"
)

// String returns the string representation of the Provider.
func (p Provider) String() string {
	return string(p)
}
