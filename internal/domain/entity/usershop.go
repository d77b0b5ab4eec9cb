package entity

import "time"

// Role is the level of access a user has on one shop.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Capability is an action class checked against the caller's role.
type Capability string

const (
	CapRead   Capability = "read"
	CapWrite  Capability = "write"
	CapDelete Capability = "delete"
	CapManage Capability = "manage" // role administration on the shop
)

// Can reports whether the role grants the capability.
// OWNER: everything. EDITOR: read and write. VIEWER: read only.
func (r Role) Can(c Capability) bool {
	switch r {
	case RoleOwner:
		return true
	case RoleEditor:
		return c == CapRead || c == CapWrite
	case RoleViewer:
		return c == CapRead
	}
	return false
}

// UserShop is the tenancy edge: the sole source of authorization truth.
// The (UserID, ShopID) pair is unique; a user holds at most one role per shop.
type UserShop struct {
	UserID    string
	ShopID    string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
