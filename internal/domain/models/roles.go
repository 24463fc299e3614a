// internal/domain/models/roles.go
package models

// Role identifies which identity collection a record lives in.
//
// The set is closed: every switch over Role in this codebase handles all five
// values plus a default that rejects unknown strings coming off the wire.
type Role string

const (
	RoleCampus     Role = "campus"
	RoleDistrict   Role = "district"
	RoleCommunity  Role = "community"
	RoleCell       Role = "cell"
	RoleSuperAdmin Role = "superadmin"
)

// CascadeOrder is the fixed probe order for the universal login cascade:
// senior units first, SuperAdmin last. The ordering reflects organizational
// hierarchy, not security sensitivity, and is pinned by tests.
var CascadeOrder = []Role{RoleCampus, RoleDistrict, RoleCommunity, RoleCell, RoleSuperAdmin}

// UnitRoles are the four organizational-unit variants (everything except
// SuperAdmin). They share the org_units document shape and store.
var UnitRoles = []Role{RoleCampus, RoleDistrict, RoleCommunity, RoleCell}

// ParseRole maps a wire string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCampus, RoleDistrict, RoleCommunity, RoleCell, RoleSuperAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Collection returns the Mongo collection name backing the role.
func (r Role) Collection() string {
	switch r {
	case RoleCampus:
		return "campuses"
	case RoleDistrict:
		return "districts"
	case RoleCommunity:
		return "communities"
	case RoleCell:
		return "cells"
	case RoleSuperAdmin:
		return "superadmins"
	}
	return ""
}

func (r Role) String() string { return string(r) }
