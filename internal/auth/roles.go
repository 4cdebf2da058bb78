package auth

import "sort"

// RoleName identifies one of the staff groups.
type RoleName string

const (
	RoleTrainee  RoleName = "trainee"
	RoleEmployee RoleName = "employee"
	RoleManager  RoleName = "manager"
)

// Roles lists the full role vocabulary in display order.
var Roles = []RoleName{RoleTrainee, RoleEmployee, RoleManager}

// RoleSet is an unordered set of role names. Membership is checked by plain
// intersection; no role implies another.
type RoleSet map[RoleName]struct{}

// NewRoleSet builds a set from the given names.
func NewRoleSet(names ...RoleName) RoleSet {
	set := make(RoleSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

var (
	// AnyStaff is the default requirement: any authenticated cook holding a role.
	AnyStaff = NewRoleSet(RoleTrainee, RoleEmployee, RoleManager)
	// Elevated gates menu changes.
	Elevated = NewRoleSet(RoleEmployee, RoleManager)
	// ManagerOnly gates staff management.
	ManagerOnly = NewRoleSet(RoleManager)
)

// Has reports whether name is in the set.
func (s RoleSet) Has(name RoleName) bool {
	_, ok := s[name]
	return ok
}

// Intersects reports whether the two sets share at least one role.
func (s RoleSet) Intersects(other RoleSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for name := range small {
		if large.Has(name) {
			return true
		}
	}
	return false
}

// Names returns the members sorted alphabetically.
func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// ParseRole maps a form or database value onto the vocabulary.
func ParseRole(value string) (RoleName, bool) {
	for _, role := range Roles {
		if string(role) == value {
			return role, true
		}
	}
	return "", false
}
