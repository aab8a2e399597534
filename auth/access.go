// Package auth holds the role/session authorization core: resolving role
// rows into an access decision and validating sessions and reset tokens.
package auth

import (
	"github.com/dalinks/runticket-backend/models"
)

type AccessKind int

const (
	// NoAccess: no admin privilege at all.
	NoAccess AccessKind = iota
	// DepartmentSet: access limited to an explicit set of departments.
	DepartmentSet
	// AllDepartments: super admin, unconditional access.
	AllDepartments
)

// Access is the resolved entitlement of a session. It replaces the legacy
// "departments == null means everything" convention with an explicit tag;
// DepartmentsJSON restores that convention at the API boundary.
type Access struct {
	Kind        AccessKind
	Departments []string // populated only for DepartmentSet
}

// ResolveAccess folds a user's role rows into one access decision. Any
// super_admin row wins regardless of coexisting department rows. Department
// lists are deduplicated; duplicates should be impossible by construction
// but are not assumed away.
func ResolveAccess(roles []models.RoleAssignment) Access {
	for _, r := range roles {
		if r.Role == models.RoleSuperAdmin {
			return Access{Kind: AllDepartments}
		}
	}

	seen := make(map[string]struct{})
	depts := []string{}
	for _, r := range roles {
		if r.Role != models.RoleDepartmentAdmin || r.Department == "" {
			continue
		}
		if _, dup := seen[r.Department]; dup {
			continue
		}
		seen[r.Department] = struct{}{}
		depts = append(depts, r.Department)
	}

	if len(depts) == 0 {
		return Access{Kind: NoAccess}
	}
	return Access{Kind: DepartmentSet, Departments: depts}
}

// CanAccess reports whether the access covers a department. Matching is
// case-sensitive and exact; the department values are a fixed enum and are
// never normalized.
func (a Access) CanAccess(department string) bool {
	switch a.Kind {
	case AllDepartments:
		return true
	case DepartmentSet:
		for _, d := range a.Departments {
			if d == department {
				return true
			}
		}
	}
	return false
}

// Role returns the wire-format role name.
func (a Access) Role() string {
	switch a.Kind {
	case AllDepartments:
		return "super_admin"
	case DepartmentSet:
		return "department_admin"
	}
	return "none"
}

// DepartmentsJSON yields the legacy wire shape: null for super admins (all
// departments), the explicit list otherwise, an empty list for no access.
func (a Access) DepartmentsJSON() []string {
	switch a.Kind {
	case AllDepartments:
		return nil
	case DepartmentSet:
		return a.Departments
	}
	return []string{}
}
