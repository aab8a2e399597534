package auth

import (
	"reflect"
	"testing"

	"github.com/dalinks/runticket-backend/models"
)

func deptRole(dept string) models.RoleAssignment {
	return models.RoleAssignment{Role: models.RoleDepartmentAdmin, Department: dept}
}

func superRole() models.RoleAssignment {
	return models.RoleAssignment{Role: models.RoleSuperAdmin}
}

func TestResolveAccess(t *testing.T) {
	tests := []struct {
		name      string
		roles     []models.RoleAssignment
		wantKind  AccessKind
		wantDepts []string
	}{
		{
			name:     "no roles means no access",
			roles:    nil,
			wantKind: NoAccess,
		},
		{
			name:     "single super admin row",
			roles:    []models.RoleAssignment{superRole()},
			wantKind: AllDepartments,
		},
		{
			name: "super admin wins over coexisting department rows",
			roles: []models.RoleAssignment{
				deptRole("Library"),
				superRole(),
				deptRole("Registrar"),
			},
			wantKind: AllDepartments,
		},
		{
			name:      "department rows collected",
			roles:     []models.RoleAssignment{deptRole("Library"), deptRole("Registrar")},
			wantKind:  DepartmentSet,
			wantDepts: []string{"Library", "Registrar"},
		},
		{
			name:      "duplicate department rows deduplicated",
			roles:     []models.RoleAssignment{deptRole("Library"), deptRole("Library")},
			wantKind:  DepartmentSet,
			wantDepts: []string{"Library"},
		},
		{
			name:     "department row without department ignored",
			roles:    []models.RoleAssignment{{Role: models.RoleDepartmentAdmin}},
			wantKind: NoAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAccess(tt.roles)
			if got.Kind != tt.wantKind {
				t.Fatalf("kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if tt.wantKind == DepartmentSet && !reflect.DeepEqual(got.Departments, tt.wantDepts) {
				t.Fatalf("departments = %v, want %v", got.Departments, tt.wantDepts)
			}
		})
	}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name       string
		access     Access
		department string
		want       bool
	}{
		{"super admin accesses anything", Access{Kind: AllDepartments}, "Library", true},
		{"member department allowed", Access{Kind: DepartmentSet, Departments: []string{"Library"}}, "Library", true},
		{"non-member department denied", Access{Kind: DepartmentSet, Departments: []string{"Library"}}, "Registrar", false},
		{"match is case sensitive", Access{Kind: DepartmentSet, Departments: []string{"Library"}}, "library", false},
		{"no access denies everything", Access{Kind: NoAccess}, "Library", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.access.CanAccess(tt.department); got != tt.want {
				t.Fatalf("CanAccess(%q) = %v, want %v", tt.department, got, tt.want)
			}
		})
	}
}

func TestDepartmentsJSON(t *testing.T) {
	if got := (Access{Kind: AllDepartments}).DepartmentsJSON(); got != nil {
		t.Fatalf("super admin departments = %v, want nil", got)
	}
	if got := (Access{Kind: NoAccess}).DepartmentsJSON(); got == nil || len(got) != 0 {
		t.Fatalf("no-access departments = %v, want empty list", got)
	}
	got := (Access{Kind: DepartmentSet, Departments: []string{"Library"}}).DepartmentsJSON()
	if !reflect.DeepEqual(got, []string{"Library"}) {
		t.Fatalf("department set = %v", got)
	}
}

func TestAccessRole(t *testing.T) {
	if got := (Access{Kind: AllDepartments}).Role(); got != "super_admin" {
		t.Fatalf("role = %q", got)
	}
	if got := (Access{Kind: DepartmentSet, Departments: []string{"Library"}}).Role(); got != "department_admin" {
		t.Fatalf("role = %q", got)
	}
	if got := (Access{Kind: NoAccess}).Role(); got != "none" {
		t.Fatalf("role = %q", got)
	}
}
