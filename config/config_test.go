package config

import (
	"reflect"
	"sort"
	"testing"
)

func testAllowlist() *Allowlist {
	return &Allowlist{
		DepartmentAdmins: map[string]string{
			"ICT/Portal":    "ict@univ.edu",
			"Exams/Results": "ict@univ.edu",
			"Others":        "ict@univ.edu",
			"Library":       "library@univ.edu",
		},
		SuperAdmins: []string{"root@univ.edu"},
		StaffEmails: map[string]string{
			"Library": "library-desk@univ.edu",
			"Others":  "helpdesk@univ.edu",
		},
	}
}

func TestDepartmentsForEmail(t *testing.T) {
	al := testAllowlist()

	if got := al.DepartmentsForEmail("root@univ.edu"); got != nil {
		t.Fatalf("super admin departments = %v, want nil", got)
	}

	got := al.DepartmentsForEmail("ict@univ.edu")
	sort.Strings(got)
	want := []string{"Exams/Results", "ICT/Portal", "Others"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("shared admin departments = %v, want %v", got, want)
	}

	if got := al.DepartmentsForEmail("library@univ.edu"); !reflect.DeepEqual(got, []string{"Library"}) {
		t.Fatalf("single-department admin = %v", got)
	}

	if got := al.DepartmentsForEmail("nobody@univ.edu"); got == nil || len(got) != 0 {
		t.Fatalf("unknown email departments = %v, want empty list", got)
	}
}

func TestIsAuthorizedAdmin(t *testing.T) {
	al := testAllowlist()
	tests := []struct {
		email string
		want  bool
	}{
		{"root@univ.edu", true},
		{"ict@univ.edu", true},
		{"library@univ.edu", true},
		{"new@univ.edu", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := al.IsAuthorizedAdmin(tt.email); got != tt.want {
			t.Errorf("IsAuthorizedAdmin(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestStaffEmailFor(t *testing.T) {
	al := testAllowlist()
	if got := al.StaffEmailFor("Library"); got != "library-desk@univ.edu" {
		t.Fatalf("StaffEmailFor(Library) = %q", got)
	}
	if got := al.StaffEmailFor("Registrar"); got != "helpdesk@univ.edu" {
		t.Fatalf("unmapped nature should fall back to Others inbox, got %q", got)
	}
}

func TestLoadAllowlistFromEnv(t *testing.T) {
	t.Setenv("DEPARTMENT_ADMINS", "Library=lib@x.edu; Registrar=reg@x.edu")
	t.Setenv("SUPER_ADMIN_EMAILS", "boss@x.edu, chief@x.edu")
	t.Setenv("DEPARTMENT_STAFF_EMAILS", "")

	al := LoadAllowlist()

	if got := al.DepartmentAdmins["Library"]; got != "lib@x.edu" {
		t.Fatalf("Library admin = %q", got)
	}
	if got := al.DepartmentAdmins["Registrar"]; got != "reg@x.edu" {
		t.Fatalf("Registrar admin = %q", got)
	}
	if !al.IsSuperAdminEmail("chief@x.edu") {
		t.Fatal("chief@x.edu should be a super admin")
	}
	// staff emails fall back to defaults when the env var is empty
	if got := al.StaffEmailFor("Library"); got == "" {
		t.Fatal("staff email fallback missing")
	}
}

func TestLoadAllowlistDefaults(t *testing.T) {
	t.Setenv("DEPARTMENT_ADMINS", "")
	t.Setenv("SUPER_ADMIN_EMAILS", "")
	t.Setenv("DEPARTMENT_STAFF_EMAILS", "")

	al := LoadAllowlist()
	if len(al.DepartmentAdmins) == 0 || len(al.SuperAdmins) == 0 || len(al.StaffEmails) == 0 {
		t.Fatal("defaults should populate all three tables")
	}
}
