package config

import (
	"os"
	"strings"
)

// Allowlist is the static admin-entitlement configuration: which email
// administers which department(s), which emails are super admins, and which
// staff inbox gets notified per nature of complaint. Loaded once at boot and
// passed to the handlers that need it, so tests can substitute their own.
type Allowlist struct {
	DepartmentAdmins map[string]string // department -> admin email
	SuperAdmins      []string
	StaffEmails      map[string]string // nature of complaint -> staff inbox
}

var defaultDepartmentAdmins = map[string]string{
	"ICT/Portal":           "ict@run.edu.ng",
	"Payment/Bursary":      "studentaccount@run.edu.ng",
	"Exams/Results":        "ict@run.edu.ng",
	"Hostel/Accommodation": "dssscomplaints@run.edu.ng",
	"Library":              "library@run.edu.ng",
	"Registrar":            "registrar@run.edu.ng",
	"Others":               "ict@run.edu.ng",
}

var defaultSuperAdmins = []string{"ict@run.edu.ng"}

var defaultStaffEmails = map[string]string{
	"ICT/Portal":           "support@run.edu.ng",
	"Payment/Bursary":      "studentaccount@run.edu.ng",
	"Exams/Results":        "support@run.edu.ng",
	"Hostel/Accommodation": "dssscomplaints@run.edu.ng",
	"Library":              "library@run.edu.ng",
	"Registrar":            "registrar@run.edu.ng",
	"Others":               "support@run.edu.ng",
}

// LoadAllowlist builds the allowlist from the environment, falling back to
// the compiled-in defaults. DEPARTMENT_ADMINS and DEPARTMENT_STAFF_EMAILS are
// semicolon-separated "Department=email" pairs, SUPER_ADMIN_EMAILS is a
// comma-separated list.
func LoadAllowlist() *Allowlist {
	al := &Allowlist{
		DepartmentAdmins: parsePairs(os.Getenv("DEPARTMENT_ADMINS"), defaultDepartmentAdmins),
		SuperAdmins:      parseList(os.Getenv("SUPER_ADMIN_EMAILS"), defaultSuperAdmins),
		StaffEmails:      parsePairs(os.Getenv("DEPARTMENT_STAFF_EMAILS"), defaultStaffEmails),
	}
	return al
}

func parsePairs(raw string, fallback map[string]string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if len(out) == 0 {
		for k, v := range fallback {
			out[k] = v
		}
	}
	return out
}

func parseList(raw string, fallback []string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		out = append(out, fallback...)
	}
	return out
}

func (a *Allowlist) IsSuperAdminEmail(email string) bool {
	for _, e := range a.SuperAdmins {
		if e == email {
			return true
		}
	}
	return false
}

// DepartmentsForEmail returns nil for super admins (all departments), the
// list of administered departments otherwise. An empty list means the email
// is not an admin at all.
func (a *Allowlist) DepartmentsForEmail(email string) []string {
	if a.IsSuperAdminEmail(email) {
		return nil
	}
	depts := []string{}
	for dept, adminEmail := range a.DepartmentAdmins {
		if adminEmail == email {
			depts = append(depts, dept)
		}
	}
	return depts
}

// IsAuthorizedAdmin reports whether the email may sign up at all.
func (a *Allowlist) IsAuthorizedAdmin(email string) bool {
	if a.IsSuperAdminEmail(email) {
		return true
	}
	for _, adminEmail := range a.DepartmentAdmins {
		if adminEmail == email {
			return true
		}
	}
	return false
}

// StaffEmailFor resolves the staff inbox notified for a nature of complaint.
// Unknown natures fall back to the "Others" inbox.
func (a *Allowlist) StaffEmailFor(nature string) string {
	if email, ok := a.StaffEmails[nature]; ok {
		return email
	}
	return a.StaffEmails["Others"]
}
