// Package nav filters the navigation menu by the signed-in user's grants.
// The filter only hides entries the server would reject anyway; it is a
// usability measure, not an enforcement boundary.
package nav

import "strings"

// Wildcard in an entry's role list makes it visible to every signed-in user.
const Wildcard = "*"

// Role names as the platform defines them.
const (
	RoleSuperAdmin     = "SuperAdmin"
	RoleAdmin          = "Admin"
	RoleHRManager      = "HRManager"
	RoleFinanceManager = "FinanceManager"
	RoleProjectManager = "ProjectManager"
	RoleTechnician     = "Technician"
	RoleEmployee       = "Employee"
)

// Authorizer answers role and permission questions for the signed-in user.
// *session.Store satisfies it.
type Authorizer interface {
	Authenticated() bool
	HasRole(name string) bool
	HasPermission(resource, action string) bool
}

// Entry is one navigation item.
type Entry struct {
	Label string
	Path  string
	// Roles lists the role names that may see the entry; Wildcard opens
	// it to everyone signed in.
	Roles []string
	// Permission is an optional "resource:action" requirement checked in
	// addition to the role match.
	Permission string
}

func (e Entry) visibleTo(a Authorizer) bool {
	for _, role := range e.Roles {
		if role == Wildcard {
			return true
		}
	}
	matched := false
	for _, role := range e.Roles {
		if a.HasRole(role) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	if e.Permission == "" {
		return true
	}
	// Only the first two segments matter: "audit:read:all" asks for the
	// read action on the audit resource.
	parts := strings.SplitN(e.Permission, ":", 3)
	action := ""
	if len(parts) > 1 {
		action = parts[1]
	}
	return a.HasPermission(parts[0], action)
}

// Visible returns the entries the user may see, in the exact order they
// were given. Without an identity the menu is empty.
func Visible(a Authorizer, entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	if a == nil || !a.Authenticated() {
		return out
	}
	for _, e := range entries {
		if e.visibleTo(a) {
			out = append(out, e)
		}
	}
	return out
}

// DefaultMenu returns the canonical menu in its fixed display order.
func DefaultMenu() []Entry {
	return []Entry{
		{Label: "Dashboard", Path: "/dashboard", Roles: []string{Wildcard}},
		{Label: "Onboarding", Path: "/onboarding", Roles: []string{RoleSuperAdmin, RoleAdmin, RoleHRManager}, Permission: "hr:write"},
		{Label: "Employees", Path: "/employees", Roles: []string{RoleSuperAdmin, RoleAdmin, RoleHRManager, RoleProjectManager}, Permission: "hr:read"},
		{Label: "Tasks", Path: "/tasks", Roles: []string{Wildcard}, Permission: "task:read"},
		{Label: "Leave", Path: "/leave", Roles: []string{Wildcard}},
		{Label: "Attendance", Path: "/attendance", Roles: []string{Wildcard}},
		{Label: "Payroll", Path: "/payroll", Roles: []string{RoleSuperAdmin, RoleFinanceManager, RoleHRManager}, Permission: "payroll:manage"},
		{Label: "HR Approvals", Path: "/hr/approvals", Roles: []string{RoleSuperAdmin, RoleHRManager, RoleProjectManager}, Permission: "hr:write"},
		{Label: "Reports", Path: "/reports", Roles: []string{RoleSuperAdmin, RoleAdmin, RoleFinanceManager}, Permission: "audit:read:all"},
	}
}
