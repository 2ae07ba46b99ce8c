package nav

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeAuthz is a canned Authorizer.
type fakeAuthz struct {
	authenticated bool
	superuser     bool
	roles         map[string]bool
	perms         map[string]bool
}

func (f fakeAuthz) Authenticated() bool { return f.authenticated }

func (f fakeAuthz) HasRole(name string) bool {
	if !f.authenticated {
		return false
	}
	return f.superuser || f.roles[name]
}

func (f fakeAuthz) HasPermission(resource, action string) bool {
	if !f.authenticated {
		return false
	}
	return f.superuser || f.perms[resource+":"+action]
}

func labels(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

func TestNoIdentityMeansEmptyMenu(t *testing.T) {
	t.Parallel()

	got := Visible(fakeAuthz{}, DefaultMenu())
	if len(got) != 0 {
		t.Fatalf("signed-out user should see nothing, got %v", labels(got))
	}

	if got := Visible(nil, DefaultMenu()); len(got) != 0 {
		t.Fatalf("nil authorizer should see nothing, got %v", labels(got))
	}
}

func TestSuperuserSeesEverythingInOrder(t *testing.T) {
	t.Parallel()

	menu := DefaultMenu()
	got := Visible(fakeAuthz{authenticated: true, superuser: true}, menu)
	if diff := cmp.Diff(labels(menu), labels(got)); diff != "" {
		t.Errorf("superuser menu mismatch (-want +got):\n%s", diff)
	}
}

func TestEmployeeMenu(t *testing.T) {
	t.Parallel()

	authz := fakeAuthz{
		authenticated: true,
		roles:         map[string]bool{RoleEmployee: true},
	}
	got := Visible(authz, DefaultMenu())
	want := []string{"Dashboard", "Tasks", "Leave", "Attendance"}
	if diff := cmp.Diff(want, labels(got)); diff != "" {
		t.Errorf("employee menu mismatch (-want +got):\n%s", diff)
	}
}

func TestRoleWithoutPermissionStaysHidden(t *testing.T) {
	t.Parallel()

	// HRManager role but no hr:read grant: the Employees entry needs
	// both and must stay hidden.
	authz := fakeAuthz{
		authenticated: true,
		roles:         map[string]bool{RoleHRManager: true},
	}
	for _, e := range Visible(authz, DefaultMenu()) {
		if e.Label == "Employees" {
			t.Fatal("Employees visible without the hr:read permission")
		}
	}

	authz.perms = map[string]bool{"hr:read": true}
	found := false
	for _, e := range Visible(authz, DefaultMenu()) {
		if e.Label == "Employees" {
			found = true
		}
	}
	if !found {
		t.Fatal("Employees hidden despite role and permission both present")
	}
}

func TestPermissionScopeSuffixIsIgnored(t *testing.T) {
	t.Parallel()

	// Reports requires audit:read:all; only the resource and action
	// matter when asking the authorizer.
	authz := fakeAuthz{
		authenticated: true,
		roles:         map[string]bool{RoleFinanceManager: true},
		perms:         map[string]bool{"audit:read": true},
	}
	found := false
	for _, e := range Visible(authz, DefaultMenu()) {
		if e.Label == "Reports" {
			found = true
		}
	}
	if !found {
		t.Fatal("Reports hidden despite the audit:read grant")
	}
}

func TestWildcardSkipsPermissionCheck(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Label: "Everyone", Path: "/a", Roles: []string{Wildcard}, Permission: "secret:read"},
	}
	authz := fakeAuthz{authenticated: true, roles: map[string]bool{RoleEmployee: true}}
	got := Visible(authz, entries)
	if len(got) != 1 {
		t.Fatal("wildcard entry must be visible to any signed-in user")
	}
}

func TestOrderIsPreserved(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Label: "C", Roles: []string{Wildcard}},
		{Label: "A", Roles: []string{RoleAdmin}},
		{Label: "B", Roles: []string{Wildcard}},
	}
	authz := fakeAuthz{authenticated: true, roles: map[string]bool{RoleAdmin: true}}
	got := Visible(authz, entries)
	want := []string{"C", "A", "B"}
	if diff := cmp.Diff(want, labels(got)); diff != "" {
		t.Errorf("order not preserved (-want +got):\n%s", diff)
	}
}
