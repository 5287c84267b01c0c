package session

import "fmt"

// Role is one of the closed set of principal roles.
type Role string

const (
	RoleAdmin                Role = "admin"
	RoleFacilityManager      Role = "facility_manager"
	RoleMaintenanceOperative Role = "maintenance_operative"
	RoleSecurityGuard        Role = "security_guard"
	RoleTenantManager        Role = "tenant_manager"
)

// DefaultLandingPath is used for roles without an entry in the landing table.
const DefaultLandingPath = "/"

var landingPaths = map[Role]string{
	RoleAdmin:                "/admin",
	RoleFacilityManager:      "/ops",
	RoleMaintenanceOperative: "/ops/tasks",
	RoleSecurityGuard:        "/security",
	RoleTenantManager:        "/tenant",
}

// Roles lists every known role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleFacilityManager, RoleMaintenanceOperative, RoleSecurityGuard, RoleTenantManager}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := landingPaths[r]
	return ok
}

// ParseRole converts a tag into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// LandingPath resolves where a freshly authenticated role is sent.
func LandingPath(r Role) string {
	if path, ok := landingPaths[r]; ok {
		return path
	}
	return DefaultLandingPath
}
