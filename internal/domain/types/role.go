package types

// IDs de los roles sembrados que usa la política de primer login.
const (
	RoleMemberID     = "member"
	RoleControllerID = "controller"
)

// PermRosterExtended habilita ver el roster sin redacción.
const PermRosterExtended = "division.roster.extended"

// Role agrupa un conjunto abierto de permisos.
// Los permisos son strings opacos: el gate no conoce un catálogo cerrado.
type Role struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Permissions []string `json:"permissions" yaml:"permissions"`
}

// Has reporta si el rol incluye el permiso exacto.
func (r Role) Has(perm string) bool {
	for _, p := range r.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// DefaultRoles son los roles que asume la política de primer login.
func DefaultRoles() []Role {
	return []Role{
		{ID: RoleMemberID, Name: "Member", Permissions: []string{}},
		{ID: RoleControllerID, Name: "Controller", Permissions: []string{PermRosterExtended}},
	}
}
