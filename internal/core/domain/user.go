package domain

import "time"

// Role is the permission level of a user inside an organisation.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleComptable Role = "COMPTABLE"
	RoleLecteur   Role = "LECTEUR" // read-only access to accounting data
)

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleComptable:
		return 2
	case RoleLecteur:
		return 1
	}
	return 0
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r.rank() > 0
}

// Satisfies reports whether r grants at least the permissions of required.
func (r Role) Satisfies(required Role) bool {
	return r.rank() > 0 && r.rank() >= required.rank()
}

// Organisation is the farm that owns users, ledger data and closures.
type Organisation struct {
	OrganisationID string    `json:"organisationID"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
}

// User represents a user of the application in the domain.
type User struct {
	UserID         string `json:"userID"`
	OrganisationID string `json:"organisationID"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	PasswordHash   string `json:"-"`
	AuditFields
}

// RequiredRole returns the minimum role needed to perform action on a closure.
func (action ClotureAction) RequiredRole() Role {
	if action == ActionClose {
		return RoleAdmin
	}
	return RoleComptable
}

// Principal is the authenticated caller of a request, as carried by its access token.
type Principal struct {
	UserID         string
	OrganisationID string
	Name           string
	Role           Role
}

// Can reports whether the principal holds at least the required role.
func (p Principal) Can(required Role) bool {
	return p.Role.Satisfies(required)
}
