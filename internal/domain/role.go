package domain

import "fmt"

// Role is the closed set of portal roles. Stored and compared as a typed
// value so a raw string never reaches an authorization decision.
type Role string

const (
	RoleStudent       Role = "student"
	RoleAdmin         Role = "admin"
	RolePlacementCell Role = "placementcell"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleStudent, RoleAdmin, RolePlacementCell:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
