package models

import "fmt"

// Role is fixed when the identity is created.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBarber   Role = "barber"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleBarber:
		return RoleBarber, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
