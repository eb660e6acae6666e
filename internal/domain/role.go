package domain

import (
	"errors"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is the side of a conversation a caller acts for.
type Role int

const (
	RoleUnknown Role = iota
	RoleProvider
	RoleParent
)

func (r Role) String() string {
	switch r {
	case RoleProvider:
		return "provider"
	case RoleParent:
		return "parent"
	default:
		return "unknown"
	}
}

func (r Role) IsProvider() bool { return r == RoleProvider }

func (r Role) Valid() bool { return r == RoleProvider || r == RoleParent }

// ParseRole maps a role claim to a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "provider":
		return RoleProvider, nil
	case "parent":
		return RoleParent, nil
	default:
		return RoleUnknown, ErrUnknownRole
	}
}
