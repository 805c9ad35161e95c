// Package authz gates registry operations on the invoker's organizational role.
package authz

import (
	"fmt"

	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/requestcontext"
)

// Role is the capability an invoker holds on the network.
type Role int

const (
	RoleUnknown Role = iota
	RoleRegistrar
	RoleUser
)

func (r Role) String() string {
	switch r {
	case RoleRegistrar:
		return "registrar"
	case RoleUser:
		return "user"
	case RoleUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Requirement is the role an operation demands.
type Requirement int

const (
	RequireAny Requirement = iota
	RequireRegistrar
	RequireUser
)

func (r Requirement) String() string {
	switch r {
	case RequireRegistrar:
		return "registrar"
	case RequireUser:
		return "user"
	default:
		return "any"
	}
}

// Authorize is a pure check: it returns a forbidden error when role does not
// meet required.
func Authorize(role Role, required Requirement) error {
	switch required {
	case RequireAny:
		return nil
	case RequireRegistrar:
		if role == RoleRegistrar {
			return nil
		}
	case RequireUser:
		if role == RoleUser {
			return nil
		}
	default:
		return dErrors.New(dErrors.CodeForbidden, fmt.Sprintf("unsupported requirement %d", int(required)))
	}
	return dErrors.New(dErrors.CodeForbidden,
		fmt.Sprintf("operation requires the %s role, invoker has %s", required, role))
}

// RoleMapper resolves an invoker's MSP id to a Role.
type RoleMapper struct {
	RegistrarMSP string
	UserMSP      string
}

// DefaultRoleMapper uses the network's stock MSP ids.
var DefaultRoleMapper = RoleMapper{RegistrarMSP: "registrarMSP", UserMSP: "usersMSP"}

func (m RoleMapper) RoleOf(inv requestcontext.Invoker) Role {
	switch inv.MSPID {
	case "":
		return RoleUnknown
	case m.RegistrarMSP:
		return RoleRegistrar
	case m.UserMSP:
		return RoleUser
	default:
		return RoleUnknown
	}
}
