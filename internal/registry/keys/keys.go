// Package keys derives the namespaced world state keys for registry records.
package keys

import (
	"regnet/internal/ledger"
	dErrors "regnet/pkg/domain-errors"
)

const namespacePrefix = "org.property-registration-network.regnet."

// Namespaces partition requested records from approved ones.
const (
	NamespaceUserRequest      = namespacePrefix + "requestUser"
	NamespaceApprovedUser     = namespacePrefix + "approvedUser"
	NamespacePropertyRequest  = namespacePrefix + "requestProperty"
	NamespaceApprovedProperty = namespacePrefix + "approvedProperty"
)

// Builder creates composite keys. ledger.Stub satisfies it.
type Builder interface {
	CreateCompositeKey(objectType string, attributes []string) (string, error)
}

// UserKey is the approved-user key a property's owner_key points at.
type UserKey string

// UserSegment joins a user's name and national ID into one key segment.
func UserSegment(name, nationalID string) string {
	return name + "-" + nationalID
}

func UserRequest(b Builder, name, nationalID string) (string, error) {
	return build(b, NamespaceUserRequest, UserSegment(name, nationalID))
}

func ApprovedUser(b Builder, name, nationalID string) (UserKey, error) {
	k, err := build(b, NamespaceApprovedUser, UserSegment(name, nationalID))
	return UserKey(k), err
}

func PropertyRequest(b Builder, propertyID string) (string, error) {
	return build(b, NamespacePropertyRequest, propertyID)
}

func ApprovedProperty(b Builder, propertyID string) (string, error) {
	return build(b, NamespaceApprovedProperty, propertyID)
}

// Default builds keys without an invocation, for tests and tooling.
var Default Builder = builderFunc(ledger.CreateCompositeKey)

type builderFunc func(string, []string) (string, error)

func (f builderFunc) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	return f(objectType, attributes)
}

// IsApprovedUser reports whether key lives in the approved-user namespace.
func IsApprovedUser(key UserKey) bool {
	ns, _, err := ledger.SplitCompositeKey(string(key))
	return err == nil && ns == NamespaceApprovedUser
}

func build(b Builder, namespace, segment string) (string, error) {
	k, err := b.CreateCompositeKey(namespace, []string{segment})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeValidation, "identifier contains characters that cannot be stored")
	}
	return k, nil
}
