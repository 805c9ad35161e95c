// Package models holds the records the registry persists in the world state.
package models

import (
	"errors"
	"fmt"
	"time"

	"regnet/internal/registry/keys"
	dErrors "regnet/pkg/domain-errors"
)

// UserRequest is a pending registration raised by a user.
type UserRequest struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	NationalID string    `json:"national_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ApprovedUser is a registrar-approved network member.
type ApprovedUser struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	NationalID  string    `json:"national_id"`
	CreatedAt   time.Time `json:"created_at"`
	CoinBalance int64     `json:"coin_balance"`
}

// Approve copies the request into a fresh approved record with a zero balance.
func (r UserRequest) Approve() ApprovedUser {
	return ApprovedUser{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		NationalID: r.NationalID,
		CreatedAt:  r.CreatedAt,
	}
}

// PropertyStatus is restricted to registered and onSale.
type PropertyStatus string

const (
	StatusRegistered PropertyStatus = "registered"
	StatusOnSale     PropertyStatus = "onSale"
)

func (s PropertyStatus) IsValid() bool {
	return s == StatusRegistered || s == StatusOnSale
}

// ParsePropertyStatus rejects anything outside the enumeration.
func ParsePropertyStatus(s string) (PropertyStatus, error) {
	status := PropertyStatus(s)
	if !status.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidStatus,
			fmt.Sprintf("status %q is not one of %q, %q", s, StatusRegistered, StatusOnSale))
	}
	return status, nil
}

// PropertyRequest is a pending property registration. OwnerKey references the
// owner's approved-user record and never copies its data.
type PropertyRequest struct {
	PropertyID string         `json:"property_id"`
	OwnerKey   keys.UserKey   `json:"owner_key"`
	Price      int64          `json:"price"`
	Status     PropertyStatus `json:"status"`
}

// ApprovedProperty is a registered property. OwnerKey always resolves to an
// ApprovedUser.
type ApprovedProperty struct {
	PropertyID string         `json:"property_id"`
	OwnerKey   keys.UserKey   `json:"owner_key"`
	Price      int64          `json:"price"`
	Status     PropertyStatus `json:"status"`
}

// Approve copies the request verbatim into the approved shape.
func (r PropertyRequest) Approve() ApprovedProperty {
	return ApprovedProperty(r)
}

// PurchaseResult bundles the three records a purchase rewrites.
type PurchaseResult struct {
	Seller   ApprovedUser     `json:"seller"`
	Buyer    ApprovedUser     `json:"buyer"`
	Property ApprovedProperty `json:"property"`
}

// Validate reports whether a decoded record has the shape the registry writes.
func (r UserRequest) Validate() error {
	return requireIdentity(r.Name, r.NationalID)
}

func (u ApprovedUser) Validate() error {
	if err := requireIdentity(u.Name, u.NationalID); err != nil {
		return err
	}
	if u.CoinBalance < 0 {
		return fmt.Errorf("coin_balance %d is negative", u.CoinBalance)
	}
	return nil
}

func (r PropertyRequest) Validate() error {
	return validateProperty(r.PropertyID, r.OwnerKey, r.Price, r.Status)
}

func (p ApprovedProperty) Validate() error {
	return validateProperty(p.PropertyID, p.OwnerKey, p.Price, p.Status)
}

func requireIdentity(name, nationalID string) error {
	if name == "" || nationalID == "" {
		return errors.New("name and national_id are required")
	}
	return nil
}

func validateProperty(id string, owner keys.UserKey, price int64, status PropertyStatus) error {
	switch {
	case id == "":
		return errors.New("property_id is required")
	case !keys.IsApprovedUser(owner):
		return errors.New("owner_key is not an approved-user key")
	case price < 0:
		return fmt.Errorf("price %d is negative", price)
	case !status.IsValid():
		return fmt.Errorf("status %q is not a property status", status)
	}
	return nil
}
