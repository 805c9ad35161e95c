package handler

import (
	"strings"

	"regnet/internal/ledger"
	"regnet/internal/registry/models"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/email"
)

type UserRequestBody struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	NationalID string `json:"national_id"`
}

func (r *UserRequestBody) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = email.Normalize(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.NationalID = strings.TrimSpace(r.NationalID)
}

func (r *UserRequestBody) Validate() error {
	if err := requireAll("name", r.Name, "national_id", r.NationalID); err != nil {
		return err
	}
	if r.Email != "" && !email.IsValid(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "email is not a valid address")
	}
	return nil
}

// UserRef identifies a user by name and national ID.
type UserRef struct {
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
}

func (r *UserRef) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.NationalID = strings.TrimSpace(r.NationalID)
}

func (r *UserRef) Validate() error {
	return requireAll("name", r.Name, "national_id", r.NationalID)
}

type RechargeBody struct {
	UserRef
	VoucherCode string `json:"voucher_code"`
}

func (r *RechargeBody) Normalize() {
	r.UserRef.Normalize()
	r.VoucherCode = strings.TrimSpace(r.VoucherCode)
}

func (r *RechargeBody) Validate() error {
	if err := r.UserRef.Validate(); err != nil {
		return err
	}
	return requireAll("voucher_code", r.VoucherCode)
}

type PropertyRequestBody struct {
	PropertyID      string `json:"property_id"`
	Price           int64  `json:"price"`
	Status          string `json:"status"`
	OwnerName       string `json:"owner_name"`
	OwnerNationalID string `json:"owner_national_id"`
}

func (r *PropertyRequestBody) Normalize() {
	r.PropertyID = strings.TrimSpace(r.PropertyID)
	r.Status = strings.TrimSpace(r.Status)
	r.OwnerName = strings.TrimSpace(r.OwnerName)
	r.OwnerNationalID = strings.TrimSpace(r.OwnerNationalID)
}

func (r *PropertyRequestBody) Validate() error {
	if err := requireAll("property_id", r.PropertyID, "owner_name", r.OwnerName, "owner_national_id", r.OwnerNationalID); err != nil {
		return err
	}
	if r.Price < 0 {
		return dErrors.New(dErrors.CodeValidation, "price must not be negative")
	}
	return nil
}

type UpdatePropertyBody struct {
	OwnerName       string `json:"owner_name"`
	OwnerNationalID string `json:"owner_national_id"`
	Status          string `json:"status"`
}

func (r *UpdatePropertyBody) Normalize() {
	r.OwnerName = strings.TrimSpace(r.OwnerName)
	r.OwnerNationalID = strings.TrimSpace(r.OwnerNationalID)
	r.Status = strings.TrimSpace(r.Status)
}

func (r *UpdatePropertyBody) Validate() error {
	return requireAll("owner_name", r.OwnerName, "owner_national_id", r.OwnerNationalID)
}

type PurchaseBody struct {
	BuyerName       string `json:"buyer_name"`
	BuyerNationalID string `json:"buyer_national_id"`
}

func (r *PurchaseBody) Normalize() {
	r.BuyerName = strings.TrimSpace(r.BuyerName)
	r.BuyerNationalID = strings.TrimSpace(r.BuyerNationalID)
}

func (r *PurchaseBody) Validate() error {
	return requireAll("buyer_name", r.BuyerName, "buyer_national_id", r.BuyerNationalID)
}

func requireAll(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return dErrors.New(dErrors.CodeValidation, pairs[i]+" is required")
		}
	}
	return nil
}

// PropertyResponse renders owner_key readably as namespace/segment.
type PropertyResponse struct {
	PropertyID string                `json:"property_id"`
	OwnerKey   string                `json:"owner_key"`
	Price      int64                 `json:"price"`
	Status     models.PropertyStatus `json:"status"`
}

type PurchaseResponse struct {
	Seller   models.ApprovedUser `json:"seller"`
	Buyer    models.ApprovedUser `json:"buyer"`
	Property PropertyResponse    `json:"property"`
}

func fromProperty(p models.ApprovedProperty) PropertyResponse {
	return PropertyResponse{
		PropertyID: p.PropertyID,
		OwnerKey:   ledger.PrintableKey(string(p.OwnerKey)),
		Price:      p.Price,
		Status:     p.Status,
	}
}
