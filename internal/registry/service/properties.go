package service

import (
	"context"
	"fmt"

	"regnet/internal/ledger"
	"regnet/internal/registry/authz"
	"regnet/internal/registry/events"
	"regnet/internal/registry/keys"
	"regnet/internal/registry/models"
	dErrors "regnet/pkg/domain-errors"
)

// RequestProperty records a property registration on behalf of an approved
// user. The request stores a reference to the owner's key, not its data.
func (s *Service) RequestProperty(ctx context.Context, propertyID string, price int64, status, ownerName, ownerNationalID string) (*models.PropertyRequest, error) {
	var record models.PropertyRequest
	txID, err := s.invoke(ctx, "requestProperty", authz.RequireUser, func(ctx context.Context, stub ledger.Stub) error {
		if err := requireFields("property_id", propertyID, "owner_name", ownerName, "owner_national_id", ownerNationalID); err != nil {
			return err
		}
		if price < 0 {
			return dErrors.New(dErrors.CodeValidation, "price must not be negative")
		}
		key, err := keys.PropertyRequest(stub, propertyID)
		if err != nil {
			return err
		}
		existing, err := getRecord[models.PropertyRequest](ctx, stub, key)
		if err != nil {
			return err
		}
		if existing.Found {
			return dErrors.New(dErrors.CodeDuplicateRequest,
				fmt.Sprintf("property %s has already been requested", propertyID))
		}

		if _, err := s.loadApprovedUser(ctx, stub, ownerName, ownerNationalID); err != nil {
			return err
		}
		parsed, err := models.ParsePropertyStatus(status)
		if err != nil {
			return err
		}
		ownerKey, err := keys.ApprovedUser(stub, ownerName, ownerNationalID)
		if err != nil {
			return err
		}

		record = models.PropertyRequest{
			PropertyID: propertyID,
			OwnerKey:   ownerKey,
			Price:      price,
			Status:     parsed,
		}
		return putRecord(ctx, stub, key, record)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.PropertyRequested, txID, record)
	return &record, nil
}

// ApproveProperty copies a pending request verbatim into the approved namespace.
func (s *Service) ApproveProperty(ctx context.Context, propertyID string) (*models.ApprovedProperty, error) {
	var approved models.ApprovedProperty
	txID, err := s.invoke(ctx, "approveProperty", authz.RequireRegistrar, func(ctx context.Context, stub ledger.Stub) error {
		if err := requireFields("property_id", propertyID); err != nil {
			return err
		}
		reqKey, err := keys.PropertyRequest(stub, propertyID)
		if err != nil {
			return err
		}
		approvedKey, err := keys.ApprovedProperty(stub, propertyID)
		if err != nil {
			return err
		}

		req, err := getRecord[models.PropertyRequest](ctx, stub, reqKey)
		if err != nil {
			return err
		}
		if !req.Found {
			return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("no registration request for property %s", propertyID))
		}
		existing, err := getRecord[models.ApprovedProperty](ctx, stub, approvedKey)
		if err != nil {
			return err
		}
		if existing.Found {
			return dErrors.New(dErrors.CodeAlreadyApproved, fmt.Sprintf("property %s is already approved", propertyID))
		}

		approved = req.Value.Approve()
		return putRecord(ctx, stub, approvedKey, approved)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.PropertyApproved, txID, approved)
	return &approved, nil
}

// ViewProperty returns an approved property. Any role may call it.
func (s *Service) ViewProperty(ctx context.Context, propertyID string) (*models.ApprovedProperty, error) {
	var property models.ApprovedProperty
	_, err := s.invoke(ctx, "viewProperty", authz.RequireAny, func(ctx context.Context, stub ledger.Stub) error {
		if err := requireFields("property_id", propertyID); err != nil {
			return err
		}
		found, _, err := loadApprovedProperty(ctx, stub, propertyID)
		if err != nil {
			return err
		}
		property = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// UpdateProperty changes a property's status. Only the current owner may do so.
func (s *Service) UpdateProperty(ctx context.Context, propertyID, ownerName, ownerNationalID, newStatus string) (*models.ApprovedProperty, error) {
	var property models.ApprovedProperty
	txID, err := s.invoke(ctx, "updateProperty", authz.RequireUser, func(ctx context.Context, stub ledger.Stub) error {
		if err := requireFields("property_id", propertyID, "owner_name", ownerName, "owner_national_id", ownerNationalID); err != nil {
			return err
		}
		found, key, err := loadApprovedProperty(ctx, stub, propertyID)
		if err != nil {
			return err
		}
		callerKey, err := keys.ApprovedUser(stub, ownerName, ownerNationalID)
		if err != nil {
			return err
		}
		if callerKey != found.OwnerKey {
			return dErrors.New(dErrors.CodeNotOwner,
				fmt.Sprintf("%s does not own property %s", keys.UserSegment(ownerName, ownerNationalID), propertyID))
		}
		status, err := models.ParsePropertyStatus(newStatus)
		if err != nil {
			return err
		}

		property = found
		property.Status = status
		return putRecord(ctx, stub, key, property)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.PropertyUpdated, txID, property)
	return &property, nil
}

func loadApprovedProperty(ctx context.Context, stub ledger.Stub, propertyID string) (models.ApprovedProperty, string, error) {
	key, err := keys.ApprovedProperty(stub, propertyID)
	if err != nil {
		return models.ApprovedProperty{}, "", err
	}
	found, err := getRecord[models.ApprovedProperty](ctx, stub, key)
	if err != nil {
		return models.ApprovedProperty{}, "", err
	}
	if !found.Found {
		return models.ApprovedProperty{}, "", dErrors.New(dErrors.CodeNotFound,
			fmt.Sprintf("property %s is not approved on the network", propertyID))
	}
	return found.Value, key, nil
}
