package service

import (
	"context"
	"fmt"
	"math"

	"regnet/internal/ledger"
	"regnet/internal/registry/authz"
	"regnet/internal/registry/events"
	"regnet/internal/registry/keys"
	"regnet/internal/registry/models"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/requestcontext"
)

// RequestUser records a registration request for approval by a registrar.
func (s *Service) RequestUser(ctx context.Context, name, email, phone, nationalID string) (*models.UserRequest, error) {
	var record models.UserRequest
	txID, err := s.invoke(ctx, "requestUser", authz.RequireUser, func(ctx context.Context, stub ledger.Stub) error {
		if err := requireFields("name", name, "national_id", nationalID); err != nil {
			return err
		}
		key, err := keys.UserRequest(stub, name, nationalID)
		if err != nil {
			return err
		}
		existing, err := getRecord[models.UserRequest](ctx, stub, key)
		if err != nil {
			return err
		}
		if existing.Found {
			return dErrors.New(dErrors.CodeDuplicateRequest,
				fmt.Sprintf("user %s has already requested registration", keys.UserSegment(name, nationalID)))
		}

		record = models.UserRequest{
			Name:       name,
			Email:      email,
			Phone:      phone,
			NationalID: nationalID,
			CreatedAt:  requestcontext.Now(ctx),
		}
		return putRecord(ctx, stub, key, record)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.UserRequested, txID, record)
	return &record, nil
}

// ApproveUser promotes a pending request to an approved user with no coins.
// Approval happens exactly once per name and national ID.
func (s *Service) ApproveUser(ctx context.Context, name, nationalID string) (*models.ApprovedUser, error) {
	var approved models.ApprovedUser
	txID, err := s.invoke(ctx, "approveUser", authz.RequireRegistrar, func(ctx context.Context, stub ledger.Stub) error {
		if err := requireFields("name", name, "national_id", nationalID); err != nil {
			return err
		}
		reqKey, err := keys.UserRequest(stub, name, nationalID)
		if err != nil {
			return err
		}
		approvedKey, err := keys.ApprovedUser(stub, name, nationalID)
		if err != nil {
			return err
		}

		req, err := getRecord[models.UserRequest](ctx, stub, reqKey)
		if err != nil {
			return err
		}
		if !req.Found {
			return dErrors.New(dErrors.CodeNotFound, "no registration request for this user")
		}
		existing, err := getRecord[models.ApprovedUser](ctx, stub, string(approvedKey))
		if err != nil {
			return err
		}
		if existing.Found {
			return dErrors.New(dErrors.CodeAlreadyApproved, "user is already approved")
		}

		approved = req.Value.Approve()
		return putRecord(ctx, stub, string(approvedKey), approved)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.UserApproved, txID, approved)
	return &approved, nil
}

// ViewUser returns an approved user. Any role may call it.
func (s *Service) ViewUser(ctx context.Context, name, nationalID string) (*models.ApprovedUser, error) {
	var user models.ApprovedUser
	_, err := s.invoke(ctx, "viewUser", authz.RequireAny, func(ctx context.Context, stub ledger.Stub) error {
		if err := requireFields("name", name, "national_id", nationalID); err != nil {
			return err
		}
		found, err := s.loadApprovedUser(ctx, stub, name, nationalID)
		if err != nil {
			return err
		}
		user = found.Value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RechargeAccount credits an approved user with the value of a voucher.
func (s *Service) RechargeAccount(ctx context.Context, name, nationalID, voucherCode string) (*models.ApprovedUser, error) {
	var (
		user   models.ApprovedUser
		amount int64
	)
	txID, err := s.invoke(ctx, "rechargeAccount", authz.RequireUser, func(ctx context.Context, stub ledger.Stub) error {
		if err := requireFields("name", name, "national_id", nationalID); err != nil {
			return err
		}
		found, err := s.loadApprovedUser(ctx, stub, name, nationalID)
		if err != nil {
			return err
		}
		amount, err = models.VoucherAmount(voucherCode)
		if err != nil {
			return err
		}
		if found.Value.CoinBalance > math.MaxInt64-amount {
			return dErrors.New(dErrors.CodeValidation, "recharge would overflow the coin balance")
		}

		user = found.Value
		user.CoinBalance += amount
		key, err := keys.ApprovedUser(stub, name, nationalID)
		if err != nil {
			return err
		}
		return putRecord(ctx, stub, string(key), user)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.AddRecharged(amount)
	s.emit(ctx, events.AccountRecharged, txID, user)
	return &user, nil
}

func (s *Service) loadApprovedUser(ctx context.Context, stub ledger.Stub, name, nationalID string) (Lookup[models.ApprovedUser], error) {
	key, err := keys.ApprovedUser(stub, name, nationalID)
	if err != nil {
		return Lookup[models.ApprovedUser]{}, err
	}
	found, err := getRecord[models.ApprovedUser](ctx, stub, string(key))
	if err != nil {
		return found, err
	}
	if !found.Found {
		return found, dErrors.New(dErrors.CodeNotFound,
			fmt.Sprintf("user %s is not approved on the network", keys.UserSegment(name, nationalID)))
	}
	return found, nil
}
