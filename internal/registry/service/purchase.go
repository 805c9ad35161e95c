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
)

// PurchaseProperty moves a property that is on sale to the buyer, debiting
// the buyer and crediting the seller by its price. The three records are
// written in the same invocation, and only after every check has passed.
func (s *Service) PurchaseProperty(ctx context.Context, propertyID, buyerName, buyerNationalID string) (*models.PurchaseResult, error) {
	var result models.PurchaseResult
	txID, err := s.invoke(ctx, "purchaseProperty", authz.RequireUser, func(ctx context.Context, stub ledger.Stub) error {
		if err := requireFields("property_id", propertyID, "buyer_name", buyerName, "buyer_national_id", buyerNationalID); err != nil {
			return err
		}

		property, propertyKey, err := loadApprovedProperty(ctx, stub, propertyID)
		if err != nil {
			return err
		}
		if property.Status != models.StatusOnSale {
			return dErrors.New(dErrors.CodeNotForSale, fmt.Sprintf("property %s is not on sale", propertyID))
		}

		buyerKey, err := keys.ApprovedUser(stub, buyerName, buyerNationalID)
		if err != nil {
			return err
		}
		sellerKey := property.OwnerKey
		parties, err := stub.GetStates(ctx, string(buyerKey), string(sellerKey))
		if err != nil {
			return readError(err)
		}

		buyer, err := decodeRecord[models.ApprovedUser](string(buyerKey), parties[string(buyerKey)])
		if err != nil {
			return err
		}
		if !buyer.Found {
			return dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("user %s is not approved on the network", keys.UserSegment(buyerName, buyerNationalID)))
		}
		if buyer.Value.CoinBalance < property.Price {
			return dErrors.New(dErrors.CodeInsufficientFunds,
				fmt.Sprintf("balance %d is below the price %d", buyer.Value.CoinBalance, property.Price))
		}

		seller, err := decodeRecord[models.ApprovedUser](string(sellerKey), parties[string(sellerKey)])
		if err != nil {
			return err
		}
		if !seller.Found {
			return dErrors.New(dErrors.CodeInternalInconsistency,
				fmt.Sprintf("owner of property %s does not resolve to an approved user", propertyID))
		}
		if buyerKey == sellerKey {
			return dErrors.New(dErrors.CodeSelfPurchase, fmt.Sprintf("buyer already owns property %s", propertyID))
		}
		if seller.Value.CoinBalance > math.MaxInt64-property.Price {
			return dErrors.New(dErrors.CodeInternalInconsistency, "seller balance would overflow")
		}

		result = models.PurchaseResult{
			Seller:   seller.Value,
			Buyer:    buyer.Value,
			Property: property,
		}
		result.Seller.CoinBalance += property.Price
		result.Buyer.CoinBalance -= property.Price
		result.Property.OwnerKey = buyerKey
		result.Property.Status = models.StatusRegistered

		if err := putRecord(ctx, stub, string(sellerKey), result.Seller); err != nil {
			return err
		}
		if err := putRecord(ctx, stub, string(buyerKey), result.Buyer); err != nil {
			return err
		}
		return putRecord(ctx, stub, propertyKey, result.Property)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.AddTransferred(result.Property.Price)
	s.emit(ctx, events.PropertyPurchased, txID, result)
	return &result, nil
}
