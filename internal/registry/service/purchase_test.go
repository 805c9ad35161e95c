package service

import (
	"sync"

	"regnet/internal/registry/keys"
	"regnet/internal/registry/models"
	dErrors "regnet/pkg/domain-errors"
)

type purchaseSnapshot struct {
	buyer, seller, property []byte
}

func (s *RegistrySuite) snapshot(buyerKey, sellerKey, propertyID string) purchaseSnapshot {
	return purchaseSnapshot{
		buyer:    s.rawState(buyerKey),
		seller:   s.rawState(sellerKey),
		property: s.rawState(approvedPropertyKey(propertyID)),
	}
}

func (s *RegistrySuite) TestPurchaseScenario() {
	// Recharging 500 and buying a property priced 500 leaves the buyer at 0.
	s.approveUser("seller", "S1", 2)
	buyer := s.approveUser("buyer", "B1", 0)
	s.Require().Equal(int64(0), buyer.CoinBalance)

	buyer, err := s.service.RechargeAccount(asUser(), "buyer", "B1", "upg500")
	s.Require().NoError(err)
	s.Require().Equal(int64(500), buyer.CoinBalance)

	s.approveProperty("P-500", 500, "onSale", "seller", "S1")

	result, err := s.service.PurchaseProperty(asUser(), "P-500", "buyer", "B1")
	s.Require().NoError(err)

	s.Equal(int64(0), result.Buyer.CoinBalance)
	s.Equal(int64(700), result.Seller.CoinBalance)
	s.Equal(int64(500+200), result.Buyer.CoinBalance+result.Seller.CoinBalance, "coins are conserved")
	s.Equal(approvedUserKey("buyer", "B1"), string(result.Property.OwnerKey))
	s.Equal(models.StatusRegistered, result.Property.Status)

	stored, err := s.service.ViewProperty(asUser(), "P-500")
	s.Require().NoError(err)
	s.Equal(result.Property, *stored)
	storedBuyer, err := s.service.ViewUser(asUser(), "buyer", "B1")
	s.Require().NoError(err)
	s.Equal(result.Buyer, *storedBuyer)
	storedSeller, err := s.service.ViewUser(asUser(), "seller", "S1")
	s.Require().NoError(err)
	s.Equal(result.Seller, *storedSeller)

	s.Run("new owner can list it again and the previous owner cannot", func() {
		_, err := s.service.UpdateProperty(asUser(), "P-500", "seller", "S1", "onSale")
		s.requireCode(err, dErrors.CodeNotOwner)
		_, err = s.service.UpdateProperty(asUser(), "P-500", "buyer", "B1", "onSale")
		s.Require().NoError(err)
	})
}

func (s *RegistrySuite) TestPurchaseFailuresLeaveStateUnchanged() {
	s.approveUser("owner", "O1", 0)
	s.approveUser("rich", "R1", 10)
	s.approveUser("poor", "P1", 1)
	s.approveProperty("P-600", 500, "registered", "owner", "O1")
	s.approveProperty("P-601", 500, "onSale", "owner", "O1")
	s.approveProperty("P-602", 0, "onSale", "rich", "R1")

	owner := approvedUserKey("owner", "O1")
	rich := approvedUserKey("rich", "R1")
	poor := approvedUserKey("poor", "P1")

	cases := []struct {
		name       string
		propertyID string
		buyer      [2]string
		buyerKey   string
		sellerKey  string
		code       dErrors.Code
	}{
		{"property not found", "P-699", [2]string{"rich", "R1"}, rich, owner, dErrors.CodeNotFound},
		{"not for sale", "P-600", [2]string{"rich", "R1"}, rich, owner, dErrors.CodeNotForSale},
		{"buyer not approved", "P-601", [2]string{"stranger", "X1"}, approvedUserKey("stranger", "X1"), owner, dErrors.CodeNotFound},
		{"insufficient funds", "P-601", [2]string{"poor", "P1"}, poor, owner, dErrors.CodeInsufficientFunds},
		{"self purchase", "P-602", [2]string{"rich", "R1"}, rich, rich, dErrors.CodeSelfPurchase},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			before := s.snapshot(tc.buyerKey, tc.sellerKey, tc.propertyID)
			_, err := s.service.PurchaseProperty(asUser(), tc.propertyID, tc.buyer[0], tc.buyer[1])
			s.requireCode(err, tc.code)
			s.Equal(before, s.snapshot(tc.buyerKey, tc.sellerKey, tc.propertyID))
		})
	}

	s.Run("registrar cannot purchase", func() {
		_, err := s.service.PurchaseProperty(asRegistrar(), "P-601", "rich", "R1")
		s.requireCode(err, dErrors.CodeForbidden)
	})
}

func (s *RegistrySuite) TestPurchaseNotForSaleKeepsBalances() {
	s.approveUser("nina", "N1", 3)
	s.approveUser("omar", "M1", 9)
	s.approveProperty("P-650", 100, "registered", "nina", "N1")

	_, err := s.service.PurchaseProperty(asUser(), "P-650", "omar", "M1")
	s.requireCode(err, dErrors.CodeNotForSale)

	nina, err := s.service.ViewUser(asUser(), "nina", "N1")
	s.Require().NoError(err)
	omar, err := s.service.ViewUser(asUser(), "omar", "M1")
	s.Require().NoError(err)
	s.Equal(int64(300), nina.CoinBalance)
	s.Equal(int64(900), omar.CoinBalance)
}

func (s *RegistrySuite) TestPurchaseWithDanglingOwnerIsInconsistency() {
	s.approveUser("pat", "PT1", 5)
	ghost, _ := keys.ApprovedUser(keys.Default, "ghost", "G0")
	s.seed(approvedPropertyKey("P-700"), models.ApprovedProperty{
		PropertyID: "P-700",
		OwnerKey:   ghost,
		Price:      100,
		Status:     models.StatusOnSale,
	})

	before := s.snapshot(approvedUserKey("pat", "PT1"), string(ghost), "P-700")
	_, err := s.service.PurchaseProperty(asUser(), "P-700", "pat", "PT1")
	s.requireCode(err, dErrors.CodeInternalInconsistency)
	s.Equal(before, s.snapshot(approvedUserKey("pat", "PT1"), string(ghost), "P-700"))
}

func (s *RegistrySuite) TestConcurrentPurchasesTransferOnce() {
	s.approveUser("vendor", "V1", 0)
	s.approveProperty("P-800", 300, "onSale", "vendor", "V1")

	buyers := []string{"q1", "q2", "q3", "q4"}
	for _, b := range buyers {
		s.approveUser(b, b, 5)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		codes     []dErrors.Code
	)
	for _, b := range buyers {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := s.service.PurchaseProperty(asUser(), "P-800", name, name)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			codes = append(codes, dErrors.CodeOf(err))
		}(b)
	}
	wg.Wait()

	s.Equal(1, successes)
	for _, c := range codes {
		s.Contains([]dErrors.Code{dErrors.CodeNotForSale, dErrors.CodeConflict}, c)
	}

	total := int64(0)
	parties := [][2]string{{"vendor", "V1"}}
	for _, b := range buyers {
		parties = append(parties, [2]string{b, b})
	}
	for _, p := range parties {
		u, err := s.service.ViewUser(asUser(), p[0], p[1])
		s.Require().NoError(err)
		total += u.CoinBalance
	}
	s.Equal(int64(len(buyers)*500), total, "coins are conserved across concurrent purchases")
}
