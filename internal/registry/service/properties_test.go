package service

import (
	"encoding/json"

	"regnet/internal/registry/keys"
	"regnet/internal/registry/models"
	dErrors "regnet/pkg/domain-errors"
)

func (s *RegistrySuite) TestRequestProperty() {
	s.approveUser("grace", "7777", 0)
	_, err := s.service.RequestUser(asUser(), "heidi", "h@example.com", "1", "8888")
	s.Require().NoError(err)

	s.Run("owner must be approved", func() {
		_, err := s.service.RequestProperty(asUser(), "P-100", 300, "registered", "heidi", "8888")
		s.requireCode(err, dErrors.CodeNotFound)
		key, _ := keys.PropertyRequest(keys.Default, "P-100")
		s.Nil(s.rawState(key))
	})

	s.Run("stores a reference to the owner's approved key", func() {
		req, err := s.service.RequestProperty(asUser(), "P-100", 300, "onSale", "grace", "7777")
		s.Require().NoError(err)
		s.Equal(approvedUserKey("grace", "7777"), string(req.OwnerKey))
		s.Equal(models.StatusOnSale, req.Status)
		s.Equal(int64(300), req.Price)

		key, _ := keys.PropertyRequest(keys.Default, "P-100")
		var stored map[string]any
		s.Require().NoError(json.Unmarshal(s.rawState(key), &stored))
		s.NotContains(stored, "name", "owner data is never copied")
		s.NotContains(stored, "coin_balance")
	})

	s.Run("duplicate request", func() {
		key, _ := keys.PropertyRequest(keys.Default, "P-100")
		before := s.rawState(key)
		_, err := s.service.RequestProperty(asUser(), "P-100", 999, "registered", "grace", "7777")
		s.requireCode(err, dErrors.CodeDuplicateRequest)
		s.Equal(before, s.rawState(key))
	})

	s.Run("status outside the enumeration", func() {
		_, err := s.service.RequestProperty(asUser(), "P-101", 300, "sold", "grace", "7777")
		s.requireCode(err, dErrors.CodeInvalidStatus)
	})

	s.Run("negative price", func() {
		_, err := s.service.RequestProperty(asUser(), "P-102", -1, "registered", "grace", "7777")
		s.requireCode(err, dErrors.CodeValidation)
	})

	s.Run("registrar cannot request", func() {
		_, err := s.service.RequestProperty(asRegistrar(), "P-103", 1, "registered", "grace", "7777")
		s.requireCode(err, dErrors.CodeForbidden)
	})
}

func (s *RegistrySuite) TestApproveProperty() {
	s.approveUser("ivan", "1212", 0)

	s.Run("no request", func() {
		_, err := s.service.ApproveProperty(asRegistrar(), "P-200")
		s.requireCode(err, dErrors.CodeNotFound)
	})

	req, err := s.service.RequestProperty(asUser(), "P-200", 450, "registered", "ivan", "1212")
	s.Require().NoError(err)

	s.Run("user cannot approve", func() {
		_, err := s.service.ApproveProperty(asUser(), "P-200")
		s.requireCode(err, dErrors.CodeForbidden)
	})

	s.Run("copies the request verbatim", func() {
		p, err := s.service.ApproveProperty(asRegistrar(), "P-200")
		s.Require().NoError(err)
		s.Equal(models.ApprovedProperty(*req), *p)
	})

	s.Run("approval is exactly once", func() {
		before := s.rawState(approvedPropertyKey("P-200"))
		_, err := s.service.ApproveProperty(asRegistrar(), "P-200")
		s.requireCode(err, dErrors.CodeAlreadyApproved)
		s.Equal(before, s.rawState(approvedPropertyKey("P-200")))
	})
}

func (s *RegistrySuite) TestViewProperty() {
	_, err := s.service.ViewProperty(asRegistrar(), "P-300")
	s.requireCode(err, dErrors.CodeNotFound)

	s.approveUser("judy", "1313", 0)
	s.approveProperty("P-300", 10, "registered", "judy", "1313")

	p, err := s.service.ViewProperty(as("", "anonymous"), "P-300")
	s.Require().NoError(err)
	s.Equal("P-300", p.PropertyID)
	s.Equal(approvedUserKey("judy", "1313"), string(p.OwnerKey))
}

func (s *RegistrySuite) TestUpdateProperty() {
	s.approveUser("ken", "1414", 0)
	s.approveUser("lena", "1515", 0)
	s.approveProperty("P-400", 700, "registered", "ken", "1414")

	s.Run("missing property", func() {
		_, err := s.service.UpdateProperty(asUser(), "P-401", "ken", "1414", "onSale")
		s.requireCode(err, dErrors.CodeNotFound)
	})

	s.Run("non-owner never mutates the property", func() {
		before := s.rawState(approvedPropertyKey("P-400"))
		for _, status := range []string{"onSale", "registered", "bogus"} {
			_, err := s.service.UpdateProperty(asUser(), "P-400", "lena", "1515", status)
			s.requireCode(err, dErrors.CodeNotOwner)
		}
		s.Equal(before, s.rawState(approvedPropertyKey("P-400")))
	})

	s.Run("invalid status leaves state unchanged", func() {
		before := s.rawState(approvedPropertyKey("P-400"))
		_, err := s.service.UpdateProperty(asUser(), "P-400", "ken", "1414", "forSale")
		s.requireCode(err, dErrors.CodeInvalidStatus)
		s.Equal(before, s.rawState(approvedPropertyKey("P-400")))
	})

	s.Run("owner puts the property on sale", func() {
		p, err := s.service.UpdateProperty(asUser(), "P-400", "ken", "1414", "onSale")
		s.Require().NoError(err)
		s.Equal(models.StatusOnSale, p.Status)
		s.Equal(int64(700), p.Price)

		viewed, err := s.service.ViewProperty(asUser(), "P-400")
		s.Require().NoError(err)
		s.Equal(*p, *viewed)
	})

	s.Run("registrar cannot update", func() {
		_, err := s.service.UpdateProperty(asRegistrar(), "P-400", "ken", "1414", "registered")
		s.requireCode(err, dErrors.CodeForbidden)
	})
}
