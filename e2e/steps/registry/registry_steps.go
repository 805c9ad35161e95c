package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(role, method, path string, body any) error
	Status() int
	Field(path string) (any, error)
	Unique(name string) string
}

// RegisterSteps registers registry step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrySteps{tc: tc}

	ctx.Step(`^an approved user "([^"]*)" with national id "([^"]*)"$`, steps.approvedUser)
	ctx.Step(`^"([^"]*)" with national id "([^"]*)" recharges with voucher "([^"]*)"$`, steps.recharge)
	ctx.Step(`^an approved property "([^"]*)" priced (\d+) with status "([^"]*)" owned by "([^"]*)" with national id "([^"]*)"$`, steps.approvedProperty)
	ctx.Step(`^"([^"]*)" with national id "([^"]*)" purchases property "([^"]*)"$`, steps.purchase)
	ctx.Step(`^the (registrar|user) requests user "([^"]*)" with national id "([^"]*)"$`, steps.requestUser)
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response error should be "([^"]*)"$`, steps.errorShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal (-?\d+)$`, steps.fieldShouldEqualNumber)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.fieldShouldEqualString)
}

type registrySteps struct {
	tc TestContext
}

func (s *registrySteps) user(name, nationalID string) map[string]any {
	return map[string]any{"name": s.tc.Unique(name), "national_id": nationalID}
}

func (s *registrySteps) expect(status int) error {
	if s.tc.Status() != status {
		return fmt.Errorf("expected status %d, got %d", status, s.tc.Status())
	}
	return nil
}

func (s *registrySteps) approvedUser(ctx context.Context, name, nationalID string) error {
	if err := s.tc.Do("user", http.MethodPost, "/users/requests", s.user(name, nationalID)); err != nil {
		return err
	}
	if err := s.expect(http.StatusCreated); err != nil {
		return err
	}
	if err := s.tc.Do("registrar", http.MethodPost, "/users/approvals", s.user(name, nationalID)); err != nil {
		return err
	}
	return s.expect(http.StatusCreated)
}

func (s *registrySteps) recharge(ctx context.Context, name, nationalID, voucher string) error {
	body := s.user(name, nationalID)
	body["voucher_code"] = voucher
	return s.tc.Do("user", http.MethodPost, "/users/recharge", body)
}

func (s *registrySteps) approvedProperty(ctx context.Context, propertyID string, price int, status, owner, ownerNationalID string) error {
	id := s.tc.Unique(propertyID)
	if err := s.tc.Do("user", http.MethodPost, "/properties/requests", map[string]any{
		"property_id":       id,
		"price":             price,
		"status":            status,
		"owner_name":        s.tc.Unique(owner),
		"owner_national_id": ownerNationalID,
	}); err != nil {
		return err
	}
	if err := s.expect(http.StatusCreated); err != nil {
		return err
	}
	if err := s.tc.Do("registrar", http.MethodPost, "/properties/"+id+"/approve", nil); err != nil {
		return err
	}
	return s.expect(http.StatusCreated)
}

func (s *registrySteps) purchase(ctx context.Context, buyer, nationalID, propertyID string) error {
	return s.tc.Do("user", http.MethodPost, "/properties/"+s.tc.Unique(propertyID)+"/purchase", map[string]any{
		"buyer_name":        s.tc.Unique(buyer),
		"buyer_national_id": nationalID,
	})
}

func (s *registrySteps) requestUser(ctx context.Context, role, name, nationalID string) error {
	return s.tc.Do(role, http.MethodPost, "/users/requests", s.user(name, nationalID))
}

func (s *registrySteps) statusShouldBe(ctx context.Context, status int) error {
	return s.expect(status)
}

func (s *registrySteps) errorShouldBe(ctx context.Context, code string) error {
	return s.fieldShouldEqualString(ctx, "error", code)
}

func (s *registrySteps) fieldShouldEqualNumber(ctx context.Context, field string, want int) error {
	got, err := s.tc.Field(field)
	if err != nil {
		return err
	}
	n, ok := got.(float64)
	if !ok || int(n) != want {
		return fmt.Errorf("expected %s to be %d, got %v", field, want, got)
	}
	return nil
}

func (s *registrySteps) fieldShouldEqualString(ctx context.Context, field, want string) error {
	got, err := s.tc.Field(field)
	if err != nil {
		return err
	}
	str, ok := got.(string)
	if !ok || !strings.EqualFold(str, want) {
		return fmt.Errorf("expected %s to be %q, got %v", field, want, got)
	}
	return nil
}
