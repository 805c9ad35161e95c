package e2e

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs against a live server:
//
//	REGNET_E2E_BASE_URL=http://localhost:8080 \
//	REGNET_E2E_REGISTRAR_TOKEN=$(go run ../cmd/devtoken -role registrar) \
//	REGNET_E2E_USER_TOKEN=$(go run ../cmd/devtoken -role user) go test ./...
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("REGNET_E2E_BASE_URL")
	if baseURL == "" {
		t.Skip("REGNET_E2E_BASE_URL not set")
	}
	tc := NewTestContext(baseURL, map[string]string{
		"registrar": os.Getenv("REGNET_E2E_REGISTRAR_TOKEN"),
		"user":      os.Getenv("REGNET_E2E_USER_TOKEN"),
	})

	suite := godog.TestSuite{
		Name: "regnet",
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("e2e scenarios failed")
	}
}
