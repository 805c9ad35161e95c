package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"regnet/e2e/steps/registry"
)

// TestContext drives a running regnet server over HTTP. Tokens are minted
// ahead of time with cmd/devtoken.
type TestContext struct {
	baseURL string
	tokens  map[string]string
	client  *http.Client
	suffix  string

	status int
	body   map[string]any
}

func NewTestContext(baseURL string, tokens map[string]string) *TestContext {
	return &TestContext{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset gives every scenario fresh identifiers so runs against a persistent
// ledger do not collide.
func (tc *TestContext) Reset() {
	tc.suffix = strconv.FormatInt(time.Now().UnixNano(), 36)
	tc.status = 0
	tc.body = nil
}

func (tc *TestContext) Unique(name string) string {
	return name + "-" + tc.suffix
}

func (tc *TestContext) Do(role, method, path string, body any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, tc.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := tc.tokens[role]; ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body = nil
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &tc.body); err != nil {
			return fmt.Errorf("decode response %q: %w", raw, err)
		}
	}
	return nil
}

func (tc *TestContext) Status() int {
	return tc.status
}

// Field walks a dotted path such as "buyer.coin_balance" in the last response.
func (tc *TestContext) Field(path string) (any, error) {
	var cur any = tc.body
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q not found in response", path)
		}
		cur, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in response", path)
		}
	}
	return cur, nil
}

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.Reset()
		return ctx, nil
	})
	registry.RegisterSteps(ctx, tc)
}
