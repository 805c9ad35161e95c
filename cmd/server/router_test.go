package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regnet/internal/identity"
	"regnet/internal/ledger"
	"regnet/internal/platform/metrics"
	"regnet/internal/registry/service"
	"regnet/pkg/testutil"
)

type failingHealth struct{}

func (failingHealth) Health(context.Context) error { return errors.New("down") }

func newTestRouter(t *testing.T, health healthChecker) (http.Handler, *identity.JWTService) {
	t.Helper()
	reg := prometheus.NewRegistry()
	tokens := identity.NewJWTService("router-test-key", "regnet")
	l := ledger.New(ledger.NewInMemory())
	if health == nil {
		health = l
	}
	return newRouter(routerDeps{
		service:  service.New(l),
		health:   health,
		tokens:   tokens,
		metrics:  metrics.New(reg),
		gatherer: reg,
		logger:   slog.New(slog.DiscardHandler),
	}), tokens
}

func TestRouterRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, "/properties/P-1", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestRouterTokenRoleReachesService(t *testing.T) {
	r, tokens := newTestRouter(t, nil)
	registrar, err := tokens.GenerateToken("land-office", "registrarMSP", time.Minute)
	require.NoError(t, err)
	user, err := tokens.GenerateToken("citizen", "usersMSP", time.Minute)
	require.NoError(t, err)

	post := func(token, path string, body any) int {
		req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, path, body), token)
		return testutil.DoRequest(r, req).Code
	}

	body := map[string]string{"name": "uma", "national_id": "U1"}
	assert.Equal(t, http.StatusForbidden, post(registrar, "/users/requests", body))
	assert.Equal(t, http.StatusCreated, post(user, "/users/requests", body))
	assert.Equal(t, http.StatusForbidden, post(user, "/users/approvals", body))
	assert.Equal(t, http.StatusCreated, post(registrar, "/users/approvals", body))
}

func TestHealthAndMetricsAreOpen(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "regnet_http_requests_total")

	unhealthy, _ := newTestRouter(t, failingHealth{})
	w = httptest.NewRecorder()
	unhealthy.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
