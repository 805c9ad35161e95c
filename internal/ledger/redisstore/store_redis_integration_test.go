//go:build integration

package redisstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"regnet/internal/ledger"
	"regnet/internal/ledger/ledgertest"
	"regnet/internal/ledger/redisstore"
	"regnet/pkg/testutil/containers"
)

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)

	suite.Run(t, &ledgertest.StoreSuite{
		NewStore: func() ledger.Store {
			if err := rc.FlushAll(context.Background()); err != nil {
				t.Fatalf("flush redis: %v", err)
			}
			return redisstore.New(rc.Client)
		},
	})
}
