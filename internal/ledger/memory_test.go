package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"regnet/internal/ledger"
	"regnet/internal/ledger/ledgertest"
)

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &ledgertest.StoreSuite{
		NewStore: func() ledger.Store { return ledger.NewInMemory() },
	})
}
