package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"regnet/internal/ledger"
	ledgermocks "regnet/internal/ledger/mocks"
	"regnet/internal/registry/authz"
	"regnet/internal/registry/events"
	eventmocks "regnet/internal/registry/events/mocks"
	"regnet/internal/registry/keys"
	"regnet/internal/registry/models"
	"regnet/internal/registry/service/mocks"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/platform/sentinel"
	"regnet/pkg/requestcontext"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func TestRoleFailureNeverTouchesLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mocks.NewMockLedger(ctrl)
	l.EXPECT().RunInTx(gomock.Any(), gomock.Any()).Times(0)
	svc := New(l)

	registrar := asRegistrar()
	user := asUser()

	_, err := svc.RequestUser(registrar, "a", "e", "p", "1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	_, err = svc.ApproveUser(user, "a", "1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	_, err = svc.RechargeAccount(registrar, "a", "1", "upg100")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	_, err = svc.RequestProperty(registrar, "P", 1, "registered", "a", "1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	_, err = svc.ApproveProperty(user, "P")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	_, err = svc.UpdateProperty(registrar, "P", "a", "1", "onSale")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	_, err = svc.PurchaseProperty(context.Background(), "P", "a", "1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestCustomRoleMapping(t *testing.T) {
	svc := New(ledger.New(ledger.NewInMemory()),
		WithRoleMapper(authz.RoleMapper{RegistrarMSP: "LandOfficeMSP", UserMSP: "CitizensMSP"}))

	_, err := svc.RequestUser(asUser(), "a", "e", "p", "1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))

	_, err = svc.RequestUser(as("CitizensMSP", "c"), "a", "e", "p", "1")
	require.NoError(t, err)
	_, err = svc.ApproveUser(as("LandOfficeMSP", "r"), "a", "1")
	require.NoError(t, err)
}

// runWith makes the mock ledger run invocations against stub.
func runWith(l *mocks.MockLedger, stub ledger.Stub) {
	l.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, ledger.Stub) error) error {
			return fn(ctx, stub)
		})
}

func TestPurchaseFailedPutFailsOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mocks.NewMockLedger(ctrl)
	stub := ledgermocks.NewMockStub(ctrl)
	pub := eventmocks.NewMockPublisher(ctrl)
	svc := New(l, WithPublisher(pub))

	propertyKey, _ := keys.ApprovedProperty(keys.Default, "P-1")
	buyerKey, _ := keys.ApprovedUser(keys.Default, "buyer", "B")
	sellerKey, _ := keys.ApprovedUser(keys.Default, "seller", "S")
	encode := func(v any) []byte {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return raw
	}

	runWith(l, stub)
	stub.EXPECT().TxID().Return("tx-1")
	stub.EXPECT().CreateCompositeKey(gomock.Any(), gomock.Any()).
		DoAndReturn(ledger.CreateCompositeKey).AnyTimes()
	stub.EXPECT().GetState(gomock.Any(), propertyKey).Return(encode(models.ApprovedProperty{
		PropertyID: "P-1", OwnerKey: sellerKey, Price: 10, Status: models.StatusOnSale,
	}), nil)
	stub.EXPECT().GetStates(gomock.Any(), string(buyerKey), string(sellerKey)).Return(map[string][]byte{
		string(buyerKey):  encode(models.ApprovedUser{Name: "buyer", NationalID: "B", CoinBalance: 50}),
		string(sellerKey): encode(models.ApprovedUser{Name: "seller", NationalID: "S"}),
	}, nil)
	gomock.InOrder(
		stub.EXPECT().PutState(gomock.Any(), string(sellerKey), gomock.Any()).Return(nil),
		stub.EXPECT().PutState(gomock.Any(), string(buyerKey), gomock.Any()).Return(nil),
		stub.EXPECT().PutState(gomock.Any(), propertyKey, gomock.Any()).Return(errors.New("endorsement rejected")),
	)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.PurchaseProperty(asUser(), "P-1", "buyer", "B")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(err))
}

func TestPurchaseNoWritesWhenChecksFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mocks.NewMockLedger(ctrl)
	stub := ledgermocks.NewMockStub(ctrl)
	svc := New(l)

	propertyKey, _ := keys.ApprovedProperty(keys.Default, "P-1")
	sellerKey, _ := keys.ApprovedUser(keys.Default, "seller", "S")
	raw, err := json.Marshal(models.ApprovedProperty{PropertyID: "P-1", OwnerKey: sellerKey, Price: 10, Status: models.StatusRegistered})
	require.NoError(t, err)

	runWith(l, stub)
	stub.EXPECT().TxID().Return("tx-1")
	stub.EXPECT().CreateCompositeKey(gomock.Any(), gomock.Any()).
		DoAndReturn(ledger.CreateCompositeKey).AnyTimes()
	stub.EXPECT().GetState(gomock.Any(), propertyKey).Return(raw, nil)
	stub.EXPECT().GetStates(gomock.Any(), gomock.Any()).Times(0)
	stub.EXPECT().PutState(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err = svc.PurchaseProperty(asUser(), "P-1", "buyer", "B")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotForSale))
}

func TestReadFailureIsInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mocks.NewMockLedger(ctrl)
	stub := ledgermocks.NewMockStub(ctrl)
	svc := New(l)

	runWith(l, stub)
	stub.EXPECT().TxID().Return("tx-1")
	stub.EXPECT().CreateCompositeKey(gomock.Any(), gomock.Any()).
		DoAndReturn(ledger.CreateCompositeKey).AnyTimes()
	stub.EXPECT().GetState(gomock.Any(), gomock.Any()).Return(nil, errors.New("peer unreachable"))

	_, err := svc.ViewProperty(asUser(), "P-1")
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(err))
}

func TestBackendReadFailuresAreClassified(t *testing.T) {
	cases := map[error]dErrors.Code{
		fmt.Errorf("read state: %w", sentinel.ErrUnavailable): dErrors.CodeUnavailable,
		fmt.Errorf("read state: %w", sentinel.ErrCorrupt):     dErrors.CodeInternalInconsistency,
		context.DeadlineExceeded:                               dErrors.CodeTimeout,
	}
	for readErr, want := range cases {
		t.Run(string(want), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			l := mocks.NewMockLedger(ctrl)
			stub := ledgermocks.NewMockStub(ctrl)
			svc := New(l)

			runWith(l, stub)
			stub.EXPECT().TxID().Return("tx-1")
			stub.EXPECT().CreateCompositeKey(gomock.Any(), gomock.Any()).
				DoAndReturn(ledger.CreateCompositeKey).AnyTimes()
			stub.EXPECT().GetState(gomock.Any(), gomock.Any()).Return(nil, readErr)

			_, err := svc.ViewProperty(asUser(), "P-1")
			assert.Equal(t, want, dErrors.CodeOf(err))
		})
	}
}

func TestEventsFollowCommits(t *testing.T) {
	pub := &recordingPublisher{}
	svc := New(ledger.New(ledger.NewInMemory()), WithPublisher(pub))
	ctx := requestcontext.WithRequestID(asUser(), "req-1")

	_, err := svc.RequestUser(ctx, "amy", "a@x", "1", "A1")
	require.NoError(t, err)
	_, err = svc.RequestUser(ctx, "amy", "a@x", "1", "A1")
	require.Error(t, err)
	_, err = svc.ApproveUser(asRegistrar(), "amy", "A1")
	require.NoError(t, err)
	_, err = svc.RechargeAccount(ctx, "amy", "A1", "upg1000")
	require.NoError(t, err)
	_, err = svc.ViewUser(ctx, "amy", "A1")
	require.NoError(t, err)

	assert.Equal(t, []events.Type{events.UserRequested, events.UserApproved, events.AccountRecharged}, pub.types())
	for _, e := range pub.events {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.TxID)
		assert.Equal(t, fixedNow, e.OccurredAt)
	}
	recharged, ok := pub.events[2].Data.(models.ApprovedUser)
	require.True(t, ok)
	assert.Equal(t, int64(1000), recharged.CoinBalance)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := eventmocks.NewMockPublisher(ctrl)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	svc := New(ledger.New(ledger.NewInMemory()), WithPublisher(pub))

	req, err := svc.RequestUser(asUser(), "bea", "b@x", "1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "bea", req.Name)
}

func TestStalledPublisherDoesNotHoldTheOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := eventmocks.NewMockPublisher(ctrl)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ events.Event) error {
		<-ctx.Done()
		return ctx.Err()
	})
	svc := New(ledger.New(ledger.NewInMemory()), WithPublisher(pub), WithPublishTimeout(50*time.Millisecond))

	start := time.Now()
	req, err := svc.RequestUser(asUser(), "cal", "c@x", "1", "C1")
	require.NoError(t, err)
	assert.Equal(t, "cal", req.Name)
	assert.Less(t, time.Since(start), 5*time.Second)

	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)
	_, err = svc.RequestUser(asUser(), "cal", "c@x", "1", "C1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDuplicateRequest), "the first request committed")
}
