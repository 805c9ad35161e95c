// Package ledgertest holds the behaviour every ledger.Store must share.
// Backend packages run it from their own tests.
package ledgertest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/suite"

	"regnet/internal/ledger"
	"regnet/pkg/platform/sentinel"
)

// StoreSuite exercises a ledger.Store. Embed it and set NewStore.
type StoreSuite struct {
	suite.Suite
	// NewStore returns an empty store for each test.
	NewStore func() ledger.Store
	store    ledger.Store
	ctx      context.Context
}

func (s *StoreSuite) SetupTest() {
	s.Require().NotNil(s.NewStore, "NewStore must be set")
	s.store = s.NewStore()
	s.ctx = context.Background()
}

func (s *StoreSuite) commit(reads map[string]uint64, writes ...ledger.Write) error {
	if reads == nil {
		reads = map[string]uint64{}
	}
	return s.store.Commit(s.ctx, ledger.WriteSet{TxID: "tx", Reads: reads, Writes: writes})
}

func (s *StoreSuite) TestGetAbsent() {
	_, err := s.store.Get(s.ctx, "\x00ns\x00missing\x00")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	got, err := s.store.GetMany(s.ctx, []string{"\x00ns\x00missing\x00"})
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *StoreSuite) TestCreateThenUpdate() {
	key := "\x00ns\x00alice-1\x00"

	s.Require().NoError(s.commit(map[string]uint64{key: 0}, ledger.Write{Key: key, Value: []byte(`{"v":1}`)}))
	v, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(`{"v":1}`, string(v.Value))
	s.Equal(uint64(1), v.Version)

	s.Require().NoError(s.commit(map[string]uint64{key: 1}, ledger.Write{Key: key, Value: []byte(`{"v":2}`)}))
	v, err = s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(`{"v":2}`, string(v.Value))
	s.Equal(uint64(2), v.Version)
}

func (s *StoreSuite) TestStaleVersionConflicts() {
	key := "\x00ns\x00bob-2\x00"
	s.Require().NoError(s.commit(map[string]uint64{key: 0}, ledger.Write{Key: key, Value: []byte("a")}))

	s.Run("stale update", func() {
		err := s.commit(map[string]uint64{key: 0}, ledger.Write{Key: key, Value: []byte("b")})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("stale read-only key aborts other writes", func() {
		other := "\x00ns\x00other\x00"
		err := s.commit(map[string]uint64{key: 7, other: 0}, ledger.Write{Key: other, Value: []byte("x")})
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		_, err = s.store.Get(s.ctx, other)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	v, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Equal("a", string(v.Value))
}

func (s *StoreSuite) TestMultiKeyAtomicity() {
	a := "\x00ns\x00a\x00"
	b := "\x00ns\x00b\x00"
	c := "\x00ns\x00c\x00"
	s.Require().NoError(s.commit(map[string]uint64{b: 0}, ledger.Write{Key: b, Value: []byte("b0")}))

	// a and c are fresh, b is stale: nothing may land
	err := s.commit(map[string]uint64{a: 0, b: 0, c: 0},
		ledger.Write{Key: a, Value: []byte("a1")},
		ledger.Write{Key: b, Value: []byte("b1")},
		ledger.Write{Key: c, Value: []byte("c1")},
	)
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	got, err := s.store.GetMany(s.ctx, []string{a, b, c})
	s.Require().NoError(err)
	s.Len(got, 1)
	s.Equal("b0", string(got[b].Value))
}

func (s *StoreSuite) TestBlindWrite() {
	key := "\x00ns\x00blind\x00"
	s.Require().NoError(s.commit(nil, ledger.Write{Key: key, Value: []byte("1")}))
	s.Require().NoError(s.commit(nil, ledger.Write{Key: key, Value: []byte("2")}))

	v, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Equal("2", string(v.Value))
	s.Equal(uint64(2), v.Version)
}

func (s *StoreSuite) TestConcurrentCreateCommitsOnce() {
	key := "\x00ns\x00race\x00"
	const goroutines = 10
	var wg sync.WaitGroup
	var committed atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := s.store.Commit(s.ctx, ledger.WriteSet{
				TxID:   "tx",
				Reads:  map[string]uint64{key: 0},
				Writes: []ledger.Write{{Key: key, Value: []byte{byte('a' + idx)}}},
			})
			if err == nil {
				committed.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), committed.Load())
	v, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(uint64(1), v.Version)
}
