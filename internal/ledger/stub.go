package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"regnet/pkg/platform/sentinel"
)

// txStub serves one invocation. Reads are cached so the invocation sees a
// consistent snapshot; puts are buffered in first-put order with the last
// value winning.
type txStub struct {
	store  Store
	txID   string
	reads  map[string]Versioned
	writes map[string][]byte
	order  []string
	closed bool
}

func newTxStub(store Store, txID string) *txStub {
	return &txStub{
		store:  store,
		txID:   txID,
		reads:  make(map[string]Versioned),
		writes: make(map[string][]byte),
	}
}

func (s *txStub) TxID() string {
	return s.txID
}

func (s *txStub) GetState(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("get state: empty key")
	}
	if v, ok := s.reads[key]; ok {
		return cloneBytes(v.Value), nil
	}
	v, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, fmt.Errorf("get state %q: %w", key, err)
		}
		v = Versioned{}
	}
	s.reads[key] = v
	return cloneBytes(v.Value), nil
}

func (s *txStub) GetStates(ctx context.Context, keys ...string) (map[string][]byte, error) {
	var missing []string
	for _, key := range keys {
		if key == "" {
			return nil, fmt.Errorf("get states: empty key")
		}
		if _, ok := s.reads[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		found, err := s.store.GetMany(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("get states: %w", err)
		}
		for _, key := range missing {
			s.reads[key] = found[key]
		}
	}

	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if v := s.reads[key]; v.Value != nil {
			out[key] = cloneBytes(v.Value)
		}
	}
	return out, nil
}

func (s *txStub) PutState(_ context.Context, key string, value []byte) error {
	if s.closed {
		return fmt.Errorf("put state %q: invocation already finished", key)
	}
	if key == "" {
		return fmt.Errorf("put state: empty key")
	}
	if value == nil {
		return fmt.Errorf("put state %q: nil value", key)
	}
	if _, ok := s.writes[key]; !ok {
		s.order = append(s.order, key)
	}
	s.writes[key] = cloneBytes(value)
	return nil
}

func (s *txStub) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	return CreateCompositeKey(objectType, attributes)
}

func (s *txStub) writeSet() WriteSet {
	set := WriteSet{
		TxID:   s.txID,
		Reads:  make(map[string]uint64, len(s.reads)),
		Writes: make([]Write, 0, len(s.order)),
	}
	for key, v := range s.reads {
		set.Reads[key] = v.Version
	}
	for _, key := range s.order {
		set.Writes = append(set.Writes, Write{Key: key, Value: s.writes[key]})
	}
	return set
}

func (s *txStub) close() {
	s.closed = true
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return bytes.Clone(b)
}
