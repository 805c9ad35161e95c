// Package redisstore keeps the world state in Redis. Every ledger key is a
// hash with the value under "v" and the commit version under "ver".
//
// Commit uses optimistic locking: the read and written keys are WATCHed, the
// observed versions are re-checked, and all writes are sent in one MULTI/EXEC.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"regnet/internal/ledger"
	"regnet/pkg/platform/sentinel"
)

const (
	defaultKeyPrefix = "regnet:state:"
	fieldValue       = "v"
	fieldVersion     = "ver"
)

// Store implements ledger.Store over a go-redis client.
type Store struct {
	client *redis.Client
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix namespaces all hashes, e.g. per channel.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New constructs a Redis-backed world state.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) redisKey(key string) string {
	return s.prefix + key
}

func (s *Store) Get(ctx context.Context, key string) (ledger.Versioned, error) {
	vals, err := s.client.HMGet(ctx, s.redisKey(key), fieldValue, fieldVersion).Result()
	if err != nil {
		return ledger.Versioned{}, fmt.Errorf("read state: %w", ledger.Unavailable(err))
	}
	return decode(vals)
}

func (s *Store) GetMany(ctx context.Context, keys []string) (map[string]ledger.Versioned, error) {
	out := make(map[string]ledger.Versioned, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.SliceCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HMGet(ctx, s.redisKey(key), fieldValue, fieldVersion)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("read states: %w", ledger.Unavailable(err))
	}

	for i, cmd := range cmds {
		v, err := decode(cmd.Val())
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[keys[i]] = v
	}
	return out, nil
}

func (s *Store) Commit(ctx context.Context, set ledger.WriteSet) error {
	watched := make([]string, 0, len(set.Reads)+len(set.Writes))
	for key := range set.Reads {
		watched = append(watched, s.redisKey(key))
	}
	for _, w := range set.Writes {
		if _, ok := set.Reads[w.Key]; !ok {
			watched = append(watched, s.redisKey(w.Key))
		}
	}

	txf := func(tx *redis.Tx) error {
		for key, expected := range set.Reads {
			current, err := tx.HGet(ctx, s.redisKey(key), fieldVersion).Uint64()
			if err != nil && !errors.Is(err, redis.Nil) {
				return fmt.Errorf("check version: %w", err)
			}
			if current != expected {
				return sentinel.ErrConflict
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, w := range set.Writes {
				k := s.redisKey(w.Key)
				pipe.HSet(ctx, k, fieldValue, w.Value)
				pipe.HIncrBy(ctx, k, fieldVersion, 1)
			}
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, watched...)
	if errors.Is(err, redis.TxFailedErr) {
		return sentinel.ErrConflict
	}
	if err != nil && !errors.Is(err, sentinel.ErrConflict) {
		return fmt.Errorf("commit: %w", ledger.Unavailable(err))
	}
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decode(vals []any) (ledger.Versioned, error) {
	if len(vals) != 2 || vals[0] == nil {
		return ledger.Versioned{}, sentinel.ErrNotFound
	}
	value, ok := vals[0].(string)
	if !ok {
		return ledger.Versioned{}, fmt.Errorf("%w: unexpected value type %T", sentinel.ErrCorrupt, vals[0])
	}
	verStr, _ := vals[1].(string)
	version, err := strconv.ParseUint(verStr, 10, 64)
	if err != nil {
		return ledger.Versioned{}, fmt.Errorf("%w: bad version %q", sentinel.ErrCorrupt, verStr)
	}
	return ledger.Versioned{Value: []byte(value), Version: version}, nil
}
