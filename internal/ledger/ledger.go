// Package ledger is the only point of contact with the key-value world state.
//
// Business logic runs inside RunInTx. Each call is one invocation: reads are
// served from committed state and recorded with the version observed, writes
// are buffered, and the whole write set is committed by the backing Store only
// after the invocation function returns nil. A read key whose version changed
// before commit fails the commit with sentinel.ErrConflict.
package ledger

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/platform/sentinel"
	"regnet/pkg/requestcontext"
)

// Stub is the view of the world state handed to an invocation.
type Stub interface {
	TxID() string
	// GetState returns nil when no value is stored at key.
	GetState(ctx context.Context, key string) ([]byte, error)
	// GetStates reads several keys as one batch. Absent keys are omitted.
	GetStates(ctx context.Context, keys ...string) (map[string][]byte, error)
	PutState(ctx context.Context, key string, value []byte) error
	CreateCompositeKey(objectType string, attributes []string) (string, error)
}

// Versioned is a stored value together with its commit version.
// Version 0 means the key has never been written.
type Versioned struct {
	Value   []byte
	Version uint64
}

// Write is one buffered put.
type Write struct {
	Key   string
	Value []byte
}

// WriteSet is everything an invocation wants to commit.
type WriteSet struct {
	TxID   string
	Reads  map[string]uint64
	Writes []Write
}

// Store is a versioned key-value backend.
type Store interface {
	// Get returns sentinel.ErrNotFound when no value is stored at key.
	Get(ctx context.Context, key string) (Versioned, error)
	// GetMany omits absent keys from the result.
	GetMany(ctx context.Context, keys []string) (map[string]Versioned, error)
	// Commit applies every write or none. It returns sentinel.ErrConflict
	// when any read version no longer matches.
	Commit(ctx context.Context, set WriteSet) error
}

// Pinger is implemented by stores that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	defaultTxTimeout  = 5 * time.Second
	defaultMaxRetries = 2
)

// Ledger runs invocations against a Store.
type Ledger struct {
	store      Store
	logger     *slog.Logger
	timeout    time.Duration
	maxRetries int
}

type Option func(*Ledger)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithTimeout bounds invocations whose context carries no deadline.
func WithTimeout(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithMaxRetries sets how many times an invocation is re-run after a commit
// conflict. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(l *Ledger) {
		if n >= 0 {
			l.maxRetries = n
		}
	}
}

// New constructs a Ledger over store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:      store,
		logger:     slog.New(slog.DiscardHandler),
		timeout:    defaultTxTimeout,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RunInTx executes fn as a single invocation. Nothing fn puts is visible to
// anyone unless fn returns nil and the commit succeeds.
func (l *Ledger) RunInTx(ctx context.Context, fn func(ctx context.Context, stub Stub) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "invocation aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	if !requestcontext.HasTime(ctx) {
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
	}

	for attempt := 0; ; attempt++ {
		txID := uuid.NewString()
		txCtx := requestcontext.WithTxID(ctx, txID)
		stub := newTxStub(l.store, txID)

		if err := fn(txCtx, stub); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "invocation aborted before commit")
		}

		err := l.store.Commit(txCtx, stub.writeSet())
		stub.close()
		if err == nil {
			return nil
		}
		if errors.Is(err, sentinel.ErrConflict) {
			if attempt < l.maxRetries {
				l.logger.WarnContext(ctx, "ledger commit conflict, retrying",
					"tx_id", txID,
					"attempt", attempt+1,
				)
				continue
			}
			return dErrors.Wrap(err, dErrors.CodeConflict, "concurrent invocation modified the same records")
		}
		if errors.Is(err, sentinel.ErrUnavailable) {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "ledger backend unavailable")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit invocation")
	}
}

// Health reports backend health when the store supports it. Failures wrap
// sentinel.ErrUnavailable.
func (l *Ledger) Health(ctx context.Context) error {
	p, ok := l.store.(Pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Unavailable marks connection-level failures (network errors, broken
// driver connections) with sentinel.ErrUnavailable and returns other errors
// unchanged.
func Unavailable(err error) error {
	if err == nil || errors.Is(err, sentinel.ErrUnavailable) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return err
}
