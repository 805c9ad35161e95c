// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them. Tests inject them directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithInvoker(ctx, requestcontext.Invoker{Subject: "alice", MSPID: "usersMSP"})
package requestcontext

import (
	"context"
	"time"
)

// Invoker is the identity that submitted the current invocation.
type Invoker struct {
	Subject string
	MSPID   string
}

type (
	invokerKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	txIDKey        struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyInvoker     = invokerKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeyTxID        = txIDKey{}
)

// InvokerFrom retrieves the invoking identity. Returns the zero value if not set.
func InvokerFrom(ctx context.Context) Invoker {
	if inv, ok := ctx.Value(ContextKeyInvoker).(Invoker); ok {
		return inv
	}
	return Invoker{}
}

// WithInvoker injects the invoking identity into the context.
func WithInvoker(ctx context.Context, inv Invoker) context.Context {
	return context.WithValue(ctx, ContextKeyInvoker, inv)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// TxID retrieves the ledger invocation ID from the context.
func TxID(ctx context.Context) string {
	if txID, ok := ctx.Value(ContextKeyTxID).(string); ok {
		return txID
	}
	return ""
}

// WithTxID injects the ledger invocation ID into the context.
func WithTxID(ctx context.Context, txID string) context.Context {
	return context.WithValue(ctx, ContextKeyTxID, txID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
//
// Ledger invocations pin the time before running so a retried invocation
// produces the same records.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}

// HasTime reports whether a request time was injected.
func HasTime(ctx context.Context) bool {
	_, ok := ctx.Value(ContextKeyRequestTime).(time.Time)
	return ok
}
