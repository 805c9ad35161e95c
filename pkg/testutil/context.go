package testutil

import (
	"context"
	"net/http"
	"time"

	"regnet/pkg/requestcontext"
)

// AsInvoker attaches the invoking identity the auth middleware would set.
func AsInvoker(req *http.Request, subject, mspID string) *http.Request {
	ctx := requestcontext.WithInvoker(req.Context(), requestcontext.Invoker{Subject: subject, MSPID: mspID})
	return req.WithContext(ctx)
}

// AtTime pins the request time.
func AtTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// InvokerContext is the service-level equivalent of AsInvoker.
func InvokerContext(ctx context.Context, subject, mspID string) context.Context {
	return requestcontext.WithInvoker(ctx, requestcontext.Invoker{Subject: subject, MSPID: mspID})
}

