package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"regnet/internal/ledger"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/platform/sentinel"
)

// Lookup is the result of reading a record: either Found with a value, or absent.
type Lookup[T any] struct {
	Value T
	Found bool
}

// record is implemented by every persisted model.
type record interface {
	Validate() error
}

func getRecord[T any](ctx context.Context, stub ledger.Stub, key string) (Lookup[T], error) {
	raw, err := stub.GetState(ctx, key)
	if err != nil {
		return Lookup[T]{}, readError(err)
	}
	return decodeRecord[T](key, raw)
}

func decodeRecord[T any](key string, raw []byte) (Lookup[T], error) {
	if raw == nil {
		return Lookup[T]{}, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return Lookup[T]{}, dErrors.Wrap(err, dErrors.CodeInternalInconsistency,
			fmt.Sprintf("record at %s does not decode", ledger.PrintableKey(key)))
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return Lookup[T]{}, dErrors.New(dErrors.CodeInternalInconsistency,
			fmt.Sprintf("record at %s is null", ledger.PrintableKey(key)))
	}
	if r, ok := any(v).(record); ok {
		if err := r.Validate(); err != nil {
			return Lookup[T]{}, dErrors.Wrap(err, dErrors.CodeInternalInconsistency,
				fmt.Sprintf("record at %s is malformed", ledger.PrintableKey(key)))
		}
	}
	return Lookup[T]{Value: v, Found: true}, nil
}

func putRecord(ctx context.Context, stub ledger.Stub, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode record")
	}
	if err := stub.PutState(ctx, key, raw); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to write %s", ledger.PrintableKey(key)))
	}
	return nil
}

func readError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "ledger read timed out")
	}
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "ledger backend unavailable")
	}
	if errors.Is(err, sentinel.ErrCorrupt) {
		return dErrors.Wrap(err, dErrors.CodeInternalInconsistency, "stored state is corrupt")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read world state")
}

func requireFields(fields ...string) error {
	for i := 0; i < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return dErrors.New(dErrors.CodeValidation, fields[i]+" is required")
		}
	}
	return nil
}
