package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regnet/internal/registry/keys"
	dErrors "regnet/pkg/domain-errors"
)

func TestParsePropertyStatus(t *testing.T) {
	for _, ok := range []string{"registered", "onSale"} {
		s, err := ParsePropertyStatus(ok)
		require.NoError(t, err)
		assert.Equal(t, ok, string(s))
	}
	for _, bad := range []string{"", "sold", "onsale", "Registered"} {
		_, err := ParsePropertyStatus(bad)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidStatus), bad)
	}
}

func TestVoucherAmount(t *testing.T) {
	for code, want := range map[string]int64{"upg100": 100, "upg500": 500, "upg1000": 1000} {
		got, err := VoucherAmount(code)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := VoucherAmount("upg50")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidVoucher))
}

func TestUserRequestApprove(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	req := UserRequest{Name: "alice", Email: "a@x", Phone: "1", NationalID: "42", CreatedAt: created}
	approved := req.Approve()

	assert.Equal(t, int64(0), approved.CoinBalance)
	assert.Equal(t, req.Name, approved.Name)
	assert.Equal(t, created, approved.CreatedAt)
}

func TestApprovedUserWireFormat(t *testing.T) {
	raw, err := json.Marshal(ApprovedUser{Name: "alice", NationalID: "42", CoinBalance: 7})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "national_id")
	assert.Contains(t, fields, "coin_balance")
	assert.Contains(t, fields, "created_at")
}

func TestRecordShape(t *testing.T) {
	owner, err := keys.ApprovedUser(keys.Default, "alice", "42")
	require.NoError(t, err)
	requestKey, err := keys.UserRequest(keys.Default, "alice", "42")
	require.NoError(t, err)

	tests := []struct {
		name   string
		record interface{ Validate() error }
		valid  bool
	}{
		{"user request", UserRequest{Name: "alice", NationalID: "42"}, true},
		{"user request without national id", UserRequest{Name: "alice"}, false},
		{"approved user", ApprovedUser{Name: "alice", NationalID: "42", CoinBalance: 5}, true},
		{"empty approved user", ApprovedUser{}, false},
		{"negative balance", ApprovedUser{Name: "alice", NationalID: "42", CoinBalance: -1}, false},
		{"approved property", ApprovedProperty{PropertyID: "P-1", OwnerKey: owner, Price: 10, Status: StatusOnSale}, true},
		{"empty approved property", ApprovedProperty{}, false},
		{"owner outside approved users", ApprovedProperty{PropertyID: "P-1", OwnerKey: keys.UserKey(requestKey), Status: StatusRegistered}, false},
		{"unknown status", PropertyRequest{PropertyID: "P-1", OwnerKey: owner, Status: "sold"}, false},
		{"negative price", PropertyRequest{PropertyID: "P-1", OwnerKey: owner, Price: -1, Status: StatusRegistered}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.valid {
				assert.NoError(t, tt.record.Validate())
			} else {
				assert.Error(t, tt.record.Validate())
			}
		})
	}
}
