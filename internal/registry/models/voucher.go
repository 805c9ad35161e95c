package models

import (
	"fmt"

	dErrors "regnet/pkg/domain-errors"
)

var voucherAmounts = map[string]int64{
	"upg100":  100,
	"upg500":  500,
	"upg1000": 1000,
}

// VoucherAmount returns the coins a recharge voucher is worth.
func VoucherAmount(code string) (int64, error) {
	amount, ok := voucherAmounts[code]
	if !ok {
		return 0, dErrors.New(dErrors.CodeInvalidVoucher, fmt.Sprintf("voucher %q is not recognised", code))
	}
	return amount, nil
}
