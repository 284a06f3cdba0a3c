package voucher

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationResult is the outcome of validating a code. When Valid is false
// only Reason is set.
type ValidationResult struct {
	Valid           bool
	Reason          Reason
	VoucherID       *uuid.UUID
	Code            string
	DiscountPercent *decimal.Decimal
	DiscountAmount  *int64
	FinalAmount     *int64
}

func Rejected(reason Reason) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason}
}
