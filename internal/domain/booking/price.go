package booking

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const CurrencyIDR = "IDR"

var ErrInconsistentPrice = errors.New("price snapshot amounts are inconsistent")

// PriceSnapshot is fixed at creation so later catalog or voucher edits cannot
// change historical amounts. Amounts are whole rupiah.
type PriceSnapshot struct {
	UnitPrice       int64
	DiscountPercent decimal.Decimal
	DiscountAmount  int64
	FinalAmount     int64
	Currency        string
	VoucherID       *uuid.UUID
	VoucherCode     *string
}

func (p PriceSnapshot) Validate() error {
	if p.UnitPrice < 0 || p.DiscountAmount < 0 || p.FinalAmount < 0 {
		return ErrInconsistentPrice
	}
	if p.DiscountAmount > p.UnitPrice || p.UnitPrice-p.DiscountAmount != p.FinalAmount {
		return ErrInconsistentPrice
	}
	if p.Currency != CurrencyIDR {
		return ErrInconsistentPrice
	}
	return nil
}

func (p PriceSnapshot) HasVoucher() bool {
	return p.VoucherID != nil
}
