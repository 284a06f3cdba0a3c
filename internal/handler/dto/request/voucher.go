package request

import (
	"time"

	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type CreateVoucherRequest struct {
	Code            string           `json:"code" binding:"required,max=32"`
	DiscountPercent *decimal.Decimal `json:"discountPercent" binding:"required"`
	Description     string           `json:"description" binding:"max=500"`
	ValidFrom       time.Time        `json:"validFrom" binding:"required"`
	ValidUntil      time.Time        `json:"validUntil" binding:"required"`
	UsageLimit      *int             `json:"usageLimit,omitempty" binding:"omitempty,min=0"`
	IsActive        *bool            `json:"isActive,omitempty"`
}

func (r CreateVoucherRequest) ToInput() commands.CreateVoucherInput {
	return commands.CreateVoucherInput{
		Code:            r.Code,
		DiscountPercent: *r.DiscountPercent,
		Description:     r.Description,
		ValidFrom:       r.ValidFrom,
		ValidUntil:      r.ValidUntil,
		UsageLimit:      r.UsageLimit,
		IsActive:        r.IsActive,
	}
}

// UpdateVoucherRequest is a partial update; absent fields keep their value.
type UpdateVoucherRequest struct {
	Code            *string          `json:"code,omitempty" binding:"omitempty,min=1,max=32"`
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty"`
	Description     *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	ValidFrom       *time.Time       `json:"validFrom,omitempty"`
	ValidUntil      *time.Time       `json:"validUntil,omitempty"`
	UsageLimit      *int             `json:"usageLimit,omitempty" binding:"omitempty,min=0"`
	IsActive        *bool            `json:"isActive,omitempty"`
}

func (r UpdateVoucherRequest) ToPatch() voucher.Patch {
	return voucher.Patch{
		Code:            r.Code,
		DiscountPercent: r.DiscountPercent,
		Description:     r.Description,
		ValidFrom:       r.ValidFrom,
		ValidUntil:      r.ValidUntil,
		UsageLimit:      r.UsageLimit,
		IsActive:        r.IsActive,
	}
}

type ValidateVoucherRequest struct {
	Code            string `json:"code" binding:"required,max=32"`
	ReferenceAmount *int64 `json:"referenceAmount,omitempty" binding:"omitempty,min=0"`
}

type ListVouchersQuery struct {
	Active bool `form:"active"`
}
