//go:build unit || e2e

package builder

import (
	"time"

	"tour-booking/internal/domain/voucher"
	reqdto "tour-booking/internal/handler/dto/request"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VoucherBuilder struct {
	ID          uuid.UUID
	Code        string
	Percent     int64
	Description string
	ValidFrom   time.Time
	ValidUntil  time.Time
	UsageLimit  int
	UsedCount   int
	IsActive    bool
	CreatedAt   time.Time
}

// NewVoucherBuilder yields SAVE10: 10% off, one use, valid through 2025.
func NewVoucherBuilder() *VoucherBuilder {
	return &VoucherBuilder{
		ID:          uuid.New(),
		Code:        "SAVE10",
		Percent:     10,
		Description: "10% off",
		ValidFrom:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:  time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
		UsageLimit:  1,
		IsActive:    true,
		CreatedAt:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (v *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(v)
	return v
}

func (v *VoucherBuilder) BuildDomain() *voucher.Voucher {
	return voucher.ReconstructVoucher(
		v.ID,
		voucher.Code(voucher.NormalizeCode(v.Code)),
		voucher.MustPercent(v.Percent),
		v.Description,
		v.ValidFrom, v.ValidUntil,
		v.UsageLimit, v.UsedCount,
		v.IsActive,
		v.CreatedAt, v.CreatedAt,
	)
}

func (v *VoucherBuilder) BuildView() *queries.VoucherView {
	return queries.NewVoucherView(v.BuildDomain())
}

func (v *VoucherBuilder) BuildCreateInput() commands.CreateVoucherInput {
	limit := v.UsageLimit
	active := v.IsActive
	return commands.CreateVoucherInput{
		Code:            v.Code,
		DiscountPercent: decimal.NewFromInt(v.Percent),
		Description:     v.Description,
		ValidFrom:       v.ValidFrom,
		ValidUntil:      v.ValidUntil,
		UsageLimit:      &limit,
		IsActive:        &active,
	}
}

func (v *VoucherBuilder) BuildCreateRequestDTO() reqdto.CreateVoucherRequest {
	in := v.BuildCreateInput()
	pct := in.DiscountPercent
	return reqdto.CreateVoucherRequest{
		Code:            in.Code,
		DiscountPercent: &pct,
		Description:     in.Description,
		ValidFrom:       in.ValidFrom,
		ValidUntil:      in.ValidUntil,
		UsageLimit:      in.UsageLimit,
		IsActive:        in.IsActive,
	}
}

// Fluent builder methods
func (v *VoucherBuilder) WithCode(code string) *VoucherBuilder {
	v.Code = code
	return v
}

func (v *VoucherBuilder) WithPercent(p int64) *VoucherBuilder {
	v.Percent = p
	return v
}

func (v *VoucherBuilder) WithUsage(limit, used int) *VoucherBuilder {
	v.UsageLimit = limit
	v.UsedCount = used
	return v
}

func (v *VoucherBuilder) WithWindow(from, until time.Time) *VoucherBuilder {
	v.ValidFrom = from
	v.ValidUntil = until
	return v
}

func (v *VoucherBuilder) AsInactive() *VoucherBuilder {
	v.IsActive = false
	return v
}
