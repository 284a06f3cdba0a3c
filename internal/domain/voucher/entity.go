package voucher

import (
	"errors"
	"time"
	"unicode/utf8"

	"tour-booking/internal/pkg/patch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidWindow       = errors.New("voucher validFrom must not be after validUntil")
	ErrMissingWindow       = errors.New("voucher validity window is required")
	ErrNegativeUsageLimit  = errors.New("usage limit cannot be negative")
	ErrUsageLimitBelowUsed = errors.New("usage limit cannot be lower than the used count")
	ErrDescriptionTooLong  = errors.New("voucher description is too long (max 500 characters)")
	ErrUsageExhausted      = errors.New("voucher usage exhausted")
)

const MaxDescriptionLength = 500

type Voucher struct {
	id          uuid.UUID
	code        Code
	discount    Percent
	description string
	validFrom   time.Time
	validUntil  time.Time
	usageLimit  int
	usedCount   int
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

type Params struct {
	Code            string
	DiscountPercent decimal.Decimal
	Description     string
	ValidFrom       time.Time
	ValidUntil      time.Time
	UsageLimit      int
	IsActive        bool
}

// Patch holds the optional fields of an update. usedCount is not patchable.
type Patch struct {
	Code            *string
	DiscountPercent *decimal.Decimal
	Description     *string
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	UsageLimit      *int
	IsActive        *bool
}

func NewVoucher(p Params, now time.Time) (*Voucher, error) {
	v, err := build(uuid.New(), p, 0)
	if err != nil {
		return nil, err
	}
	v.createdAt = now
	v.updatedAt = now
	return v, nil
}

func build(id uuid.UUID, p Params, usedCount int) (*Voucher, error) {
	code, err := NewCode(p.Code)
	if err != nil {
		return nil, err
	}
	discount, err := NewPercent(p.DiscountPercent)
	if err != nil {
		return nil, err
	}
	if p.ValidFrom.IsZero() || p.ValidUntil.IsZero() {
		return nil, ErrMissingWindow
	}
	if p.ValidFrom.After(p.ValidUntil) {
		return nil, ErrInvalidWindow
	}
	if p.UsageLimit < 0 {
		return nil, ErrNegativeUsageLimit
	}
	if p.UsageLimit > 0 && p.UsageLimit < usedCount {
		return nil, ErrUsageLimitBelowUsed
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	return &Voucher{
		id:          id,
		code:        code,
		discount:    discount,
		description: p.Description,
		validFrom:   p.ValidFrom,
		validUntil:  p.ValidUntil,
		usageLimit:  p.UsageLimit,
		usedCount:   usedCount,
		isActive:    p.IsActive,
	}, nil
}

func ReconstructVoucher(
	id uuid.UUID,
	code Code,
	discount Percent,
	description string,
	validFrom, validUntil time.Time,
	usageLimit, usedCount int,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Voucher {
	return &Voucher{
		id:          id,
		code:        code,
		discount:    discount,
		description: description,
		validFrom:   validFrom,
		validUntil:  validUntil,
		usageLimit:  usageLimit,
		usedCount:   usedCount,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Apply returns a copy with the patch applied, validated as a whole.
func (v *Voucher) Apply(p Patch, now time.Time) (*Voucher, error) {
	params := Params{
		Code:            patch.Coalesce(p.Code, v.code.String()),
		DiscountPercent: patch.Coalesce(p.DiscountPercent, v.discount.Decimal()),
		Description:     patch.Coalesce(p.Description, v.description),
		ValidFrom:       patch.Coalesce(p.ValidFrom, v.validFrom),
		ValidUntil:      patch.Coalesce(p.ValidUntil, v.validUntil),
		UsageLimit:      patch.Coalesce(p.UsageLimit, v.usageLimit),
		IsActive:        patch.Coalesce(p.IsActive, v.isActive),
	}
	updated, err := build(v.id, params, v.usedCount)
	if err != nil {
		return nil, err
	}
	updated.createdAt = v.createdAt
	updated.updatedAt = now
	return updated, nil
}

// Check runs the usability checks in order and returns the first failing reason.
// Bounds of the validity window are inclusive.
func (v *Voucher) Check(now time.Time) Reason {
	switch {
	case !v.isActive:
		return ReasonInactive
	case now.Before(v.validFrom):
		return ReasonNotYetValid
	case now.After(v.validUntil):
		return ReasonExpired
	case !v.HasRemainingUses():
		return ReasonUsageLimitReached
	default:
		return ReasonNone
	}
}

func (v *Voucher) HasRemainingUses() bool {
	return v.usageLimit == 0 || v.usedCount < v.usageLimit
}

// Redeem consumes one use. Stores that cannot express a conditional update
// rely on this guard.
func (v *Voucher) Redeem(now time.Time) error {
	if !v.HasRemainingUses() {
		return ErrUsageExhausted
	}
	v.usedCount++
	v.updatedAt = now
	return nil
}

// Evaluate validates the voucher at now and, when referenceAmount is given,
// prices it. No amounts are returned for an invalid voucher.
func (v *Voucher) Evaluate(now time.Time, referenceAmount *int64) (ValidationResult, error) {
	if referenceAmount != nil && *referenceAmount < 0 {
		return ValidationResult{}, ErrNegativeAmount
	}
	if reason := v.Check(now); reason != ReasonNone {
		return Rejected(reason), nil
	}

	id := v.id
	pct := v.discount.Decimal()
	result := ValidationResult{
		Valid:           true,
		VoucherID:       &id,
		Code:            v.code.String(),
		DiscountPercent: &pct,
	}
	if referenceAmount != nil {
		discount := v.discount.DiscountOf(*referenceAmount)
		final := *referenceAmount - discount
		result.DiscountAmount = &discount
		result.FinalAmount = &final
	}
	return result, nil
}

func (v *Voucher) ID() uuid.UUID         { return v.id }
func (v *Voucher) Code() Code            { return v.code }
func (v *Voucher) Discount() Percent     { return v.discount }
func (v *Voucher) Description() string   { return v.description }
func (v *Voucher) ValidFrom() time.Time  { return v.validFrom }
func (v *Voucher) ValidUntil() time.Time { return v.validUntil }
func (v *Voucher) UsageLimit() int       { return v.usageLimit }
func (v *Voucher) UsedCount() int        { return v.usedCount }
func (v *Voucher) IsActive() bool        { return v.isActive }
func (v *Voucher) CreatedAt() time.Time  { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time  { return v.updatedAt }
