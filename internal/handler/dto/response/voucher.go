package response

import (
	"time"

	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type VoucherResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Description     string          `json:"description"`
	ValidFrom       time.Time       `json:"validFrom"`
	ValidUntil      time.Time       `json:"validUntil"`
	UsageLimit      int             `json:"usageLimit"`
	UsedCount       int             `json:"usedCount"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type VoucherValidationResponse struct {
	Valid           bool             `json:"valid"`
	Reason          string           `json:"reason,omitempty"`
	Message         string           `json:"message,omitempty"`
	VoucherID       *uuid.UUID       `json:"voucherId,omitempty"`
	Code            string           `json:"code,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty"`
	DiscountAmount  *int64           `json:"discountAmount,omitempty"`
	FinalAmount     *int64           `json:"finalAmount,omitempty"`
}

func FromVoucherView(v *queries.VoucherView) (*VoucherResponse, error) {
	var out VoucherResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromVoucherViews(vs []*queries.VoucherView) ([]VoucherResponse, error) {
	out := make([]VoucherResponse, 0, len(vs))
	if err := copier.Copy(&out, vs); err != nil {
		return nil, err
	}
	return out, nil
}

func FromValidationResult(r voucher.ValidationResult) VoucherValidationResponse {
	out := VoucherValidationResponse{
		Valid:           r.Valid,
		VoucherID:       r.VoucherID,
		Code:            r.Code,
		DiscountPercent: r.DiscountPercent,
		DiscountAmount:  r.DiscountAmount,
		FinalAmount:     r.FinalAmount,
		Reason:          r.Reason.String(),
		Message:         r.Reason.Message(),
	}
	return out
}
