package request

import (
	"tour-booking/internal/usecase/pricing"

	"github.com/google/uuid"
)

type QuoteRequest struct {
	EventID     *uuid.UUID `json:"eventId,omitempty"`
	PackageID   *uuid.UUID `json:"packageId,omitempty"`
	VoucherCode *string    `json:"voucherCode,omitempty" binding:"omitempty,max=32"`
}

func (r QuoteRequest) ToInput() pricing.QuoteInput {
	return pricing.QuoteInput{
		EventID:     r.EventID,
		PackageID:   r.PackageID,
		VoucherCode: trimmedCode(r.VoucherCode),
	}
}
