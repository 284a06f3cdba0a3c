package response

import (
	"tour-booking/internal/usecase/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteResponse struct {
	ProductType     string          `json:"productType"`
	ProductID       uuid.UUID       `json:"productId"`
	ProductName     string          `json:"productName"`
	UnitPrice       int64           `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  int64           `json:"discountAmount"`
	FinalAmount     int64           `json:"finalAmount"`
	Currency        string          `json:"currency"`
	VoucherID       *uuid.UUID      `json:"voucherId,omitempty"`
	VoucherCode     *string         `json:"voucherCode,omitempty"`
}

func FromQuote(q *pricing.Quote) QuoteResponse {
	return QuoteResponse{
		ProductType:     q.Product.Type.String(),
		ProductID:       q.Product.ID,
		ProductName:     q.ProductName,
		UnitPrice:       q.UnitPrice,
		DiscountPercent: q.DiscountPercent,
		DiscountAmount:  q.DiscountAmount,
		FinalAmount:     q.FinalAmount,
		Currency:        q.Currency,
		VoucherID:       q.VoucherID,
		VoucherCode:     q.VoucherCode,
	}
}
