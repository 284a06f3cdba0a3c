package response

import (
	"time"

	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	ProductType     string          `json:"productType"`
	EventID         *uuid.UUID      `json:"eventId,omitempty"`
	PackageID       *uuid.UUID      `json:"packageId,omitempty"`
	Status          string          `json:"status"`
	Date            string          `json:"date"`
	UnitPrice       int64           `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  int64           `json:"discountAmount"`
	FinalAmount     int64           `json:"finalAmount"`
	Currency        string          `json:"currency"`
	VoucherID       *uuid.UUID      `json:"voucherId,omitempty"`
	VoucherCode     *string         `json:"voucherCode,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type BookingPageResponse struct {
	Items      []BookingResponse `json:"items"`
	NextCursor *string           `json:"nextCursor"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var out BookingResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromBookingPage(p *queries.BookingPage) (*BookingPageResponse, error) {
	out := &BookingPageResponse{Items: make([]BookingResponse, 0, len(p.Items)), NextCursor: p.NextCursor}
	if err := copier.Copy(&out.Items, p.Items); err != nil {
		return nil, err
	}
	return out, nil
}
