package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	ProductType     string          `json:"product_type"`
	EventID         *uuid.UUID      `json:"event_id,omitempty"`
	PackageID       *uuid.UUID      `json:"package_id,omitempty"`
	Status          string          `json:"status"`
	Date            string          `json:"date"`
	UnitPrice       int64           `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  int64           `json:"discount_amount"`
	FinalAmount     int64           `json:"final_amount"`
	Currency        string          `json:"currency"`
	VoucherID       *uuid.UUID      `json:"voucher_id,omitempty"`
	VoucherCode     *string         `json:"voucher_code,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type BookingPage struct {
	Items      []*BookingView `json:"items"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

type VoucherView struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Description     string          `json:"description"`
	ValidFrom       time.Time       `json:"valid_from"`
	ValidUntil      time.Time       `json:"valid_until"`
	UsageLimit      int             `json:"usage_limit"`
	UsedCount       int             `json:"used_count"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
