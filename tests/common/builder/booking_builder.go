//go:build unit || e2e

package builder

import (
	"time"

	"tour-booking/internal/domain/booking"
	"tour-booking/internal/domain/catalog"
	reqdto "tour-booking/internal/handler/dto/request"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Product   catalog.ProductRef
	Status    booking.Status
	Date      time.Time
	Price     booking.PriceSnapshot
	CreatedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Product: catalog.ProductRef{Type: catalog.TypePackage, ID: uuid.New()},
		Status:  booking.StatusPending,
		Date:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Price: booking.PriceSnapshot{
			UnitPrice:       1_000_000,
			DiscountPercent: decimal.Zero,
			FinalAmount:     1_000_000,
			Currency:        booking.CurrencyIDR,
		},
		CreatedAt: created,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(b.ID, b.UserID, b.Product, b.Status, b.Date, b.Price, b.CreatedAt, b.CreatedAt)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return queries.NewBookingView(b.BuildDomain())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{Date: b.Date.Format(queries.DateLayout)}
	if b.Product.Type == catalog.TypeEvent {
		req.EventID = b.Product.EventID()
	} else {
		req.PackageID = b.Product.PackageID()
	}
	if b.Price.VoucherCode != nil {
		code := *b.Price.VoucherCode
		req.VoucherCode = &code
	}
	return req
}

// Fluent builder methods
func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) ForEvent(id uuid.UUID) *BookingBuilder {
	b.Product = catalog.ProductRef{Type: catalog.TypeEvent, ID: id}
	return b
}

func (b *BookingBuilder) ForPackage(id uuid.UUID) *BookingBuilder {
	b.Product = catalog.ProductRef{Type: catalog.TypePackage, ID: id}
	return b
}

// WithVoucher snapshots a percentage discount off the current unit price.
func (b *BookingBuilder) WithVoucher(id uuid.UUID, code string, percent int64) *BookingBuilder {
	pct := decimal.NewFromInt(percent)
	discount := decimal.NewFromInt(b.Price.UnitPrice).Mul(pct).Div(decimal.NewFromInt(100)).Round(0).IntPart()
	b.Price.DiscountPercent = pct
	b.Price.DiscountAmount = discount
	b.Price.FinalAmount = b.Price.UnitPrice - discount
	b.Price.VoucherID = &id
	b.Price.VoucherCode = &code
	return b
}
