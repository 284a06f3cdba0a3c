package booking

import (
	"errors"
	"time"

	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrUnknownStatus = errors.New("unknown booking status")
	ErrMissingUser   = errors.New("booking requires a user")
	ErrMissingDate   = errors.New("booking date is required")
	ErrDateInPast    = errors.New("booking date cannot be in the past")
)

type Booking struct {
	id        uuid.UUID
	userID    uuid.UUID
	product   catalog.ProductRef
	status    Status
	date      time.Time
	price     PriceSnapshot
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a pending booking. date is a calendar day; it is compared
// against now's day so same-day bookings are accepted.
func NewBooking(
	userID uuid.UUID,
	product catalog.ProductRef,
	date time.Time,
	price PriceSnapshot,
	now time.Time,
) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if !product.Type.IsValid() || product.ID == uuid.Nil {
		return nil, catalog.ErrInvalidProductRef
	}
	if date.IsZero() {
		return nil, ErrMissingDate
	}
	day := clock.StartOfDay(date)
	if day.Before(clock.StartOfDay(now.In(date.Location()))) {
		return nil, ErrDateInPast
	}
	if err := price.Validate(); err != nil {
		return nil, err
	}

	return &Booking{
		id:        uuid.New(),
		userID:    userID,
		product:   product,
		status:    StatusPending,
		date:      day,
		price:     price,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBooking(
	id, userID uuid.UUID,
	product catalog.ProductRef,
	status Status,
	date time.Time,
	price PriceSnapshot,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		userID:    userID,
		product:   product,
		status:    status,
		date:      date,
		price:     price,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) UserID() uuid.UUID           { return b.userID }
func (b *Booking) Product() catalog.ProductRef { return b.product }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) Date() time.Time             { return b.date }
func (b *Booking) Price() PriceSnapshot        { return b.price }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }

// Clone returns an independent copy.
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}
