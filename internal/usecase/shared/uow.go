package shared

import (
	"context"
	"time"

	"tour-booking/internal/domain/booking"
	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/domain/voucher"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction. fn may be re-run on a retryable
	// failure, so it must not keep state between attempts.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Vouchers() VoucherRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatus moves the row from one status to another only if it still
	// holds from. It reports false when another writer got there first.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, at time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VoucherRepository interface {
	Create(ctx context.Context, v *voucher.Voucher) error
	Update(ctx context.Context, v *voucher.Voucher) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error)
	FindByCode(ctx context.Context, code string) (*voucher.Voucher, error)
	// Redeem increments usedCount when a use remains. A spent voucher yields a
	// KindConflict repository error.
	Redeem(ctx context.Context, id uuid.UUID, at time.Time) (*voucher.Voucher, error)
}

// Readers serve queries outside a transaction.

type BookingReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter BookingFilter) ([]*booking.Booking, error)
}

type VoucherReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error)
	FindByCode(ctx context.Context, code string) (*voucher.Voucher, error)
	List(ctx context.Context, filter VoucherFilter) ([]*voucher.Voucher, error)
}

type CatalogReader interface {
	GetProduct(ctx context.Context, ref catalog.ProductRef) (*catalog.Product, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// BookingFilter selects a page of a user's bookings, newest first. After is
// the keyset position of the last row of the previous page.
type BookingFilter struct {
	Status *booking.Status
	Limit  int
	After  *Keyset
}

type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

type VoucherFilter struct {
	ActiveOnly bool
}
