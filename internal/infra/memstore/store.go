// Package memstore keeps the booking core's data in process memory. It backs
// STORE_DRIVER=memory and the use case tests.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"tour-booking/internal/domain/booking"
	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type state struct {
	users    map[uuid.UUID]user.User
	products map[catalog.ProductRef]catalog.Product
	vouchers map[uuid.UUID]voucher.Voucher
	bookings map[uuid.UUID]booking.Booking
}

func (s state) clone() state {
	return state{
		users:    maps.Clone(s.users),
		products: maps.Clone(s.products),
		vouchers: maps.Clone(s.vouchers),
		bookings: maps.Clone(s.bookings),
	}
}

// Store is safe for concurrent use. Units of work run one at a time; readers
// share a read lock. Readers must not be called from inside Within.
type Store struct {
	mu   sync.RWMutex
	data state
}

func New() *Store {
	return &Store{
		data: state{
			users:    make(map[uuid.UUID]user.User),
			products: make(map[catalog.ProductRef]catalog.Product),
			vouchers: make(map[uuid.UUID]voucher.Voucher),
			bookings: make(map[uuid.UUID]booking.Booking),
		},
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

// Within applies fn atomically. On error every change fn made is discarded.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.data.clone()
	if err := fn(ctx, &memTx{data: &s.data}); err != nil {
		s.data = backup
		return err
	}
	return nil
}

func (s *Store) SeedProduct(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.products[p.Ref] = p
}

func (s *Store) SeedUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID()] = *u
}

type memTx struct {
	data *state
}

func (t *memTx) Bookings() shared.BookingRepository {
	return &bookingRepo{data: t.data}
}

func (t *memTx) Vouchers() shared.VoucherRepository {
	return &voucherRepo{data: t.data}
}

// Postgres keeps microseconds; doing the same keeps cursors stable.
func truncate(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}
