package memstore

import (
	"bytes"
	"context"
	"slices"
	"time"

	"tour-booking/internal/domain/booking"
	"tour-booking/internal/infra"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type bookingRepo struct {
	data *state
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.data.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	if _, ok := r.data.users[b.UserID()]; !ok {
		return infra.WrapRepoErr("booking user does not exist", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := r.data.products[b.Product()]; !ok {
		return infra.WrapRepoErr("booking product does not exist", nil, infra.KindForeignKeyViolated)
	}

	r.data.bookings[b.ID()] = *booking.ReconstructBooking(
		b.ID(), b.UserID(), b.Product(), b.Status(), b.Date(), b.Price(),
		truncate(b.CreatedAt()), truncate(b.UpdatedAt()),
	)
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	return findBooking(r.data, id)
}

func (r *bookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to booking.Status, at time.Time) (bool, error) {
	b, ok := r.data.bookings[id]
	if !ok || b.Status() != from {
		return false, nil
	}
	r.data.bookings[id] = *booking.ReconstructBooking(
		b.ID(), b.UserID(), b.Product(), to, b.Date(), b.Price(), b.CreatedAt(), truncate(at),
	)
	return true, nil
}

func (r *bookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.data.bookings[id]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	delete(r.data.bookings, id)
	return nil
}

func findBooking(data *state, id uuid.UUID) (*booking.Booking, error) {
	b, ok := data.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &b, nil
}

// Reader side.

func (s *Store) Bookings() shared.BookingReader {
	return &bookingReader{s: s}
}

type bookingReader struct {
	s *Store
}

func (r *bookingReader) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return findBooking(&r.s.data, id)
}

func (r *bookingReader) ListByUser(_ context.Context, userID uuid.UUID, filter shared.BookingFilter) ([]*booking.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*booking.Booking
	for _, b := range r.s.data.bookings {
		if b.UserID() != userID {
			continue
		}
		if filter.Status != nil && b.Status() != *filter.Status {
			continue
		}
		if filter.After != nil && !before(b.CreatedAt(), b.ID(), *filter.After) {
			continue
		}
		out = append(out, &b)
	}

	slices.SortFunc(out, func(a, b *booking.Booking) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		ai, bi := a.ID(), b.ID()
		return bytes.Compare(bi[:], ai[:])
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// before reports whether (createdAt, id) sorts after k in newest-first order.
func before(createdAt time.Time, id uuid.UUID, k shared.Keyset) bool {
	if c := createdAt.Compare(k.CreatedAt); c != 0 {
		return c < 0
	}
	return bytes.Compare(id[:], k.ID[:]) < 0
}
