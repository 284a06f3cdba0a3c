package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"tour-booking/internal/domain/booking"
	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/infra"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type voucherRepo struct {
	data *state
}

func (r *voucherRepo) Create(_ context.Context, v *voucher.Voucher) error {
	if _, ok := r.data.vouchers[v.ID()]; ok {
		return infra.WrapRepoErr("voucher already exists", nil, infra.KindDuplicateKey)
	}
	if codeTaken(r.data, v.Code().String(), v.ID()) {
		return infra.WrapRepoErr("voucher code already exists", nil, infra.KindDuplicateKey)
	}
	r.data.vouchers[v.ID()] = *v
	return nil
}

func (r *voucherRepo) Update(_ context.Context, v *voucher.Voucher) error {
	current, ok := r.data.vouchers[v.ID()]
	if !ok {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	if codeTaken(r.data, v.Code().String(), v.ID()) {
		return infra.WrapRepoErr("voucher code already exists", nil, infra.KindDuplicateKey)
	}
	// usedCount is owned by Redeem; keep the stored value.
	if v.UsageLimit() > 0 && v.UsageLimit() < current.UsedCount() {
		return infra.WrapRepoErr("usage limit below used count", nil, infra.KindConflict)
	}
	r.data.vouchers[v.ID()] = *voucher.ReconstructVoucher(
		v.ID(), v.Code(), v.Discount(), v.Description(), v.ValidFrom(), v.ValidUntil(),
		v.UsageLimit(), current.UsedCount(), v.IsActive(), current.CreatedAt(), v.UpdatedAt(),
	)
	return nil
}

// Delete detaches the voucher from bookings. Their snapshot keeps the code.
func (r *voucherRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.data.vouchers[id]; !ok {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	delete(r.data.vouchers, id)

	for bid, b := range r.data.bookings {
		price := b.Price()
		if price.VoucherID == nil || *price.VoucherID != id {
			continue
		}
		price.VoucherID = nil
		r.data.bookings[bid] = *booking.ReconstructBooking(
			b.ID(), b.UserID(), b.Product(), b.Status(), b.Date(), price, b.CreatedAt(), b.UpdatedAt(),
		)
	}
	return nil
}

func (r *voucherRepo) FindByID(_ context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	return findVoucherByID(r.data, id)
}

func (r *voucherRepo) FindByCode(_ context.Context, code string) (*voucher.Voucher, error) {
	return findVoucherByCode(r.data, code)
}

func (r *voucherRepo) Redeem(_ context.Context, id uuid.UUID, at time.Time) (*voucher.Voucher, error) {
	v, ok := r.data.vouchers[id]
	if !ok {
		return nil, infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	if err := v.Redeem(truncate(at)); err != nil {
		return nil, infra.WrapRepoErr("voucher usage limit reached", err, infra.KindConflict)
	}
	r.data.vouchers[id] = v
	return &v, nil
}

func codeTaken(data *state, code string, except uuid.UUID) bool {
	for id, v := range data.vouchers {
		if id != except && strings.EqualFold(v.Code().String(), code) {
			return true
		}
	}
	return false
}

func findVoucherByID(data *state, id uuid.UUID) (*voucher.Voucher, error) {
	v, ok := data.vouchers[id]
	if !ok {
		return nil, infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return &v, nil
}

func findVoucherByCode(data *state, code string) (*voucher.Voucher, error) {
	for _, v := range data.vouchers {
		if strings.EqualFold(v.Code().String(), strings.TrimSpace(code)) {
			return &v, nil
		}
	}
	return nil, infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
}

// Reader side.

func (s *Store) Vouchers() shared.VoucherReader {
	return &voucherReader{s: s}
}

type voucherReader struct {
	s *Store
}

func (r *voucherReader) FindByID(_ context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return findVoucherByID(&r.s.data, id)
}

func (r *voucherReader) FindByCode(_ context.Context, code string) (*voucher.Voucher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return findVoucherByCode(&r.s.data, code)
}

func (r *voucherReader) List(_ context.Context, filter shared.VoucherFilter) ([]*voucher.Voucher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*voucher.Voucher, 0, len(r.s.data.vouchers))
	for _, v := range r.s.data.vouchers {
		if filter.ActiveOnly && !v.IsActive() {
			continue
		}
		out = append(out, &v)
	}
	slices.SortFunc(out, func(a, b *voucher.Voucher) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(a.Code().String(), b.Code().String())
	})
	return out, nil
}
