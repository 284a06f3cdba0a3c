package commands

import (
	"context"
	"log/slog"
	"time"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrVoucherCodeTaken = errs.New("voucher code already exists")

// CreateVoucherInput leaves UsageLimit and IsActive optional; they default to
// unlimited and active.
type CreateVoucherInput struct {
	Code            string
	DiscountPercent decimal.Decimal
	Description     string
	ValidFrom       time.Time
	ValidUntil      time.Time
	UsageLimit      *int
	IsActive        *bool
}

type VoucherCommands interface {
	Create(ctx context.Context, p auth.Principal, in CreateVoucherInput) (*queries.VoucherView, error)
	Update(ctx context.Context, p auth.Principal, id uuid.UUID, patch voucher.Patch) (*queries.VoucherView, error)
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error
	// Redeem consumes one use of the voucher in its own transaction.
	Redeem(ctx context.Context, id uuid.UUID) (*queries.VoucherView, error)
}

type voucherCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewVoucherCommands(uow shared.UnitOfWork, clock clock.Clock) VoucherCommands {
	return &voucherCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

func (c *voucherCommandsImpl) Create(ctx context.Context, p auth.Principal, in CreateVoucherInput) (*queries.VoucherView, error) {
	if err := shared.Authorize(p, user.RoleAdmin); err != nil {
		return nil, err
	}

	params := voucher.Params{
		Code:            in.Code,
		DiscountPercent: in.DiscountPercent,
		Description:     in.Description,
		ValidFrom:       in.ValidFrom,
		ValidUntil:      in.ValidUntil,
		UsageLimit:      0,
		IsActive:        true,
	}
	if in.UsageLimit != nil {
		params.UsageLimit = *in.UsageLimit
	}
	if in.IsActive != nil {
		params.IsActive = *in.IsActive
	}

	v, err := voucher.NewVoucher(params, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureCodeFree(ctx, tx, v.Code().String(), v.ID()); err != nil {
			return err
		}
		if err := tx.Vouchers().Create(ctx, v); err != nil {
			return voucherWriteError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("voucher created", "voucher_id", v.ID(), "code", v.Code().String(), "by", p.ID)
	return queries.NewVoucherView(v), nil
}

func (c *voucherCommandsImpl) Update(ctx context.Context, p auth.Principal, id uuid.UUID, patch voucher.Patch) (*queries.VoucherView, error) {
	if err := shared.Authorize(p, user.RoleAdmin); err != nil {
		return nil, err
	}

	var updated *voucher.Voucher
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Vouchers().FindByID(ctx, id)
		if err != nil {
			return voucherLookupError(err)
		}

		next, err := current.Apply(patch, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		if next.Code() != current.Code() {
			if err := ensureCodeFree(ctx, tx, next.Code().String(), id); err != nil {
				return err
			}
		}

		if err := tx.Vouchers().Update(ctx, next); err != nil {
			return voucherWriteError(err)
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return queries.NewVoucherView(updated), nil
}

// Delete keeps bookings intact: they lose the link but keep the code they were priced with.
func (c *voucherCommandsImpl) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	if err := shared.Authorize(p, user.RoleAdmin); err != nil {
		return err
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Vouchers().Delete(ctx, id); err != nil {
			return voucherLookupError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("voucher deleted", "voucher_id", id, "by", p.ID)
	return nil
}

func (c *voucherCommandsImpl) Redeem(ctx context.Context, id uuid.UUID) (*queries.VoucherView, error) {
	var redeemed *voucher.Voucher
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := redeem(ctx, tx, id, c.clock.Now())
		if err != nil {
			return err
		}
		redeemed = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.NewVoucherView(redeemed), nil
}

func redeem(ctx context.Context, tx shared.Tx, id uuid.UUID, now time.Time) (*voucher.Voucher, error) {
	v, err := tx.Vouchers().Redeem(ctx, id, now)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(voucher.ErrUsageExhausted, errs.ErrLimitExceeded)
		}
		return nil, voucherLookupError(err)
	}
	return v, nil
}

func ensureCodeFree(ctx context.Context, tx shared.Tx, code string, self uuid.UUID) error {
	existing, err := tx.Vouchers().FindByCode(ctx, code)
	switch {
	case err == nil && existing.ID() != self:
		return errs.Mark(ErrVoucherCodeTaken, errs.ErrDuplicateCode)
	case err == nil, infra.IsKind(err, infra.KindNotFound):
		return nil
	default:
		return shared.RepoFailure(err)
	}
}

func voucherLookupError(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.ErrVoucherNotFound, errs.ErrNotFound)
	}
	return shared.RepoFailure(err)
}

// voucherWriteError maps constraint failures that slipped past the lookups,
// e.g. a concurrent create of the same code.
func voucherWriteError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(ErrVoucherCodeTaken, errs.ErrDuplicateCode)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(voucher.ErrUsageLimitBelowUsed, errs.ErrValidation)
	default:
		return voucherLookupError(err)
	}
}
