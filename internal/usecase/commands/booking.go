package commands

import (
	"context"
	"log/slog"
	"time"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/booking"
	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/pricing"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrStatusChangedConcurrently = errs.New("booking status changed concurrently")

type CreateBookingInput struct {
	EventID     *uuid.UUID
	PackageID   *uuid.UUID
	Date        time.Time
	VoucherCode *string
	// UserID books on behalf of another user; staff only.
	UserID *uuid.UUID
}

type BookingCommands interface {
	Create(ctx context.Context, p auth.Principal, in CreateBookingInput) (*queries.BookingView, error)
	Transition(ctx context.Context, p auth.Principal, id uuid.UUID, target booking.Status) (*queries.BookingView, error)
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	users    shared.UserRepository
	resolver pricing.Resolver
	clock    clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	users shared.UserRepository,
	resolver pricing.Resolver,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		users:    users,
		resolver: resolver,
		clock:    clock,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, p auth.Principal, in CreateBookingInput) (*queries.BookingView, error) {
	if err := shared.Authenticated(p); err != nil {
		return nil, err
	}

	ref, err := catalog.NewProductRef(in.EventID, in.PackageID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidProduct)
	}

	owner, err := c.resolveOwner(ctx, p, in.UserID)
	if err != nil {
		return nil, err
	}

	quote, err := c.resolver.Resolve(ctx, ref, in.VoucherCode)
	if err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(owner, ref, in.Date, quote.Snapshot(), c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				// the product or user vanished between pricing and insert
				return errs.Mark(errs.ErrProductNotFound, errs.ErrNotFound)
			}
			return shared.RepoFailure(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking created",
		"booking_id", b.ID(),
		"user_id", owner,
		"product", ref.String(),
		"final_amount", b.Price().FinalAmount,
		"by", p.ID)
	return queries.NewBookingView(b), nil
}

func (c *bookingCommandsImpl) resolveOwner(ctx context.Context, p auth.Principal, userID *uuid.UUID) (uuid.UUID, error) {
	if userID == nil || *userID == uuid.Nil || *userID == p.ID {
		return p.ID, nil
	}
	if !booking.CanBookFor(p, *userID) {
		return uuid.Nil, errs.Mark(booking.ErrOnBehalfNotPermitted, errs.ErrForbidden)
	}

	if _, err := c.users.FindByID(ctx, *userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(errs.ErrUserNotFound, errs.ErrNotFound)
		}
		return uuid.Nil, shared.RepoFailure(err)
	}
	return *userID, nil
}

// Transition applies the state machine. A pending→paid move redeems the
// booking's voucher in the same transaction; when the voucher is spent the
// status change is rolled back.
func (c *bookingCommandsImpl) Transition(ctx context.Context, p auth.Principal, id uuid.UUID, target booking.Status) (*queries.BookingView, error) {
	if err := shared.Authenticated(p); err != nil {
		return nil, err
	}
	if !target.IsValid() {
		return nil, errs.Mark(booking.ErrUnknownStatus, errs.ErrValidation)
	}

	var result *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return bookingLookupError(err)
		}

		plan, err := b.PlanTransition(p, target)
		if err != nil {
			return transitionError(err)
		}
		if plan.Noop {
			result = b
			return nil
		}

		now := c.clock.Now()
		ok, err := tx.Bookings().UpdateStatus(ctx, id, plan.From, plan.To, now)
		if err != nil {
			return shared.RepoFailure(err)
		}
		if !ok {
			return c.resolveLostRace(ctx, tx, id, target, &result)
		}

		if plan.Settles() && b.Price().HasVoucher() {
			if _, err := redeem(ctx, tx, *b.Price().VoucherID, now); err != nil {
				if errs.Is(err, errs.ErrNotFound) {
					// deleted since booking; the snapshot still holds the discount
					slog.Warn("voucher gone at settlement", "booking_id", id, "voucher_id", *b.Price().VoucherID)
				} else {
					return err
				}
			}
		}

		if err := b.Apply(plan, now); err != nil {
			return transitionError(err)
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking status changed",
		"booking_id", id,
		"status", result.Status(),
		"by", p.ID,
		"role", p.Role)
	return queries.NewBookingView(result), nil
}

// resolveLostRace handles a compare-and-swap that found the row already
// moved. Reaching the requested status anyway counts as success.
func (c *bookingCommandsImpl) resolveLostRace(
	ctx context.Context,
	tx shared.Tx,
	id uuid.UUID,
	target booking.Status,
	result **booking.Booking,
) error {
	current, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		return bookingLookupError(err)
	}
	if current.Status() == target {
		*result = current
		return nil
	}
	return errs.Mark(ErrStatusChangedConcurrently, errs.ErrInvalidTransition)
}

// Delete removes the booking outright. It does not release a redeemed voucher use.
func (c *bookingCommandsImpl) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	if err := shared.Authenticated(p); err != nil {
		return err
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return bookingLookupError(err)
		}
		if !b.CanBeDeletedBy(p) {
			return errs.Mark(booking.ErrDeleteNotPermitted, errs.ErrForbidden)
		}
		if err := tx.Bookings().Delete(ctx, id); err != nil {
			return bookingLookupError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("booking deleted", "booking_id", id, "by", p.ID, "role", p.Role)
	return nil
}

func bookingLookupError(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.ErrBookingNotFound, errs.ErrNotFound)
	}
	return shared.RepoFailure(err)
}

func transitionError(err error) error {
	switch {
	case errs.Is(err, booking.ErrUnknownStatus):
		return errs.Mark(err, errs.ErrValidation)
	case errs.Is(err, booking.ErrNotOwner),
		errs.Is(err, booking.ErrClientMayOnlyCancel),
		errs.Is(err, booking.ErrNoLongerCancellable):
		return errs.Mark(err, errs.ErrForbidden)
	case errs.Is(err, booking.ErrIllegalTransition):
		return errs.Mark(err, errs.ErrInvalidTransition)
	default:
		return err
	}
}
