package booking

import (
	"errors"
	"time"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNotOwner             = errors.New("principal does not own the booking")
	ErrClientMayOnlyCancel  = errors.New("clients may only cancel their bookings")
	ErrNoLongerCancellable  = errors.New("booking can no longer be cancelled by the client")
	ErrIllegalTransition    = errors.New("illegal booking status transition")
	ErrDeleteNotPermitted   = errors.New("only the owner or an admin may delete a booking")
	ErrOnBehalfNotPermitted = errors.New("only staff may book on behalf of another user")
)

// Plan is the outcome of checking a transition request against a booking.
type Plan struct {
	From Status
	To   Status
	Noop bool
}

// PlanTransition checks ownership, role rules and the edge table, in that order.
// Re-applying the current status is a no-op.
func (b *Booking) PlanTransition(p auth.Principal, target Status) (Plan, error) {
	if !target.IsValid() {
		return Plan{}, ErrUnknownStatus
	}
	if !p.Owns(b.userID) && !p.IsStaff() {
		return Plan{}, ErrNotOwner
	}

	client := p.Role == user.RoleClient
	if client && target != StatusCancelled {
		return Plan{}, ErrClientMayOnlyCancel
	}

	plan := Plan{From: b.status, To: target}
	if b.status == target {
		plan.Noop = true
		return plan, nil
	}

	if client && !b.status.CancellableByClient() {
		return Plan{}, ErrNoLongerCancellable
	}
	if !b.status.CanTransitionTo(target) {
		return Plan{}, ErrIllegalTransition
	}
	return plan, nil
}

// Apply moves the booking along a plan produced by PlanTransition.
func (b *Booking) Apply(plan Plan, now time.Time) error {
	if plan.Noop {
		return nil
	}
	if b.status != plan.From || !plan.From.CanTransitionTo(plan.To) {
		return ErrIllegalTransition
	}
	b.status = plan.To
	b.updatedAt = now
	return nil
}

// Settles reports whether the plan fixes the booking's payment, which is when
// an attached voucher is redeemed.
func (p Plan) Settles() bool {
	return !p.Noop && p.From == StatusPending && p.To == StatusPaid
}

func (b *Booking) CanBeViewedBy(p auth.Principal) bool {
	return p.Owns(b.userID) || p.IsStaff()
}

func (b *Booking) CanBeDeletedBy(p auth.Principal) bool {
	return p.Owns(b.userID) || p.IsAdmin()
}

// CanBookFor reports whether p may create a booking owned by userID.
func CanBookFor(p auth.Principal, userID uuid.UUID) bool {
	return p.Owns(userID) || p.IsStaff()
}
