package queries

import (
	"context"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/booking"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrListNotPermitted = errs.New("only staff may list another user's bookings")

type ListBookingsInput struct {
	// UserID defaults to the caller.
	UserID *uuid.UUID
	Status *booking.Status
	Limit  int
	Cursor string
}

type BookingQueries interface {
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*BookingView, error)
	ListForUser(ctx context.Context, p auth.Principal, in ListBookingsInput) (*BookingPage, error)
}

type bookingQueriesImpl struct {
	reader       shared.BookingReader
	defaultLimit int
}

func NewBookingQueries(reader shared.BookingReader, defaultLimit int) BookingQueries {
	return &bookingQueriesImpl{
		reader:       reader,
		defaultLimit: defaultLimit,
	}
}

func (q *bookingQueriesImpl) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*BookingView, error) {
	if err := shared.Authenticated(p); err != nil {
		return nil, err
	}

	b, err := q.reader.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.ErrBookingNotFound, errs.ErrNotFound)
		}
		return nil, shared.RepoFailure(err)
	}

	if !b.CanBeViewedBy(p) {
		return nil, errs.Mark(booking.ErrNotOwner, errs.ErrForbidden)
	}
	return NewBookingView(b), nil
}

func (q *bookingQueriesImpl) ListForUser(ctx context.Context, p auth.Principal, in ListBookingsInput) (*BookingPage, error) {
	if err := shared.Authenticated(p); err != nil {
		return nil, err
	}

	userID := p.ID
	if in.UserID != nil {
		userID = *in.UserID
	}
	if !p.Owns(userID) && !p.IsStaff() {
		return nil, errs.Mark(ErrListNotPermitted, errs.ErrForbidden)
	}
	if in.Status != nil && !in.Status.IsValid() {
		return nil, errs.Mark(booking.ErrUnknownStatus, errs.ErrValidation)
	}

	filter := shared.BookingFilter{
		Status: in.Status,
		Limit:  ValidateLimit(in.Limit, q.defaultLimit),
	}
	if in.Cursor != "" {
		k, err := DecodeCursor(in.Cursor)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		filter.After = &k
	}

	// One extra row tells whether another page exists.
	limit := filter.Limit
	filter.Limit++
	list, err := q.reader.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, shared.RepoFailure(err)
	}

	page := &BookingPage{Items: make([]*BookingView, 0, min(len(list), limit))}
	for i, b := range list {
		if i == limit {
			last := list[limit-1]
			next := EncodeCursor(shared.Keyset{CreatedAt: last.CreatedAt(), ID: last.ID()})
			page.NextCursor = &next
			break
		}
		page.Items = append(page.Items, NewBookingView(b))
	}
	return page, nil
}
