package request

import (
	"strings"
	"time"

	"tour-booking/internal/domain/booking"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrInvalidDate = errs.New("date must be formatted as YYYY-MM-DD")

type CreateBookingRequest struct {
	EventID     *uuid.UUID `json:"eventId,omitempty"`
	PackageID   *uuid.UUID `json:"packageId,omitempty"`
	Date        string     `json:"date" binding:"required"`
	VoucherCode *string    `json:"voucherCode,omitempty" binding:"omitempty,max=32"`
	// UserID books on behalf of another user; staff only.
	UserID *uuid.UUID `json:"userId,omitempty"`
}

func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	date, err := time.Parse(queries.DateLayout, r.Date)
	if err != nil {
		return commands.CreateBookingInput{}, errs.Wrap(ErrInvalidDate, r.Date)
	}
	return commands.CreateBookingInput{
		EventID:     r.EventID,
		PackageID:   r.PackageID,
		Date:        date,
		VoucherCode: trimmedCode(r.VoucherCode),
		UserID:      r.UserID,
	}, nil
}

type TransitionBookingRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid confirmed completed cancelled"`
}

func (r TransitionBookingRequest) Target() booking.Status {
	return booking.Status(r.Status)
}

type ListBookingsQuery struct {
	UserID string `form:"userId" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=pending paid confirmed completed cancelled"`
	Limit  *int   `form:"limit" binding:"omitempty,min=1,max=200"`
	Cursor string `form:"cursor"`
}

func (q ListBookingsQuery) ToInput() queries.ListBookingsInput {
	in := queries.ListBookingsInput{Cursor: q.Cursor}
	if q.Limit != nil {
		in.Limit = *q.Limit
	}
	if q.UserID != "" {
		id := uuid.MustParse(q.UserID)
		in.UserID = &id
	}
	if q.Status != "" {
		s := booking.Status(q.Status)
		in.Status = &s
	}
	return in
}

func trimmedCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
