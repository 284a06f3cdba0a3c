package repository

import (
	"context"
	"time"

	"tour-booking/internal/domain/booking"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/infra/repository/converter"
	"tour-booking/internal/pkg/pgconv"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertBookingSQL = `INSERT INTO bookings (` + converter.BookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10, $11, $12, $13, $14, $15)`

	selectBookingByIDSQL = `SELECT ` + converter.BookingColumns + ` FROM bookings WHERE id = $1`

	listBookingsByUserSQL = `SELECT ` + converter.BookingColumns + ` FROM bookings
		WHERE user_id = $1
		  AND ($2::text IS NULL OR status = $2::text)
		  AND ($3::timestamptz IS NULL OR (created_at, id) < ($3::timestamptz, $4::uuid))
		ORDER BY created_at DESC, id DESC
		LIMIT $5`

	updateBookingStatusSQL = `UPDATE bookings SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2`

	deleteBookingSQL = `DELETE FROM bookings WHERE id = $1`
)

// BookingRepository serves both the transactional facade and the read side;
// which one depends on the DBTX it was built with.
type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

var (
	_ shared.BookingRepository = (*BookingRepository)(nil)
	_ shared.BookingReader     = (*BookingRepository)(nil)
)

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if _, err := r.db.Exec(ctx, insertBookingSQL, converter.BookingToArgs(b)...); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	rows, _ := r.db.Query(ctx, selectBookingByIDSQL, id)
	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[converter.BookingRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking row", err)
	}
	return b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter shared.BookingFilter) ([]*booking.Booking, error) {
	var status pgtype.Text
	if filter.Status != nil {
		status = pgtype.Text{String: filter.Status.String(), Valid: true}
	}
	var afterAt pgtype.Timestamptz
	var afterID pgtype.UUID
	if filter.After != nil {
		afterAt = pgconv.TimeToPgtype(filter.After.CreatedAt)
		afterID = pgtype.UUID{Bytes: filter.After.ID, Valid: true}
	}

	rows, _ := r.db.Query(ctx, listBookingsByUserSQL, userID, status, afterAt, afterID, filter.Limit)
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.BookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}

	out := make([]*booking.Booking, 0, len(list))
	for _, row := range list {
		b, err := converter.BookingFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert booking row", err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, updateBookingStatusSQL, id, from.String(), to.String(), at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
